package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vendascrm/backend/internal/domain/analytics"
	"github.com/vendascrm/backend/internal/domain/shared"
	"github.com/vendascrm/backend/internal/infrastructure/persistence/models"
)

const rollupInsertBatchSize = 500

// GormRollupRepository implements analytics.RollupRepository using GORM.
type GormRollupRepository struct {
	db *gorm.DB
}

// NewGormRollupRepository creates a new GormRollupRepository
func NewGormRollupRepository(db *gorm.DB) *GormRollupRepository {
	return &GormRollupRepository{db: db}
}

// ReplaceAll swaps the three rollup tables in a single transaction. Readers
// keep seeing the previous contents until the transaction commits.
func (r *GormRollupRepository) ReplaceAll(ctx context.Context, customers []*analytics.CustomerRollup, products []*analytics.ProductRollup, pairs []*analytics.CustomerProductRollup) error {
	customerModels := make([]models.CustomerRollupModel, len(customers))
	for i, c := range customers {
		customerModels[i].FromDomainBaseEntity(shared.NewBaseEntity())
		customerModels[i].FromDomain(c)
	}
	productModels := make([]models.ProductRollupModel, len(products))
	for i, p := range products {
		productModels[i].FromDomainBaseEntity(shared.NewBaseEntity())
		productModels[i].FromDomain(p)
	}
	pairModels := make([]models.CustomerProductRollupModel, len(pairs))
	for i, p := range pairs {
		pairModels[i].FromDomainBaseEntity(shared.NewBaseEntity())
		pairModels[i].FromDomain(p)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"customer_rollups", "product_rollups", "customer_product_rollups"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		if len(customerModels) > 0 {
			if err := tx.CreateInBatches(customerModels, rollupInsertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(productModels) > 0 {
			if err := tx.CreateInBatches(productModels, rollupInsertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(pairModels) > 0 {
			if err := tx.CreateInBatches(pairModels, rollupInsertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CustomerByCode finds one customer rollup.
func (r *GormRollupRepository) CustomerByCode(ctx context.Context, code string) (*analytics.CustomerRollup, error) {
	var model models.CustomerRollupModel
	if err := r.db.WithContext(ctx).First(&model, "customer_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Customers returns a filtered page of customer rollups plus the total count.
// Supported filters: "segment"; search matches code or name.
func (r *GormRollupRepository) Customers(ctx context.Context, filter shared.Filter) ([]*analytics.CustomerRollup, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CustomerRollupModel{})
	if segment, ok := filter.Filters["segment"]; ok {
		query = query.Where("segment = ?", segment)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("customer_code LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rollupModels []models.CustomerRollupModel
	err := applyRollupPaging(query, filter, CustomerRollupSortFields, "total_spend").Find(&rollupModels).Error
	if err != nil {
		return nil, 0, err
	}

	rollups := make([]*analytics.CustomerRollup, len(rollupModels))
	for i := range rollupModels {
		rollups[i] = rollupModels[i].ToDomain()
	}
	return rollups, total, nil
}

// AllCustomers returns every customer rollup ordered by spend descending.
func (r *GormRollupRepository) AllCustomers(ctx context.Context) ([]*analytics.CustomerRollup, error) {
	var rollupModels []models.CustomerRollupModel
	if err := r.db.WithContext(ctx).Order("total_spend DESC").Find(&rollupModels).Error; err != nil {
		return nil, err
	}
	rollups := make([]*analytics.CustomerRollup, len(rollupModels))
	for i := range rollupModels {
		rollups[i] = rollupModels[i].ToDomain()
	}
	return rollups, nil
}

// ProductByCode finds one product rollup.
func (r *GormRollupRepository) ProductByCode(ctx context.Context, code string) (*analytics.ProductRollup, error) {
	var model models.ProductRollupModel
	if err := r.db.WithContext(ctx).First(&model, "product_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Products returns a filtered page of product rollups plus the total count.
// Supported filters: "category", "abc_tier"; search matches code or name.
func (r *GormRollupRepository) Products(ctx context.Context, filter shared.Filter) ([]*analytics.ProductRollup, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductRollupModel{})
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if tier, ok := filter.Filters["abc_tier"]; ok {
		query = query.Where("abc_tier = ?", tier)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("product_code LIKE ? OR product_name LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rollupModels []models.ProductRollupModel
	err := applyRollupPaging(query, filter, ProductRollupSortFields, "total_value").Find(&rollupModels).Error
	if err != nil {
		return nil, 0, err
	}

	rollups := make([]*analytics.ProductRollup, len(rollupModels))
	for i := range rollupModels {
		rollups[i] = rollupModels[i].ToDomain()
	}
	return rollups, total, nil
}

// AllProducts returns every product rollup ordered by value descending.
func (r *GormRollupRepository) AllProducts(ctx context.Context) ([]*analytics.ProductRollup, error) {
	var rollupModels []models.ProductRollupModel
	if err := r.db.WithContext(ctx).Order("total_value DESC").Find(&rollupModels).Error; err != nil {
		return nil, err
	}
	rollups := make([]*analytics.ProductRollup, len(rollupModels))
	for i := range rollupModels {
		rollups[i] = rollupModels[i].ToDomain()
	}
	return rollups, nil
}

// PairsForCustomer returns one customer's product rollups by value descending.
func (r *GormRollupRepository) PairsForCustomer(ctx context.Context, customerCode string) ([]*analytics.CustomerProductRollup, error) {
	return r.findPairs(ctx, "customer_code = ?", customerCode)
}

// PairsForProduct returns one product's buyer rollups by value descending.
func (r *GormRollupRepository) PairsForProduct(ctx context.Context, productCode string) ([]*analytics.CustomerProductRollup, error) {
	return r.findPairs(ctx, "product_code = ?", productCode)
}

// AllPairs returns the full (customer, product) rollup set.
func (r *GormRollupRepository) AllPairs(ctx context.Context) ([]*analytics.CustomerProductRollup, error) {
	var pairModels []models.CustomerProductRollupModel
	if err := r.db.WithContext(ctx).Find(&pairModels).Error; err != nil {
		return nil, err
	}
	pairs := make([]*analytics.CustomerProductRollup, len(pairModels))
	for i := range pairModels {
		pairs[i] = pairModels[i].ToDomain()
	}
	return pairs, nil
}

func (r *GormRollupRepository) findPairs(ctx context.Context, query string, arg string) ([]*analytics.CustomerProductRollup, error) {
	var pairModels []models.CustomerProductRollupModel
	err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("total_value DESC").
		Find(&pairModels).Error
	if err != nil {
		return nil, err
	}
	pairs := make([]*analytics.CustomerProductRollup, len(pairModels))
	for i := range pairModels {
		pairs[i] = pairModels[i].ToDomain()
	}
	return pairs, nil
}

// applyRollupPaging applies ordering and pagination with sane defaults.
// The sort field is validated against a whitelist before interpolation.
func applyRollupPaging(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultOrder string) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, allowedFields, defaultOrder)
	direction := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + direction)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
