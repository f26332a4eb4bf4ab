package analytics

import (
	"sort"

	"github.com/vendascrm/backend/internal/domain/ledger"
)

// Caps on co-occurrence result sizes. These bound the dominant cost center
// of the engine on large ledgers.
const (
	maxComplementaryProducts = 10
	maxSimilarCustomers      = 10
	maxCrossSellSuggestions  = 5
	minSharedProducts        = 3
)

// ComplementaryProduct is a product frequently sold in the same transaction
// as a reference product.
type ComplementaryProduct struct {
	ProductCode    string  `json:"product_code"`
	ProductName    string  `json:"product_name"`
	JointFrequency int     `json:"joint_frequency"`
	Confidence     float64 `json:"confidence"`
}

// SimilarCustomer is a customer whose purchased-product set overlaps the
// target customer's set.
type SimilarCustomer struct {
	CustomerCode   string `json:"customer_code"`
	CustomerName   string `json:"customer_name"`
	SharedProducts int    `json:"shared_products"`
}

// CrossSellSuggestion is a product bought by similar customers but not by
// the target customer.
type CrossSellSuggestion struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	BuyerCount  int    `json:"buyer_count"`
}

// MineComplementary finds the products most often appearing in the same
// transactions as the reference product. pairs holds the distinct
// (transaction, product) memberships across the transactions that contain
// the reference; refTransactions is how many such transactions exist.
// Confidence is the share of those transactions that also carry the
// candidate, in percent.
func MineComplementary(refProductCode string, refTransactions int, pairs []ledger.TransactionProduct) []ComplementaryProduct {
	if refTransactions == 0 {
		return nil
	}

	type candidate struct {
		name string
		txns map[string]struct{}
	}
	candidates := make(map[string]*candidate)
	for _, p := range pairs {
		if p.ProductCode == refProductCode {
			continue
		}
		c, ok := candidates[p.ProductCode]
		if !ok {
			c = &candidate{name: p.ProductName, txns: make(map[string]struct{})}
			candidates[p.ProductCode] = c
		}
		c.txns[p.TransactionID] = struct{}{}
	}

	result := make([]ComplementaryProduct, 0, len(candidates))
	for code, c := range candidates {
		joint := len(c.txns)
		result = append(result, ComplementaryProduct{
			ProductCode:    code,
			ProductName:    c.name,
			JointFrequency: joint,
			Confidence:     float64(joint) / float64(refTransactions) * 100,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].JointFrequency != result[j].JointFrequency {
			return result[i].JointFrequency > result[j].JointFrequency
		}
		return result[i].ProductCode < result[j].ProductCode
	})
	if len(result) > maxComplementaryProducts {
		result = result[:maxComplementaryProducts]
	}
	return result
}

// FindSimilarCustomers ranks customers sharing at least three distinct
// products with the target, then derives cross-sell suggestions: products
// the similar customers bought that the target never did, ranked by how
// many similar customers bought them. pairs is the full (customer, product)
// rollup set; membership tests are hash based.
func FindSimilarCustomers(targetCustomerCode string, pairs []*CustomerProductRollup) ([]SimilarCustomer, []CrossSellSuggestion) {
	targetProducts := make(map[string]struct{})
	byCustomer := make(map[string][]*CustomerProductRollup)
	customerNames := make(map[string]string)
	for _, p := range pairs {
		if p.CustomerCode == targetCustomerCode {
			targetProducts[p.ProductCode] = struct{}{}
			continue
		}
		byCustomer[p.CustomerCode] = append(byCustomer[p.CustomerCode], p)
		customerNames[p.CustomerCode] = p.CustomerName
	}
	if len(targetProducts) == 0 {
		return nil, nil
	}

	similar := make([]SimilarCustomer, 0)
	for code, rows := range byCustomer {
		shared := 0
		for _, row := range rows {
			if _, ok := targetProducts[row.ProductCode]; ok {
				shared++
			}
		}
		if shared >= minSharedProducts {
			similar = append(similar, SimilarCustomer{
				CustomerCode:   code,
				CustomerName:   customerNames[code],
				SharedProducts: shared,
			})
		}
	}
	sort.Slice(similar, func(i, j int) bool {
		if similar[i].SharedProducts != similar[j].SharedProducts {
			return similar[i].SharedProducts > similar[j].SharedProducts
		}
		return similar[i].CustomerCode < similar[j].CustomerCode
	})
	if len(similar) > maxSimilarCustomers {
		similar = similar[:maxSimilarCustomers]
	}

	// Count, per unpurchased product, how many of the similar customers
	// bought it.
	buyerCounts := make(map[string]int)
	productNames := make(map[string]string)
	for _, s := range similar {
		for _, row := range byCustomer[s.CustomerCode] {
			if _, ok := targetProducts[row.ProductCode]; ok {
				continue
			}
			buyerCounts[row.ProductCode]++
			productNames[row.ProductCode] = row.ProductName
		}
	}

	suggestions := make([]CrossSellSuggestion, 0, len(buyerCounts))
	for code, count := range buyerCounts {
		suggestions = append(suggestions, CrossSellSuggestion{
			ProductCode: code,
			ProductName: productNames[code],
			BuyerCount:  count,
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].BuyerCount != suggestions[j].BuyerCount {
			return suggestions[i].BuyerCount > suggestions[j].BuyerCount
		}
		return suggestions[i].ProductCode < suggestions[j].ProductCode
	})
	if len(suggestions) > maxCrossSellSuggestions {
		suggestions = suggestions[:maxCrossSellSuggestions]
	}
	return similar, suggestions
}
