package importing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vendascrm/backend/internal/domain/ledger"
	"github.com/vendascrm/backend/internal/domain/shared"
)

// Rebuilder triggers a metrics rebuild after the ledger changed.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// ImportResult reports what a ledger replacement did.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// LedgerImportService wholesale-replaces the sales ledger and triggers the
// rebuild that derives the rollups from it.
type LedgerImportService struct {
	ledgerRepo ledger.Repository
	rebuilder  Rebuilder
	logger     *zap.Logger
	batchMax   int
}

// NewLedgerImportService creates a LedgerImportService. batchMax bounds the
// number of lines accepted in one replacement.
func NewLedgerImportService(
	ledgerRepo ledger.Repository,
	rebuilder Rebuilder,
	logger *zap.Logger,
	batchMax int,
) *LedgerImportService {
	return &LedgerImportService{
		ledgerRepo: ledgerRepo,
		rebuilder:  rebuilder,
		logger:     logger,
		batchMax:   batchMax,
	}
}

// ReplaceLedger replaces the whole ledger in one transaction and rebuilds
// the rollups. Lines without a transaction id or date are skipped, not
// rejected; an entirely empty batch is invalid input. The rebuild error, if
// any, is returned so the caller knows the rollups are stale.
func (s *LedgerImportService) ReplaceLedger(ctx context.Context, lines []*ledger.SaleLine) (*ImportResult, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Import batch is empty")
	}
	if s.batchMax > 0 && len(lines) > s.batchMax {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Import batch exceeds the maximum of %d lines", s.batchMax))
	}

	valid := make([]*ledger.SaleLine, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		if line == nil || strings.TrimSpace(line.TransactionID) == "" || line.Date.IsZero() {
			skipped++
			continue
		}
		valid = append(valid, line)
	}
	if len(valid) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Import batch has no usable lines")
	}

	start := time.Now()
	imported, err := s.ledgerRepo.ReplaceAll(ctx, valid)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ledger replaced",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
		zap.Duration("took", time.Since(start)))

	if err := s.rebuilder.Rebuild(ctx); err != nil {
		return nil, err
	}
	return &ImportResult{Imported: imported, Skipped: skipped}, nil
}
