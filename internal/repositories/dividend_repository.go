package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/binss1/stock-dividend-tracker/internal/db"
	"github.com/binss1/stock-dividend-tracker/internal/models"
)

type dividendRepository struct {
	db *db.DB
}

// NewDividendRepository creates a new dividend repository
func NewDividendRepository(database *db.DB) DividendRepository {
	return &dividendRepository{db: database}
}

// Upsert inserts or overwrites the record for its ticker. No history is
// retained; the latest normalization wins.
func (r *dividendRepository) Upsert(ctx context.Context, record *models.DividendRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid dividend record for %s: %w", record.Ticker, err)
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "ex_dividend_date", "payment_date",
			"dividend_amount", "dividend_yield", "frequency",
			"annual_dividend", "source", "last_updated",
		}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert dividend record for %s: %w", record.Ticker, err)
	}
	return nil
}

func (r *dividendRepository) List(ctx context.Context) ([]*models.DividendRecord, error) {
	var records []*models.DividendRecord
	if err := r.db.WithContext(ctx).Order("ticker ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list dividend records: %w", err)
	}
	return records, nil
}
