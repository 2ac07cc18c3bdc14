package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/binss1/stock-dividend-tracker/internal/db"
	"github.com/binss1/stock-dividend-tracker/internal/models"
)

type holdingRepository struct {
	db *db.DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(database *db.DB) HoldingRepository {
	return &holdingRepository{db: database}
}

// ReplaceAll deletes the prior snapshot and inserts the new one in a single
// transaction. There is no incremental merge; the run owns the whole table.
func (r *holdingRepository) ReplaceAll(ctx context.Context, holdings []*models.Holding) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM holdings").Error; err != nil {
			return fmt.Errorf("failed to clear holdings: %w", err)
		}
		for _, h := range holdings {
			if h == nil {
				return fmt.Errorf("nil holding in snapshot")
			}
			if err := h.Validate(); err != nil {
				return fmt.Errorf("invalid holding %s: %w", h.Ticker, err)
			}
			if err := tx.Create(h).Error; err != nil {
				return fmt.Errorf("failed to insert holding %s: %w", h.Ticker, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace holdings: %w", err)
	}
	return nil
}

// UpdateValuation writes the price-derived figures back to the stored row.
func (r *holdingRepository) UpdateValuation(ctx context.Context, holding *models.Holding) error {
	result := r.db.WithContext(ctx).
		Model(&models.Holding{}).
		Where("ticker = ?", holding.Ticker).
		Updates(map[string]interface{}{
			"current_price":       holding.CurrentPrice,
			"total_value":         holding.TotalValue,
			"profit_loss_amount":  holding.ProfitLossAmount,
			"profit_loss_percent": holding.ProfitLossPercent,
			"last_updated":        holding.LastUpdated,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update valuation for %s: %w", holding.Ticker, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("holding not found: %s", holding.Ticker)
	}
	return nil
}

func (r *holdingRepository) List(ctx context.Context) ([]*models.Holding, error) {
	var holdings []*models.Holding
	if err := r.db.WithContext(ctx).Order("ticker ASC").Find(&holdings).Error; err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return holdings, nil
}
