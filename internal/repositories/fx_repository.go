package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/binss1/stock-dividend-tracker/internal/db"
	"github.com/binss1/stock-dividend-tracker/internal/models"
)

type fxRateRepository struct {
	db *db.DB
}

// NewFXRateRepository creates a new exchange rate repository
func NewFXRateRepository(database *db.DB) FXRateRepository {
	return &fxRateRepository{db: database}
}

func (r *fxRateRepository) Append(ctx context.Context, rate *models.ExchangeRate) error {
	if err := rate.Validate(); err != nil {
		return fmt.Errorf("invalid exchange rate: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(rate).Error; err != nil {
		return fmt.Errorf("failed to append exchange rate: %w", err)
	}
	return nil
}

// Latest returns the most recent observation for the pair, or nil when the
// log is empty.
func (r *fxRateRepository) Latest(ctx context.Context, pair string) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := r.db.WithContext(ctx).
		Where("currency_pair = ?", pair).
		Order("created_at DESC, id DESC").
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest exchange rate: %w", err)
	}
	return &rate, nil
}
