package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/binss1/stock-dividend-tracker/internal/models"
)

// payoutMonths maps each classifiable frequency to the fixed calendar months
// it pays in and the per-payment fraction of the annual amount. Irregular and
// Unknown records are excluded from the projection entirely.
var payoutMonths = map[models.Frequency]struct {
	months   []int
	payments int64
}{
	models.FrequencyMonthly:    {months: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, payments: 12},
	models.FrequencyQuarterly:  {months: []int{3, 6, 9, 12}, payments: 4},
	models.FrequencySemiAnnual: {months: []int{6, 12}, payments: 2},
	models.FrequencyAnnual:     {months: []int{12}, payments: 1},
}

// Project buckets each record's share-weighted annual dividend into calendar
// months and returns the twelve months in order with a running cumulative.
// Records with no positive annual amount, no shares held or an
// unclassifiable frequency contribute nothing.
func Project(records []*models.DividendRecord, sharesByTicker map[string]int64) []models.MonthlyProjection {
	buckets := make(map[int]decimal.Decimal, 12)

	for _, record := range records {
		schedule, ok := payoutMonths[record.Frequency]
		if !ok || !record.AnnualDividend.IsPositive() {
			continue
		}
		shares := sharesByTicker[record.Ticker]
		if shares <= 0 {
			continue
		}

		perPayment := record.AnnualDividend.
			Div(decimal.NewFromInt(schedule.payments)).
			Mul(decimal.NewFromInt(shares))
		for _, month := range schedule.months {
			buckets[month] = buckets[month].Add(perPayment)
		}
	}

	projection := make([]models.MonthlyProjection, 0, 12)
	cumulative := decimal.Zero
	for month := 1; month <= 12; month++ {
		amount := buckets[month]
		cumulative = cumulative.Add(amount)
		projection = append(projection, models.MonthlyProjection{
			Month:      month,
			MonthName:  time.Month(month).String(),
			Amount:     amount,
			Cumulative: cumulative,
		})
	}
	return projection
}
