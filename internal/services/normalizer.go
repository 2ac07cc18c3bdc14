package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/binss1/stock-dividend-tracker/internal/models"
)

var four = decimal.NewFromInt(4)

// NormalizeHistory builds a dividend record from a dated payment history.
// The history must be sorted most recent first and non-empty. The annual
// figure sums up to the four most recent payments and the payout frequency
// is classified from the gap between the two latest ex-dates.
func NormalizeHistory(ticker, companyName string, history []models.DividendPayment, currentPrice decimal.Decimal) *models.DividendRecord {
	latest := history[0]
	exDate := latest.ExDate

	annual := decimal.Zero
	for i, payment := range history {
		if i >= 4 {
			break
		}
		annual = annual.Add(payment.Amount)
	}

	frequency := models.FrequencyUnknown
	if len(history) >= 2 {
		gap := int(history[0].ExDate.Sub(history[1].ExDate).Hours() / 24)
		frequency = classifyByInterval(gap)
	}

	return &models.DividendRecord{
		Ticker:         ticker,
		CompanyName:    companyName,
		ExDividendDate: &exDate,
		DividendAmount: latest.Amount,
		DividendYield:  deriveYield(annual, currentPrice),
		Frequency:      frequency,
		AnnualDividend: annual,
		LastUpdated:    time.Now().UTC(),
	}
}

// NormalizeSummary builds a dividend record from a company profile carrying
// only summary figures. Returns nil when the profile has no dividend data at
// all so the gateway can try the next provider.
func NormalizeSummary(ticker string, profile *models.CompanyProfile, currentPrice decimal.Decimal) *models.DividendRecord {
	if profile == nil || !profile.HasDividendData() {
		return nil
	}

	annual := profile.AnnualDividend
	amount := profile.LastDividend
	if amount.IsZero() && annual.IsPositive() {
		amount = annual.Div(four)
	}

	yield := profile.DividendYield
	if yield.IsZero() {
		yield = deriveYield(annual, currentPrice)
	}

	return &models.DividendRecord{
		Ticker:         ticker,
		CompanyName:    profile.CompanyName,
		ExDividendDate: profile.ExDividendDate,
		DividendAmount: amount,
		DividendYield:  yield,
		Frequency:      classifyByRatio(annual, profile.LastDividend),
		AnnualDividend: annual,
		LastUpdated:    time.Now().UTC(),
	}
}

// classifyByRatio infers frequency from how many times the last single
// payment fits into the annual rate.
func classifyByRatio(annual, last decimal.Decimal) models.Frequency {
	if !annual.IsPositive() || !last.IsPositive() {
		return models.FrequencyUnknown
	}
	switch annual.Div(last).Round(0).IntPart() {
	case 12:
		return models.FrequencyMonthly
	case 4:
		return models.FrequencyQuarterly
	case 2:
		return models.FrequencySemiAnnual
	case 1:
		return models.FrequencyAnnual
	default:
		return models.FrequencyIrregular
	}
}

// classifyByInterval infers frequency from the number of days between the
// two most recent ex-dividend dates.
func classifyByInterval(gapDays int) models.Frequency {
	switch {
	case gapDays < 40:
		return models.FrequencyMonthly
	case gapDays < 100:
		return models.FrequencyQuarterly
	case gapDays < 200:
		return models.FrequencySemiAnnual
	default:
		return models.FrequencyAnnual
	}
}

func deriveYield(annual, price decimal.Decimal) decimal.Decimal {
	if !annual.IsPositive() || !price.IsPositive() {
		return decimal.Zero
	}
	return annual.Div(price).Mul(hundred)
}
