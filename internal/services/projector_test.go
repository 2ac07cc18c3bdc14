package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/binss1/stock-dividend-tracker/internal/models"
)

func record(ticker string, frequency models.Frequency, annual string) *models.DividendRecord {
	return &models.DividendRecord{
		Ticker:         ticker,
		Frequency:      frequency,
		AnnualDividend: decimal.RequireFromString(annual),
	}
}

func TestProjectQuarterly(t *testing.T) {
	records := []*models.DividendRecord{record("A", models.FrequencyQuarterly, "4.00")}
	shares := map[string]int64{"A": 10}

	projection := Project(records, shares)
	if len(projection) != 12 {
		t.Fatalf("expected 12 months, got %d", len(projection))
	}

	ten := decimal.NewFromInt(10)
	for _, p := range projection {
		switch p.Month {
		case 3, 6, 9, 12:
			if !p.Amount.Equal(ten) {
				t.Fatalf("month %d: expected 10, got %s", p.Month, p.Amount)
			}
		default:
			if !p.Amount.IsZero() {
				t.Fatalf("month %d: expected 0, got %s", p.Month, p.Amount)
			}
		}
	}
	if !projection[11].Cumulative.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected cumulative 40 in December, got %s", projection[11].Cumulative)
	}
	if projection[2].MonthName != "March" {
		t.Fatalf("expected March, got %s", projection[2].MonthName)
	}
}

func TestProjectMixedFrequencies(t *testing.T) {
	records := []*models.DividendRecord{
		record("A", models.FrequencyMonthly, "12.00"),
		record("B", models.FrequencyQuarterly, "4.00"),
	}
	shares := map[string]int64{"A": 5, "B": 10}

	projection := Project(records, shares)

	// January: monthly only, 12/12 * 5 = 5.
	if !projection[0].Amount.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("January: expected 5, got %s", projection[0].Amount)
	}
	// March: monthly 5 + quarterly 4/4 * 10 = 15.
	if !projection[2].Amount.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("March: expected 15, got %s", projection[2].Amount)
	}

	total := decimal.Zero
	for _, p := range projection {
		total = total.Add(p.Amount)
	}
	if !projection[11].Cumulative.Equal(total) {
		t.Fatalf("December cumulative %s != total %s", projection[11].Cumulative, total)
	}
}

func TestProjectOrderIndependent(t *testing.T) {
	a := record("A", models.FrequencyMonthly, "12.00")
	b := record("B", models.FrequencySemiAnnual, "2.00")
	c := record("C", models.FrequencyAnnual, "3.00")
	shares := map[string]int64{"A": 1, "B": 2, "C": 3}

	first := Project([]*models.DividendRecord{a, b, c}, shares)
	second := Project([]*models.DividendRecord{c, a, b}, shares)

	for i := range first {
		if !first[i].Amount.Equal(second[i].Amount) {
			t.Fatalf("month %d differs across input orders: %s vs %s",
				first[i].Month, first[i].Amount, second[i].Amount)
		}
	}
}

func TestProjectExclusions(t *testing.T) {
	records := []*models.DividendRecord{
		record("IRR", models.FrequencyIrregular, "5.00"),
		record("UNK", models.FrequencyUnknown, "5.00"),
		record("ZERO", models.FrequencyQuarterly, "0"),
		record("GONE", models.FrequencyQuarterly, "4.00"), // not held
	}
	shares := map[string]int64{"IRR": 10, "UNK": 10, "ZERO": 10}

	projection := Project(records, shares)
	for _, p := range projection {
		if !p.Amount.IsZero() {
			t.Fatalf("month %d: expected no contribution, got %s", p.Month, p.Amount)
		}
	}
}

func TestProjectEmpty(t *testing.T) {
	projection := Project(nil, nil)
	if len(projection) != 12 {
		t.Fatalf("expected 12 zero months, got %d", len(projection))
	}
	if !projection[11].Cumulative.IsZero() {
		t.Fatalf("expected zero cumulative, got %s", projection[11].Cumulative)
	}
}
