package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"

	apperrors "github.com/binss1/stock-dividend-tracker/internal/errors"
	"github.com/binss1/stock-dividend-tracker/internal/models"
)

// Broker exports arrive in a handful of encodings; they are tried in order.
// ISO-8859-1 and Windows-1252 never fail to decode, so they come last.
var decoders = []struct {
	name    string
	decoder *encoding.Decoder
}{
	{"euc-kr", korean.EUCKR.NewDecoder()},
	{"iso-8859-1", charmap.ISO8859_1.NewDecoder()},
	{"windows-1252", charmap.Windows1252.NewDecoder()},
}

// Loader reads a delimited holdings snapshot. The expected layout is five
// leading columns: market, ticker, company name, shares, purchase price;
// trailing columns are ignored. Any failure substitutes the built-in sample
// portfolio rather than aborting the run.
type Loader struct {
	path string
	log  *zap.Logger
}

func NewLoader(path string, log *zap.Logger) *Loader {
	return &Loader{path: path, log: log}
}

// Load returns the holdings snapshot and whether the sample portfolio was
// substituted for it.
func (l *Loader) Load() ([]*models.Holding, bool) {
	holdings, err := l.loadFile()
	if err != nil {
		l.log.Warn("using sample portfolio",
			zap.String("path", l.path),
			zap.Error(err))
		return models.SampleHoldings(), true
	}
	return holdings, false
}

func (l *Loader) loadFile() ([]*models.Holding, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings file: %w", err)
	}

	if utf8.Valid(raw) {
		if holdings, err := parseRows(string(raw)); err == nil {
			return holdings, nil
		}
	}

	for _, d := range decoders {
		decoded, decErr := d.decoder.String(string(raw))
		if decErr != nil {
			continue
		}
		holdings, parseErr := parseRows(decoded)
		if parseErr != nil {
			continue
		}
		l.log.Debug("decoded holdings file", zap.String("encoding", d.name))
		return holdings, nil
	}

	return nil, apperrors.ErrMalformedInput
}

func parseRows(content string) ([]*models.Holding, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	holdings := make([]*models.Holding, 0, len(rows))
	for i, row := range rows {
		h, err := parseRow(row)
		if err != nil {
			// Tolerate a header line but nothing else.
			if i == 0 {
				continue
			}
			return nil, err
		}
		holdings = append(holdings, h)
	}

	if len(holdings) == 0 {
		return nil, apperrors.ErrMalformedInput
	}
	return holdings, nil
}

func parseRow(row []string) (*models.Holding, error) {
	if len(row) < 5 {
		return nil, apperrors.ErrMalformedInput
	}

	shares, err := parseShares(row[3])
	if err != nil {
		return nil, err
	}
	price, err := parseAmount("purchase_price", row[4])
	if err != nil {
		return nil, err
	}

	h := &models.Holding{
		Market:        strings.TrimSpace(row[0]),
		Ticker:        strings.ToUpper(strings.TrimSpace(row[1])),
		CompanyName:   strings.TrimSpace(row[2]),
		Shares:        shares,
		PurchasePrice: price,
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("invalid holding row: %w", err)
	}
	return h, nil
}

func parseShares(field string) (int64, error) {
	d, err := parseAmount("shares", field)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || !d.IsPositive() {
		return 0, &apperrors.ErrValidation{Field: "shares", Message: "must be a positive integer, got " + field}
	}
	return d.IntPart(), nil
}

// parseAmount handles thousands separators in numeric export columns.
func parseAmount(field, value string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &apperrors.ErrValidation{Field: field, Message: "not a number: " + value}
	}
	return d, nil
}
