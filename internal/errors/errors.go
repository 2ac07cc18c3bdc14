package errors

import "errors"

// ErrNotFound is returned by providers and the market data gateway when no
// usable data exists for a ticker. Malformed or empty provider payloads map
// to ErrNotFound rather than escaping as parse errors.
var ErrNotFound = errors.New("not found")

// ErrMalformedInput is returned when the holdings input file cannot be read
// in any supported encoding or is missing the expected columns.
var ErrMalformedInput = errors.New("malformed input")

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}
