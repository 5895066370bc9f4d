package domain

import (
	"errors"
	"net"
)

// ErrSymbolNotFound is returned when the market-data provider has no recent
// trading data for a symbol. Not retriable from the same input.
var ErrSymbolNotFound = errors.New("symbol not found")

// FetchError wraps a failed upstream read (market data, exchange rates,
// chart delivery). Callers decide the fallback; nothing retries internally.
type FetchError struct {
	Source string // upstream name, e.g. "yahoo", "currency-api"
	Op     string // operation that failed, e.g. "history", "rate"
	Err    error
}

func (e *FetchError) Error() string {
	return e.Source + " " + e.Op + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err as an upstream fetch failure.
func NewFetchError(source, op string, err error) *FetchError {
	return &FetchError{Source: source, Op: op, Err: err}
}

// IsFetchFailure reports whether err came from an upstream fetch.
func IsFetchFailure(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsTimeout reports whether err is a network timeout at any wrap depth.
func IsTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
