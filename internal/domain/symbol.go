package domain

import "regexp"

// symbolPattern accepts plain tickers (AAPL), index symbols (^GSPC), crypto
// pairs (BTC-USD) and FX pairs (EURUSD=X): 1-12 characters, leading letter,
// digit or caret, interior letters, digits, ^, -, . or =.
var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9^][A-Za-z0-9.^=-]{0,11}$`)

// ValidSymbol reports whether raw looks like an instrument symbol. Purely
// syntactic; existence is checked against the market-data provider.
func ValidSymbol(raw string) bool {
	return symbolPattern.MatchString(raw)
}
