package domain

// CurrencyCode identifies one of the closed set of display currencies.
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyUZS CurrencyCode = "UZS"
	CurrencyRUB CurrencyCode = "RUB"
	CurrencyGBP CurrencyCode = "GBP"
)

// Currency carries the static display attributes of a currency code.
type Currency struct {
	Symbol string
	Name   string
}

// SupportedCurrencies is fixed at process start; codes are never added or
// removed at runtime.
var SupportedCurrencies = map[CurrencyCode]Currency{
	CurrencyUSD: {Symbol: "$", Name: "US Dollar"},
	CurrencyEUR: {Symbol: "€", Name: "Euro"},
	CurrencyUZS: {Symbol: "soʻm", Name: "Uzbekistani Som"},
	CurrencyRUB: {Symbol: "₽", Name: "Russian Ruble"},
	CurrencyGBP: {Symbol: "£", Name: "British Pound"},
}

// CurrencyOrder fixes the listing order for menus and help text.
var CurrencyOrder = []CurrencyCode{
	CurrencyUSD, CurrencyEUR, CurrencyUZS, CurrencyRUB, CurrencyGBP,
}

// ValidCurrency reports whether code is one of the supported codes.
func ValidCurrency(code CurrencyCode) bool {
	_, ok := SupportedCurrencies[code]
	return ok
}

// CurrencyByCode returns the display attributes for code, falling back to
// USD for anything outside the table.
func CurrencyByCode(code CurrencyCode) Currency {
	if cur, ok := SupportedCurrencies[code]; ok {
		return cur
	}
	return SupportedCurrencies[CurrencyUSD]
}
