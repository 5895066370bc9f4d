package bot

import (
	"fmt"
	"strings"

	"stock-sentry/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	msgInvalidSymbol = "⚠️ Invalid symbol. Use 1-12 characters with letters, numbers, ^, -, ., or = (e.g., AAPL, ^GSPC, BTC-USD)"
	msgAlertFormat   = "⚠️ Invalid format! Use: SYMBOL PRICE\nExample: AAPL 150"
	msgInvalidPrice  = "⚠️ Invalid price! Enter a valid number"
	msgRateFallback  = "⚠️ Could not fetch exchange rate. Displaying in USD."
	msgFetchError    = "⚠️ Error fetching data. Please try again."
	msgChartError    = "⚠️ Error generating chart. Please try again."
	msgTimeoutError  = "⚠️ Connection timed out. Please check your internet connection and try again."
	msgGenericError  = "⚠️ An unexpected error occurred. Please try again later."

	promptSymbol      = "💰 Enter symbol (e.g., AAPL, ^GSPC, BTC-USD):"
	promptChartSymbol = "📊 Enter symbol for chart (e.g., AAPL, ^GSPC, BTC-USD):"
	promptAlertSpec   = "🔔 Enter symbol and price (e.g., AAPL 150, BTC-USD 60000):"
	promptNextAction  = "Select another option:"

	helpText = "ℹ️ *Help Menu*\n\n" +
		"*Available Commands:*\n" +
		"/start - Restart the bot\n" +
		"/currency CODE - Change currency (e.g., /currency USD)\n" +
		"/price SYMBOL - Get price for a symbol (e.g., /price AAPL)\n" +
		"/chart SYMBOL - Get chart for a symbol (e.g., /chart BTC-USD)\n" +
		"/alert SYMBOL PRICE - Set an alert (e.g., /alert ^GSPC 5000)\n\n" +
		"*Symbol Examples:*\n" +
		"AAPL - Apple\n" +
		"^GSPC - S&P 500\n" +
		"BTC-USD - Bitcoin\n" +
		"EURUSD=X - Euro/USD\n\n" +
		"Alert format: SYMBOL PRICE\nExample: AAPL 150"
)

func menuText(cur domain.CurrencyCode) string {
	var lines []string
	for _, code := range domain.CurrencyOrder {
		info := domain.SupportedCurrencies[code]
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", code, info.Name, info.Symbol))
	}
	return fmt.Sprintf("📈 *Stock Monitoring Bot*\n\n💱 Supported Currencies (use /currency CODE to change):\n%s\n\nCurrent currency: %s\n\nSelect an option:",
		strings.Join(lines, "\n"), cur)
}

func notFoundText(symbol string) string {
	return fmt.Sprintf("⚠️ %s not found. Please check the symbol and try again.", symbol)
}

func currencyChangedText(code domain.CurrencyCode) string {
	return fmt.Sprintf("✅ Currency changed to %s (%s)", domain.CurrencyByCode(code).Name, code)
}

func alertConfirmationText(alert domain.Alert) string {
	info := domain.CurrencyByCode(alert.Currency)
	return fmt.Sprintf("✅ Alert set for %s at %s%s (%s)",
		alert.Symbol, info.Symbol, alert.Target.StringFixed(2), alert.Currency)
}

// priceReportText renders the close/high/low/volume block. Close comes from
// the newest bar, high and low span all returned bars, and each price is
// already multiplied by the display-currency rate.
func priceReportText(symbol string, cur domain.CurrencyCode, candles []domain.Candle, rate decimal.Decimal) string {
	info := domain.CurrencyByCode(cur)

	last := candles[len(candles)-1]
	high := candles[0].High
	low := candles[0].Low
	for _, c := range candles[1:] {
		if c.High.GreaterThan(high) {
			high = c.High
		}
		if c.Low.LessThan(low) {
			low = c.Low
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *%s* (%s)\n", symbol, info.Name)
	fmt.Fprintf(&b, "💰 Current Price: %s%s\n", info.Symbol, last.Close.Mul(rate).StringFixed(2))
	fmt.Fprintf(&b, "📈 High: %s%s\n", info.Symbol, high.Mul(rate).StringFixed(2))
	fmt.Fprintf(&b, "📉 Low: %s%s\n", info.Symbol, low.Mul(rate).StringFixed(2))
	if last.Volume > 0 {
		fmt.Fprintf(&b, "🔄 Volume: %s\n", groupDigits(last.Volume))
	}
	return b.String()
}

// groupDigits renders n with comma thousand separators.
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
