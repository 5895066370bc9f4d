package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stock-sentry/internal/domain"

	"github.com/shopspring/decimal"
)

const msgAlertError = "⚠️ Error setting alert. Please try again."

// QuoteSource supplies daily and monthly bar history.
type QuoteSource interface {
	Daily(ctx context.Context, symbol string) ([]domain.Candle, error)
	Month(ctx context.Context, symbol string) ([]domain.Candle, error)
}

// RateSource supplies currency conversion multipliers.
type RateSource interface {
	Rate(ctx context.Context, base, target domain.CurrencyCode) (decimal.Decimal, error)
}

// ChartRenderer turns a bar series into a PNG.
type ChartRenderer interface {
	RenderCandlestick(candles []domain.Candle, title string) ([]byte, error)
}

// priceReport runs a price lookup and returns the messages to deliver, in
// order. A failed exchange-rate fetch downgrades the display to USD with a
// warning instead of failing the lookup.
func (b *Bot) priceReport(ctx context.Context, cur domain.CurrencyCode, symbol string) []string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !domain.ValidSymbol(symbol) {
		return []string{msgInvalidSymbol}
	}

	candles, err := b.quotes.Daily(ctx, symbol)
	if errors.Is(err, domain.ErrSymbolNotFound) {
		return []string{notFoundText(symbol)}
	}
	if err != nil {
		return []string{msgFetchError}
	}

	var replies []string
	rate := decimal.NewFromInt(1)
	display := cur
	if cur != domain.CurrencyUSD {
		r, err := b.rates.Rate(ctx, domain.CurrencyUSD, cur)
		if err != nil {
			replies = append(replies, msgRateFallback)
			display = domain.CurrencyUSD
		} else {
			rate = r
		}
	}

	replies = append(replies, priceReportText(symbol, display, candles, rate))
	return replies
}

// chartImage fetches a month of bars and renders a candlestick chart.
// Any fetch or render failure collapses into one generic chart error; a
// partial image is never produced.
func (b *Bot) chartImage(ctx context.Context, cur domain.CurrencyCode, symbol string) (png []byte, caption, errText string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !domain.ValidSymbol(symbol) {
		return nil, "", msgInvalidSymbol
	}

	candles, err := b.quotes.Month(ctx, symbol)
	if errors.Is(err, domain.ErrSymbolNotFound) {
		return nil, "", notFoundText(symbol)
	}
	if err != nil {
		return nil, "", msgChartError
	}

	title := fmt.Sprintf("%s - 1 Month Price (%s)", symbol, cur)
	png, err = b.renderer.RenderCandlestick(candles, title)
	if err != nil {
		return nil, "", msgChartError
	}

	caption = fmt.Sprintf("📈 %s Price Chart (%s)", symbol, cur)
	return png, caption, ""
}

// registerAlert validates an alert spec and writes it into the store. ok is
// false when the user should stay in the alert-entry step and retry.
func (b *Bot) registerAlert(ctx context.Context, userID, chatID int64, cur domain.CurrencyCode, text string) (reply string, ok bool) {
	symbol, target, errText := parseAlertSpec(text)
	if errText != "" {
		return errText, false
	}

	// The symbol must resolve upstream before the alert is accepted.
	if _, err := b.quotes.Daily(ctx, symbol); err != nil {
		if errors.Is(err, domain.ErrSymbolNotFound) {
			return fmt.Sprintf("⚠️ %s not found. Please check the symbol.", symbol), false
		}
		return msgAlertError, false
	}

	alert := domain.Alert{
		Symbol:   symbol,
		Target:   target,
		Currency: cur,
		ChatID:   chatID,
	}
	b.alerts.Put(userID, alert)
	return alertConfirmationText(alert), true
}

// parseAlertSpec splits "SYMBOL PRICE" input and validates both tokens.
// Returns a user-facing error text when the input is malformed.
func parseAlertSpec(text string) (string, decimal.Decimal, string) {
	parts := strings.Fields(strings.ToUpper(text))
	if len(parts) != 2 {
		return "", decimal.Zero, msgAlertFormat
	}

	symbol := parts[0]
	if !domain.ValidSymbol(symbol) {
		return "", decimal.Zero, msgInvalidSymbol
	}

	target, err := decimal.NewFromString(parts[1])
	if err != nil {
		return "", decimal.Zero, msgInvalidPrice
	}

	return symbol, target, ""
}
