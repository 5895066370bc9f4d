package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stock-sentry/internal/domain"
	"stock-sentry/internal/store"

	"github.com/shopspring/decimal"
)

type fakeQuotes struct {
	candles []domain.Candle
	err     error
}

func (f *fakeQuotes) Daily(ctx context.Context, symbol string) ([]domain.Candle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.candles, nil
}

func (f *fakeQuotes) Month(ctx context.Context, symbol string) ([]domain.Candle, error) {
	return f.Daily(ctx, symbol)
}

type fakeRates struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (f *fakeRates) Rate(ctx context.Context, base, target domain.CurrencyCode) (decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.rate, nil
}

type fakeRenderer struct {
	err    error
	titles []string
}

func (f *fakeRenderer) RenderCandlestick(candles []domain.Candle, title string) ([]byte, error) {
	f.titles = append(f.titles, title)
	if f.err != nil {
		return nil, f.err
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func barCandles(closes ...float64) []domain.Candle {
	out := make([]domain.Candle, 0, len(closes))
	base := time.Unix(1700000000, 0).UTC()
	for i, c := range closes {
		d := decimal.NewFromFloat(c)
		out = append(out, domain.Candle{
			OpenTime: base.Add(time.Duration(i) * 24 * time.Hour),
			Open:     d,
			High:     d.Add(decimal.NewFromInt(1)),
			Low:      d.Sub(decimal.NewFromInt(1)),
			Close:    d,
			Volume:   1_234_567,
		})
	}
	return out
}

func newTestBot(quotes QuoteSource, rates RateSource, renderer ChartRenderer) *Bot {
	return &Bot{
		sessions: NewSessionStore(),
		alerts:   store.NewAlertStore(),
		quotes:   quotes,
		rates:    rates,
		renderer: renderer,
	}
}

func TestPriceReportUSD(t *testing.T) {
	rates := &fakeRates{rate: decimal.NewFromInt(1)}
	b := newTestBot(&fakeQuotes{candles: barCandles(150.25)}, rates, nil)

	replies := b.priceReport(context.Background(), domain.CurrencyUSD, "aapl")
	if len(replies) != 1 {
		t.Fatalf("expected one reply, got %d", len(replies))
	}
	if !strings.Contains(replies[0], "AAPL") || !strings.Contains(replies[0], "$150.25") {
		t.Fatalf("unexpected report: %s", replies[0])
	}
	if !strings.Contains(replies[0], "1,234,567") {
		t.Fatalf("expected grouped volume, got %s", replies[0])
	}
	if rates.calls != 0 {
		t.Fatalf("USD display must not fetch a rate, got %d calls", rates.calls)
	}
}

func TestPriceReportConvertsCurrency(t *testing.T) {
	rates := &fakeRates{rate: decimal.RequireFromString("0.5")}
	b := newTestBot(&fakeQuotes{candles: barCandles(100)}, rates, nil)

	replies := b.priceReport(context.Background(), domain.CurrencyEUR, "AAPL")
	if len(replies) != 1 {
		t.Fatalf("expected one reply, got %d", len(replies))
	}
	if !strings.Contains(replies[0], "€50.00") {
		t.Fatalf("expected converted price, got %s", replies[0])
	}
	if !strings.Contains(replies[0], "Euro") {
		t.Fatalf("expected EUR display name, got %s", replies[0])
	}
}

func TestPriceReportRateFallbackToUSD(t *testing.T) {
	rates := &fakeRates{err: domain.NewFetchError("currency-api", "rate", errors.New("down"))}
	b := newTestBot(&fakeQuotes{candles: barCandles(100)}, rates, nil)

	replies := b.priceReport(context.Background(), domain.CurrencyEUR, "AAPL")
	if len(replies) != 2 {
		t.Fatalf("expected warning plus report, got %d replies", len(replies))
	}
	if replies[0] != msgRateFallback {
		t.Fatalf("expected rate fallback warning, got %s", replies[0])
	}
	if !strings.Contains(replies[1], "$100.00") {
		t.Fatalf("expected USD display, got %s", replies[1])
	}
}

func TestPriceReportValidationAndNotFound(t *testing.T) {
	b := newTestBot(&fakeQuotes{err: domain.ErrSymbolNotFound}, &fakeRates{}, nil)

	replies := b.priceReport(context.Background(), domain.CurrencyUSD, "AAPL!")
	if len(replies) != 1 || replies[0] != msgInvalidSymbol {
		t.Fatalf("expected invalid-symbol reply, got %+v", replies)
	}

	replies = b.priceReport(context.Background(), domain.CurrencyUSD, "NOPE")
	if len(replies) != 1 || !strings.Contains(replies[0], "NOPE not found") {
		t.Fatalf("expected not-found reply, got %+v", replies)
	}
}

func TestChartImageSuccess(t *testing.T) {
	renderer := &fakeRenderer{}
	b := newTestBot(&fakeQuotes{candles: barCandles(100, 101, 102)}, &fakeRates{}, renderer)

	png, caption, errText := b.chartImage(context.Background(), domain.CurrencyGBP, "btc-usd")
	if errText != "" {
		t.Fatalf("unexpected error text: %s", errText)
	}
	if len(png) == 0 {
		t.Fatal("expected image bytes")
	}
	if caption != "📈 BTC-USD Price Chart (GBP)" {
		t.Fatalf("unexpected caption: %s", caption)
	}
	if len(renderer.titles) != 1 || renderer.titles[0] != "BTC-USD - 1 Month Price (GBP)" {
		t.Fatalf("unexpected title: %+v", renderer.titles)
	}
}

func TestChartImageFailuresAreGeneric(t *testing.T) {
	b := newTestBot(&fakeQuotes{err: domain.NewFetchError("yahoo", "history", errors.New("down"))}, &fakeRates{}, &fakeRenderer{})
	if _, _, errText := b.chartImage(context.Background(), domain.CurrencyUSD, "AAPL"); errText != msgChartError {
		t.Fatalf("expected generic chart error on fetch failure, got %s", errText)
	}

	b = newTestBot(&fakeQuotes{candles: barCandles(100)}, &fakeRates{}, &fakeRenderer{err: errors.New("render failed")})
	if _, _, errText := b.chartImage(context.Background(), domain.CurrencyUSD, "AAPL"); errText != msgChartError {
		t.Fatalf("expected generic chart error on render failure, got %s", errText)
	}
}

func TestRegisterAlertSuccess(t *testing.T) {
	b := newTestBot(&fakeQuotes{candles: barCandles(150)}, &fakeRates{}, nil)

	reply, ok := b.registerAlert(context.Background(), 42, 99, domain.CurrencyUSD, "AAPL 150")
	if !ok {
		t.Fatalf("expected registration to succeed, got %s", reply)
	}
	if !strings.Contains(reply, "Alert set for AAPL at $150.00 (USD)") {
		t.Fatalf("unexpected confirmation: %s", reply)
	}

	alert, present := b.alerts.Get(42)
	if !present {
		t.Fatal("expected alert in store")
	}
	if alert.Symbol != "AAPL" || !alert.Target.Equal(decimal.NewFromInt(150)) ||
		alert.Currency != domain.CurrencyUSD || alert.ChatID != 99 {
		t.Fatalf("unexpected stored alert: %+v", alert)
	}
}

func TestRegisterAlertOverwritesPrior(t *testing.T) {
	b := newTestBot(&fakeQuotes{candles: barCandles(150)}, &fakeRates{}, nil)

	if _, ok := b.registerAlert(context.Background(), 42, 99, domain.CurrencyUSD, "AAPL 150"); !ok {
		t.Fatal("first registration failed")
	}
	if _, ok := b.registerAlert(context.Background(), 42, 99, domain.CurrencyEUR, "BTC-USD 60000"); !ok {
		t.Fatal("second registration failed")
	}

	if b.alerts.Len() != 1 {
		t.Fatalf("expected single alert per user, got %d", b.alerts.Len())
	}
	alert, _ := b.alerts.Get(42)
	if alert.Symbol != "BTC-USD" || alert.Currency != domain.CurrencyEUR {
		t.Fatalf("expected replacement alert, got %+v", alert)
	}
}

func TestRegisterAlertMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"one token", "AAPL", msgAlertFormat},
		{"three tokens", "AAPL 150 USD", msgAlertFormat},
		{"bad symbol", "AAPL! 150", msgInvalidSymbol},
		{"bad price", "AAPL abc", msgInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBot(&fakeQuotes{candles: barCandles(150)}, &fakeRates{}, nil)

			reply, ok := b.registerAlert(context.Background(), 42, 99, domain.CurrencyUSD, tc.input)
			if ok {
				t.Fatal("expected registration to fail")
			}
			if reply != tc.want {
				t.Fatalf("unexpected reply: %s", reply)
			}
			if b.alerts.Len() != 0 {
				t.Fatal("malformed input must not write to the store")
			}
		})
	}
}

func TestRegisterAlertUnknownSymbol(t *testing.T) {
	b := newTestBot(&fakeQuotes{err: domain.ErrSymbolNotFound}, &fakeRates{}, nil)

	reply, ok := b.registerAlert(context.Background(), 42, 99, domain.CurrencyUSD, "ZZZZ 10")
	if ok || !strings.Contains(reply, "ZZZZ not found") {
		t.Fatalf("expected not-found retry, got ok=%v reply=%s", ok, reply)
	}
	if b.alerts.Len() != 0 {
		t.Fatal("unknown symbol must not write to the store")
	}
}

func TestParseAlertSpecNormalizesCase(t *testing.T) {
	symbol, target, errText := parseAlertSpec("btc-usd 60000.5")
	if errText != "" {
		t.Fatalf("unexpected error: %s", errText)
	}
	if symbol != "BTC-USD" || !target.Equal(decimal.RequireFromString("60000.5")) {
		t.Fatalf("unexpected parse result: %s %s", symbol, target)
	}
}
