package bot

import (
	"strings"
	"testing"

	"stock-sentry/internal/domain"

	"github.com/shopspring/decimal"
)

func TestGroupDigits(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		1234567:    "1,234,567",
		1000000000: "1,000,000,000",
	}
	for n, want := range cases {
		if got := groupDigits(n); got != want {
			t.Errorf("groupDigits(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestPriceReportTextSpansBars(t *testing.T) {
	candles := barCandles(100, 110, 105)
	text := priceReportText("AAPL", domain.CurrencyUSD, candles, decimal.NewFromInt(1))

	if !strings.Contains(text, "Current Price: $105.00") {
		t.Errorf("expected newest close, got:\n%s", text)
	}
	if !strings.Contains(text, "High: $111.00") {
		t.Errorf("expected max high across bars, got:\n%s", text)
	}
	if !strings.Contains(text, "Low: $99.00") {
		t.Errorf("expected min low across bars, got:\n%s", text)
	}
}

func TestPriceReportTextOmitsZeroVolume(t *testing.T) {
	candles := barCandles(100)
	candles[0].Volume = 0
	text := priceReportText("EURUSD=X", domain.CurrencyUSD, candles, decimal.NewFromInt(1))

	if strings.Contains(text, "Volume") {
		t.Errorf("expected volume line omitted, got:\n%s", text)
	}
}

func TestMenuTextListsCurrencies(t *testing.T) {
	text := menuText(domain.CurrencyRUB)
	for _, code := range domain.CurrencyOrder {
		if !strings.Contains(text, string(code)) {
			t.Errorf("menu missing currency %s:\n%s", code, text)
		}
	}
	if !strings.Contains(text, "Current currency: RUB") {
		t.Errorf("menu missing current currency:\n%s", text)
	}
}
