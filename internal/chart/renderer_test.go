package chart

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"stock-sentry/internal/domain"

	"github.com/shopspring/decimal"
)

func TestRenderCandlestick(t *testing.T) {
	renderer := NewRenderer()
	candles := buildTestCandles(30)

	data, err := renderer.RenderCandlestick(candles, "AAPL - 1 Month Price (USD)")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty image bytes")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != defaultChartWidth || bounds.Dy() != defaultChartHeight {
		t.Fatalf("unexpected dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderCandlestickCapsSeries(t *testing.T) {
	renderer := NewRenderer()

	if _, err := renderer.RenderCandlestick(buildTestCandles(200), "long history"); err != nil {
		t.Fatalf("render failed on oversized series: %v", err)
	}
}

func TestRenderCandlestickRejectsShortSeries(t *testing.T) {
	renderer := NewRenderer()

	if _, err := renderer.RenderCandlestick(buildTestCandles(1), "too short"); err == nil {
		t.Fatal("expected error for a single candle")
	}
	if _, err := renderer.RenderCandlestick(nil, "empty"); err == nil {
		t.Fatal("expected error for no candles")
	}
}

func buildTestCandles(count int) []domain.Candle {
	base := time.Now().UTC().Add(-time.Duration(count) * 24 * time.Hour)
	out := make([]domain.Candle, 0, count)
	price := 150.0
	for i := 0; i < count; i++ {
		step := float64((i%9)-4) * 1.5
		open := price
		close := price + step
		high := maxFloat(open, close) + 2
		low := minFloat(open, close) - 2
		out = append(out, domain.Candle{
			OpenTime: base.Add(time.Duration(i) * 24 * time.Hour),
			Open:     decimal.NewFromFloat(open),
			High:     decimal.NewFromFloat(high),
			Low:      decimal.NewFromFloat(low),
			Close:    decimal.NewFromFloat(close),
			Volume:   int64(1000 + (i%17)*80),
		})
		price = close
	}
	return out
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
