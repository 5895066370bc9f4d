// Package chart renders candlestick PNGs without a plotting dependency; the
// raster primitives below cover everything a daily chart needs.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sort"

	"stock-sentry/internal/domain"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	defaultChartWidth  = 960
	defaultChartHeight = 640
	maxChartCandles    = 120
)

var (
	colBackground = color.RGBA{R: 250, G: 252, B: 255, A: 255}
	colGrid       = color.RGBA{R: 225, G: 232, B: 240, A: 255}
	colBull       = color.RGBA{R: 18, G: 140, B: 126, A: 255}
	colBear       = color.RGBA{R: 210, G: 61, B: 87, A: 255}
	colWick       = color.RGBA{R: 58, G: 64, B: 90, A: 255}
	colVolume     = color.RGBA{R: 120, G: 139, B: 164, A: 255}
	colTitle      = color.RGBA{R: 40, G: 46, B: 68, A: 255}
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderCandlestick draws the price history as a candlestick panel with a
// volume panel below it and encodes the result as PNG.
func (r *Renderer) RenderCandlestick(candles []domain.Candle, title string) ([]byte, error) {
	series := normalizeCandles(candles)
	if len(series) < 2 {
		return nil, fmt.Errorf("need at least 2 candles to render chart")
	}
	if len(series) > maxChartCandles {
		series = series[len(series)-maxChartCandles:]
	}

	img := image.NewRGBA(image.Rect(0, 0, defaultChartWidth, defaultChartHeight))
	fillRect(img, img.Bounds(), colBackground)

	mainRect := image.Rect(60, 40, defaultChartWidth-20, (defaultChartHeight*72)/100)
	volRect := image.Rect(60, mainRect.Max.Y+16, defaultChartWidth-20, defaultChartHeight-30)
	drawGrid(img, mainRect, 8, 6)
	drawGrid(img, volRect, 8, 3)

	drawCandles(img, mainRect, series)
	drawVolumeBars(img, volRect, series)
	drawTitle(img, title)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type bar struct {
	open, high, low, close float64
	volume                 float64
}

// normalizeCandles orders bars by time and flattens the decimal fields into
// the float64s the raster math works in.
func normalizeCandles(in []domain.Candle) []bar {
	sorted := append([]domain.Candle(nil), in...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].OpenTime.Before(sorted[j].OpenTime) })

	out := make([]bar, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, bar{
			open:   c.Open.InexactFloat64(),
			high:   c.High.InexactFloat64(),
			low:    c.Low.InexactFloat64(),
			close:  c.Close.InexactFloat64(),
			volume: float64(c.Volume),
		})
	}
	return out
}

func drawCandles(img *image.RGBA, rect image.Rectangle, bars []bar) {
	minPrice := bars[0].low
	maxPrice := bars[0].high
	for _, b := range bars {
		if b.low < minPrice {
			minPrice = b.low
		}
		if b.high > maxPrice {
			maxPrice = b.high
		}
	}
	if maxPrice <= minPrice {
		maxPrice = minPrice + 1
	}

	candleWidth := max(3, (rect.Dx()-10)/len(bars)-1)
	for i, b := range bars {
		x := mapIndexToX(i, len(bars), rect)
		highY := mapValueToY(b.high, minPrice, maxPrice, rect)
		lowY := mapValueToY(b.low, minPrice, maxPrice, rect)
		drawLine(img, x, highY, x, lowY, colWick)

		openY := mapValueToY(b.open, minPrice, maxPrice, rect)
		closeY := mapValueToY(b.close, minPrice, maxPrice, rect)
		top := min(openY, closeY)
		bottom := max(openY, closeY)
		if bottom-top < 2 {
			bottom = top + 2
		}

		bodyRect := image.Rect(x-candleWidth/2, top, x+candleWidth/2+1, bottom+1)
		bodyColor := colBull
		if b.close < b.open {
			bodyColor = colBear
		}
		fillRect(img, bodyRect, bodyColor)
	}
}

func drawVolumeBars(img *image.RGBA, rect image.Rectangle, bars []bar) {
	maxVolume := 0.0
	for _, b := range bars {
		if b.volume > maxVolume {
			maxVolume = b.volume
		}
	}
	if maxVolume <= 0 {
		return
	}

	barW := max(1, (rect.Dx()-10)/len(bars)-1)
	for i, b := range bars {
		x := mapIndexToX(i, len(bars), rect)
		y := mapValueToY(b.volume, 0, maxVolume, rect)
		fillRect(img, image.Rect(x-barW/2, y, x+barW/2+1, rect.Max.Y), colVolume)
	}
}

func drawTitle(img *image.RGBA, title string) {
	if title == "" {
		return
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colTitle),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(60, 24),
	}
	d.DrawString(title)
}

func drawGrid(img *image.RGBA, rect image.Rectangle, verticalLines, horizontalLines int) {
	for i := 0; i <= verticalLines; i++ {
		x := rect.Min.X + (rect.Dx()*i)/max(1, verticalLines)
		drawLine(img, x, rect.Min.Y, x, rect.Max.Y, colGrid)
	}
	for i := 0; i <= horizontalLines; i++ {
		y := rect.Min.Y + (rect.Dy()*i)/max(1, horizontalLines)
		drawLine(img, rect.Min.X, y, rect.Max.X, y, colGrid)
	}
}

func mapIndexToX(idx, total int, rect image.Rectangle) int {
	if total <= 1 {
		return rect.Min.X
	}
	return rect.Min.X + (idx*(rect.Dx()-1))/(total-1)
}

func mapValueToY(value, minV, maxV float64, rect image.Rectangle) int {
	if maxV <= minV {
		return rect.Max.Y
	}
	ratio := (value - minV) / (maxV - minV)
	ratio = math.Max(0, math.Min(1, ratio))
	return rect.Max.Y - int(ratio*float64(rect.Dy()-1))
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	r := rect.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
