package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one daily OHLCV bar as returned by the market-data provider.
type Candle struct {
	OpenTime time.Time       `json:"open_time"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
	Volume   int64           `json:"volume"`
}

// Alert is a standing floor-breach watch: notify once the instrument's
// price falls to or below Target. Target is denominated in Currency, the
// unit the user was working in when the alert was registered; conversion
// to USD happens at evaluation time, never at storage time.
type Alert struct {
	Symbol   string          `json:"symbol"`
	Target   decimal.Decimal `json:"target"`
	Currency CurrencyCode    `json:"currency"`
	ChatID   int64           `json:"-"`
}
