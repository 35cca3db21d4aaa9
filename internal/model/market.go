package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the closing prices from a bar sequence, preserving order.
func Closes(bars []OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// QuoteSnapshot is the point-in-time quote data for one symbol.
// MarketCap is already rescaled to crores (1e7) for display.
type QuoteSnapshot struct {
	Name       string
	Price      float64
	PrevClose  float64
	TrailingPE *float64
	High52w    float64
	Low52w     float64
	MarketCap  float64
}
