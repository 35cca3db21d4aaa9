package model

// Recommendation is a heuristic buy signal derived from RSI, P/E and pledge.
type Recommendation struct {
	Signal string // "Yes" or "No"
	Reason string
}

// StockRecord is the per-symbol output unit of one aggregation cycle.
// Rsi and Pe are null in JSON when the underlying value is unavailable.
type StockRecord struct {
	Name           string   `json:"name"`
	Symbol         string   `json:"symbol"`
	Price          float64  `json:"price"`
	Change         float64  `json:"change"`
	PctChange      float64  `json:"pctChange"`
	Rsi            *float64 `json:"rsi"`
	Pe             *float64 `json:"pe"`
	Pledge         float64  `json:"pledge"`
	Recommendation string   `json:"recommendation"`
	Reason         string   `json:"reason"`
	MarketCap      float64  `json:"marketCap"`
	High           float64  `json:"high"`
	Low            float64  `json:"low"`
}

// FetchResult is the complete output of one aggregation cycle.
type FetchResult struct {
	Data        []StockRecord `json:"data"`
	LastUpdated string        `json:"last_updated"`
}
