package collector

import (
	"errors"

	"stockpulse/internal/model"
)

// ErrNoPrice indicates the provider returned a quote without a usable
// current price; the symbol should be skipped for this cycle.
var ErrNoPrice = errors.New("quote has no usable current price")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchQuote(symbol string) (*model.QuoteSnapshot, error)
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
