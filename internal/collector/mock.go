package collector

import (
	"time"

	"stockpulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Quotes    map[string]*model.QuoteSnapshot
	Bars      map[string][]model.OHLCV
	QuoteErr  map[string]error
	BarsErr   map[string]error
	BasePrice float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuote(symbol string) (*model.QuoteSnapshot, error) {
	if err, ok := m.QuoteErr[symbol]; ok {
		return nil, err
	}
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	price := m.BasePrice
	if price == 0 {
		price = 100
	}
	return &model.QuoteSnapshot{
		Name:      symbol,
		Price:     price,
		PrevClose: price * 0.99,
		High52w:   price * 1.2,
		Low52w:    price * 0.8,
		MarketCap: 50000,
	}, nil
}

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	if err, ok := m.BarsErr[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	price := m.BasePrice
	if price == 0 {
		price = 100
	}
	return GenerateMockBars(price, days), nil
}

// GenerateMockBars builds a gently trending daily bar series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
