package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"stockpulse/internal/model"
)

// croreDivisor rescales market cap from rupees to crores for display.
const croreDivisor = 1e7

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
// Symbols are suffixed with the market suffix (".NS" for NSE) before lookup.
type YahooFetcher struct {
	Client   *http.Client
	Suffix   string
	QuoteURL string
	ChartURL string
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(suffix, proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Suffix:   suffix,
		QuoteURL: "https://query1.finance.yahoo.com/v7/finance/quote",
		ChartURL: "https://query1.finance.yahoo.com/v8/finance/chart",
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) ticker(symbol string) string {
	return symbol + f.Suffix
}

func (f *YahooFetcher) get(u string) ([]byte, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// FetchQuote retrieves the current snapshot for a symbol. Yahoo frequently
// returns null or missing fields for NSE tickers, so the response is picked
// apart field by field rather than decoded into a fixed struct.
func (f *YahooFetcher) FetchQuote(symbol string) (*model.QuoteSnapshot, error) {
	u := fmt.Sprintf("%s?symbols=%s", f.QuoteURL, url.QueryEscape(f.ticker(symbol)))
	body, err := f.get(u)
	if err != nil {
		return nil, err
	}

	if e := gjson.GetBytes(body, "quoteResponse.error"); e.Exists() && e.Type != gjson.Null {
		return nil, fmt.Errorf("yahoo api error: %s", e.Get("description").String())
	}
	r := gjson.GetBytes(body, "quoteResponse.result.0")
	if !r.Exists() {
		return nil, fmt.Errorf("yahoo: no quote returned for %s", symbol)
	}

	price := r.Get("regularMarketPrice")
	if !price.Exists() || price.Type == gjson.Null || price.Float() == 0 {
		return nil, ErrNoPrice
	}

	snap := &model.QuoteSnapshot{
		Name:      symbol,
		Price:     price.Float(),
		PrevClose: r.Get("regularMarketPreviousClose").Float(),
		High52w:   r.Get("fiftyTwoWeekHigh").Float(),
		Low52w:    r.Get("fiftyTwoWeekLow").Float(),
		MarketCap: r.Get("marketCap").Float() / croreDivisor,
	}
	if name := r.Get("longName"); name.Exists() && name.String() != "" {
		snap.Name = name.String()
	} else if name := r.Get("shortName"); name.Exists() && name.String() != "" {
		snap.Name = name.String()
	}
	if pe := r.Get("trailingPE"); pe.Exists() && pe.Type != gjson.Null {
		v := pe.Float()
		snap.TrailingPE = &v
	}
	return snap, nil
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if n, ok := v.(float64); ok {
		return n
	}
	return 0
}

// FetchDailyBars retrieves up to `days` recent daily bars in chronological order.
func (f *YahooFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	rng := "1y"
	if days <= 30 {
		rng = "1mo"
	} else if days <= 90 {
		rng = "3mo"
	} else if days <= 180 {
		rng = "6mo"
	}

	u := fmt.Sprintf("%s/%s?interval=1d&range=%s",
		f.ChartURL, url.PathEscape(f.ticker(symbol)), rng)
	body, err := f.get(u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no history returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote indicators returned")
	}
	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(quote.Open) < n || len(quote.High) < n || len(quote.Low) < n ||
		len(quote.Close) < n || len(quote.Volume) < n {
		return nil, fmt.Errorf("yahoo: indicator arrays shorter than %d timestamps", n)
	}
	bars := make([]model.OHLCV, 0, n)

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
