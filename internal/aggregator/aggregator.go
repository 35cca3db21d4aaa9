// Package aggregator runs the per-symbol metric pipeline and assembles the
// final result set for one fetch cycle.
package aggregator

import (
	"errors"
	"log"
	"time"

	"stockpulse/internal/calculator"
	"stockpulse/internal/collector"
	"stockpulse/internal/model"
	"stockpulse/internal/symbols"
)

// timestampLayout renders e.g. "04:30:15 PM, Aug 26, 2026".
const timestampLayout = "03:04:05 PM, Jan 02, 2006"

// PledgeFetcher retrieves the promoter pledge percentage for a symbol.
type PledgeFetcher interface {
	Fetch(symbol string) (float64, error)
}

// Aggregator orchestrates symbol resolution, quote and pledge fetching and
// metric computation. Symbols are processed strictly sequentially with a
// politeness delay so upstream services are not hammered.
type Aggregator struct {
	Symbols     symbols.Source
	Fetcher     collector.Fetcher
	Pledge      PledgeFetcher // nil disables pledge scraping
	HistoryDays int
	RSIWindow   int
	Delay       time.Duration

	sleep func(time.Duration)
	now   func() time.Time
}

// New creates an Aggregator with real clock and sleep functions.
func New(src symbols.Source, fetcher collector.Fetcher, pl PledgeFetcher, historyDays, rsiWindow int, delay time.Duration) *Aggregator {
	return &Aggregator{
		Symbols:     src,
		Fetcher:     fetcher,
		Pledge:      pl,
		HistoryDays: historyDays,
		RSIWindow:   rsiWindow,
		Delay:       delay,
		sleep:       time.Sleep,
		now:         time.Now,
	}
}

// RunCycle fetches every symbol once and returns the aggregate. The cycle
// itself never fails: symbols with unusable data are omitted, and pledge or
// RSI failures degrade to defaults instead of excluding the symbol.
func (a *Aggregator) RunCycle() *model.FetchResult {
	log.Println("[INFO] starting full data fetch cycle")
	syms := a.Symbols.Resolve()

	records := make([]model.StockRecord, 0, len(syms))
	for i, sym := range syms {
		if i > 0 && a.Delay > 0 {
			a.sleep(a.Delay)
		}
		rec, ok := a.collect(sym)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	log.Printf("[INFO] data fetch cycle complete: %d/%d symbols", len(records), len(syms))
	return &model.FetchResult{
		Data:        records,
		LastUpdated: a.now().Format(timestampLayout),
	}
}

// collect builds the record for one symbol. ok is false when the symbol must
// be skipped entirely (no usable quote, or an unexpected fetch failure).
// A panic anywhere in the per-symbol pipeline also degrades to a skip so a
// malformed upstream payload cannot abort the cycle.
func (a *Aggregator) collect(sym string) (rec model.StockRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] %s: unexpected failure: %v, skipping", sym, r)
			rec, ok = model.StockRecord{}, false
		}
	}()
	return a.collectRecord(sym)
}

func (a *Aggregator) collectRecord(sym string) (model.StockRecord, bool) {
	quote, err := a.Fetcher.FetchQuote(sym)
	if err != nil {
		if errors.Is(err, collector.ErrNoPrice) {
			log.Printf("[WARN] %s: no usable price, skipping", sym)
		} else {
			log.Printf("[WARN] %s: quote fetch failed: %v, skipping", sym, err)
		}
		return model.StockRecord{}, false
	}

	change := quote.Price - quote.PrevClose
	pctChange := 0.0
	if quote.PrevClose != 0 {
		pctChange = change / quote.PrevClose * 100
	}

	var rsi *float64
	if bars, err := a.Fetcher.FetchDailyBars(sym, a.HistoryDays); err != nil {
		log.Printf("[WARN] %s: history fetch failed: %v, RSI unavailable", sym, err)
	} else if v, ok := calculator.RSI(model.Closes(bars), a.RSIWindow); ok {
		rsi = &v
	}

	pledgePct := 0.0
	if a.Pledge != nil {
		if v, err := a.Pledge.Fetch(sym); err != nil {
			log.Printf("[WARN] %s: pledge scrape failed: %v, defaulting to 0", sym, err)
		} else {
			pledgePct = v
		}
	}

	rec := calculator.Recommend(rsi, quote.TrailingPE, &pledgePct)

	return model.StockRecord{
		Name:           quote.Name,
		Symbol:         sym,
		Price:          quote.Price,
		Change:         change,
		PctChange:      pctChange,
		Rsi:            rsi,
		Pe:             quote.TrailingPE,
		Pledge:         pledgePct,
		Recommendation: rec.Signal,
		Reason:         rec.Reason,
		MarketCap:      quote.MarketCap,
		High:           quote.High52w,
		Low:            quote.Low52w,
	}, true
}
