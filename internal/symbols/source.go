// Package symbols resolves the universe of ticker symbols for a fetch cycle.
package symbols

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Source resolves the ordered list of symbols to process. Implementations
// never fail outward and never return an empty list.
type Source interface {
	Resolve() []string
}

// StaticSource returns a fixed symbol list.
type StaticSource struct {
	Symbols []string
}

func (s *StaticSource) Resolve() []string {
	return append([]string(nil), s.Symbols...)
}

// IndexSource fetches the constituent list of a benchmark index as CSV and
// extracts the symbol column. Any failure falls back to the fixed list.
type IndexSource struct {
	URL      string
	Fallback []string
	Client   *http.Client
}

// NewIndexSource creates an IndexSource with a default HTTP client.
func NewIndexSource(url string, fallback []string) *IndexSource {
	return &IndexSource{
		URL:      url,
		Fallback: fallback,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *IndexSource) Resolve() []string {
	syms, err := s.fetchRemote()
	if err != nil {
		log.Printf("[WARN] symbol list fetch failed: %v, using fallback (%d symbols)", err, len(s.Fallback))
		return append([]string(nil), s.Fallback...)
	}
	log.Printf("[INFO] resolved %d symbols from index list", len(syms))
	return syms
}

func (s *IndexSource) fetchRemote() ([]string, error) {
	req, err := http.NewRequest("GET", s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch index list: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch index list: status %d", resp.StatusCode)
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse index csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("index csv has no data rows")
	}

	symCol := -1
	for i, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(h), "Symbol") {
			symCol = i
			break
		}
	}
	if symCol < 0 {
		return nil, fmt.Errorf("index csv missing Symbol column")
	}

	syms := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if symCol >= len(rec) {
			continue
		}
		sym := strings.TrimSpace(rec[symCol])
		if sym != "" {
			syms = append(syms, sym)
		}
	}
	if len(syms) == 0 {
		return nil, fmt.Errorf("index csv yielded no symbols")
	}
	return syms, nil
}
