// Package pledge scrapes the promoter share-pledge percentage for a symbol
// from a third-party financial-data page.
package pledge

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotFound indicates the page was fetched and parsed but carried no
// pledge figure. Callers treat it as "no pledge reported" rather than a
// transport failure.
var ErrNotFound = errors.New("pledge figure not found on page")

// Fetcher scrapes the pledge percentage from per-symbol company pages.
type Fetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewFetcher creates a Fetcher against the given site base URL.
func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// Fetch returns the promoter pledge percentage for a symbol. The page layout
// is brittle: the figure lives in a list item whose text mentions "Pledge",
// inside a nested element carrying the number.
func (f *Fetcher) Fetch(symbol string) (float64, error) {
	u := fmt.Sprintf("%s/company/%s/consolidated/", f.BaseURL, symbol)
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("pledge fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("pledge fetch: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("pledge parse: %w", err)
	}
	return extract(doc)
}

func extract(doc *goquery.Document) (float64, error) {
	var value float64
	var found bool
	var parseErr error

	doc.Find("li.flex-space-between").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if !strings.Contains(li.Text(), "Pledge") {
			return true
		}
		raw := strings.TrimSpace(li.Find("span.number").First().Text())
		if raw == "" {
			// Item mentions Pledge but carries no number; keep scanning.
			return true
		}
		raw = strings.ReplaceAll(raw, ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			parseErr = fmt.Errorf("pledge parse %q: %w", raw, err)
			return false
		}
		value = v
		found = true
		return false
	})

	if parseErr != nil {
		return 0, parseErr
	}
	if !found {
		return 0, ErrNotFound
	}
	return value, nil
}
