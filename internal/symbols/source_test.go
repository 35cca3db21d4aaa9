package symbols

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var fallback = []string{"RELIANCE", "TCS", "SBIN"}

func newSource(t *testing.T, handler http.HandlerFunc) *IndexSource {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewIndexSource(ts.URL, fallback)
}

func TestIndexSource_RemoteList(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Company Name,Industry,Symbol,Series\n" +
			"HDFC Bank Ltd.,Financial Services,HDFCBANK,EQ\n" +
			"Infosys Ltd.,IT,INFY,EQ\n" +
			"ITC Ltd.,FMCG,ITC,EQ\n"))
	})
	assert.Equal(t, []string{"HDFCBANK", "INFY", "ITC"}, src.Resolve())
}

func TestIndexSource_ServerErrorFallsBack(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	assert.Equal(t, fallback, src.Resolve())
}

func TestIndexSource_UnreachableFallsBack(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listens here anymore
	src := NewIndexSource(ts.URL, fallback)
	assert.Equal(t, fallback, src.Resolve())
}

func TestIndexSource_MissingSymbolColumnFallsBack(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Company Name,Industry\nHDFC Bank Ltd.,Financial Services\n"))
	})
	assert.Equal(t, fallback, src.Resolve())
}

func TestIndexSource_EmptyBodyFallsBack(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, fallback, src.Resolve())
}

func TestStaticSource_CopiesList(t *testing.T) {
	src := &StaticSource{Symbols: []string{"A", "B"}}
	got := src.Resolve()
	got[0] = "mutated"
	assert.Equal(t, []string{"A", "B"}, src.Symbols)
}
