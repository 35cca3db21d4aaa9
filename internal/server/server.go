// Package server exposes the aggregated metrics as JSON over HTTP plus a
// static dashboard page. It is a thin wrapper: all data work happens in the
// aggregator/scheduler layers.
package server

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"stockpulse/internal/model"
)

//go:embed web/index.html
var indexHTML []byte

// SnapshotProvider hands out the current aggregate, refreshing if needed.
type SnapshotProvider interface {
	Current() *model.FetchResult
}

// Server serves the dashboard and the data endpoint.
type Server struct {
	Snapshots      SnapshotProvider
	CacheMaxAgeSec int
}

// New creates a Server.
func New(sp SnapshotProvider, cacheMaxAgeSec int) *Server {
	return &Server{Snapshots: sp, CacheMaxAgeSec: cacheMaxAgeSec}
}

// Handler builds the HTTP routing with panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/data", s.handleData)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return recoverPanic(mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	result := s.Snapshots.Current()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	// Edge caches serve this payload for the max-age window and refresh
	// stale copies in the background.
	w.Header().Set("Cache-Control", fmt.Sprintf("s-maxage=%d, stale-while-revalidate", s.CacheMaxAgeSec))

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		log.Printf("[ERROR] encode data response: %v", err)
	}
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[ERROR] handler panic: %v", rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
