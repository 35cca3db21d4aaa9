package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpulse/internal/model"
)

type stubSnapshots struct {
	result *model.FetchResult
}

func (s *stubSnapshots) Current() *model.FetchResult { return s.result }

func testResult() *model.FetchResult {
	rsi := 28.5
	return &model.FetchResult{
		Data: []model.StockRecord{{
			Name:           "Reliance Industries Limited",
			Symbol:         "RELIANCE",
			Price:          2500,
			Change:         50,
			PctChange:      2.04,
			Rsi:            &rsi,
			Pledge:         0.4,
			Recommendation: "No",
			Reason:         "Oversold (RSI < 30)",
			MarketCap:      1690000,
			High:           3024.9,
			Low:            2100,
		}},
		LastUpdated: "04:30:15 PM, Aug 26, 2026",
	}
}

func TestHandleData(t *testing.T) {
	h := New(&stubSnapshots{result: testResult()}, 900).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/data", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "s-maxage=900, stale-while-revalidate", rr.Header().Get("Cache-Control"))
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var got model.FetchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Data, 1)
	assert.Equal(t, "RELIANCE", got.Data[0].Symbol)
	require.NotNil(t, got.Data[0].Rsi)
	assert.Nil(t, got.Data[0].Pe) // absent metrics serialize as null
	assert.Equal(t, "04:30:15 PM, Aug 26, 2026", got.LastUpdated)
}

func TestHandleData_MethodNotAllowed(t *testing.T) {
	h := New(&stubSnapshots{result: testResult()}, 900).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/data", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleIndex(t *testing.T) {
	h := New(&stubSnapshots{result: testResult()}, 900).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "StockPulse")
}

func TestHandleIndex_UnknownPath(t *testing.T) {
	h := New(&stubSnapshots{result: testResult()}, 900).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealthz(t *testing.T) {
	h := New(&stubSnapshots{result: testResult()}, 900).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestRecoverPanic(t *testing.T) {
	h := recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/data", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
