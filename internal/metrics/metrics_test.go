package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/api/v1/rentals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rentals/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	m.ExportDone("csv", 10, nil)
	m.ExportDone("pdf", 0, errors.New("boom"))
	m.JobDone("purge-password-resets", time.Now(), 3, nil)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	assert.Contains(t, text, `rental_tracker_http_requests_total{method="GET",route="/api/v1/rentals/{id}",status="404"} 1`)
	assert.Contains(t, text, `rental_tracker_exports_total{format="csv",status="ok"} 1`)
	assert.Contains(t, text, `rental_tracker_exports_total{format="pdf",status="error"} 1`)
	assert.Contains(t, text, `rental_tracker_job_items_removed_total{job="purge-password-resets"} 3`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	called := false
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)

	m.ExportDone("csv", 1, nil)
	m.JobDone("x", time.Now(), 1, nil)
}
