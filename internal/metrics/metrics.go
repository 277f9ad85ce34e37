package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rental_tracker"

// Metrics holds the Prometheus collectors. A nil *Metrics is valid and
// records nothing, which is how metrics are disabled.
type Metrics struct {
	registry   *prometheus.Registry
	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec
	httpInfl   *prometheus.GaugeVec
	exportCnt  *prometheus.CounterVec
	exportRows *prometheus.HistogramVec
	jobCnt     *prometheus.CounterVec
	jobDur     *prometheus.HistogramVec
	jobItems   *prometheus.CounterVec
}

func New() *Metrics {
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Buckets: prometheus.DefBuckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	exportCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "exports_total"}, []string{"format", "status"})
	exportRows := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "export_rows", Buckets: prometheus.ExponentialBuckets(1, 4, 8)}, []string{"format"})
	r.MustRegister(exportCnt, exportRows)

	jobCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "job_runs_total"}, []string{"job", "status"})
	jobDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "job_duration_seconds", Buckets: prometheus.DefBuckets}, []string{"job"})
	jobItems := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "job_items_removed_total"}, []string{"job"})
	r.MustRegister(jobCnt, jobDur, jobItems)

	return &Metrics{
		registry:   r,
		httpReqCnt: httpReqCnt,
		httpDur:    httpDur,
		httpInfl:   httpInfl,
		exportCnt:  exportCnt,
		exportRows: exportRows,
		jobCnt:     jobCnt,
		jobDur:     jobDur,
		jobItems:   jobItems,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts, durations and in-flight requests per
// route template.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeTemplate(r)
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		status := strconv.Itoa(rec.status)
		m.httpReqCnt.WithLabelValues(r.Method, route, status).Inc()
		m.httpDur.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	})
}

func (m *Metrics) ExportDone(format string, rows int, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	} else {
		m.exportRows.WithLabelValues(format).Observe(float64(rows))
	}
	m.exportCnt.WithLabelValues(format, status).Inc()
}

func (m *Metrics) JobDone(job string, since time.Time, removed int64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.jobCnt.WithLabelValues(job, status).Inc()
	m.jobDur.WithLabelValues(job).Observe(time.Since(since).Seconds())
	if removed > 0 {
		m.jobItems.WithLabelValues(job).Add(float64(removed))
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
