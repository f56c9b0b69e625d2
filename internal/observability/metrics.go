package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

// Metrics is a small Prometheus text-format registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	apiRequests   *CounterVec
	apiLatency    *HistogramVec
	apiInflight   *Gauge
	apiReqTotal   *Counter
	apiReqError   *Counter
	useCaseCalls  *CounterVec
	useCaseTiming *HistogramVec
	dbStats       *GaugeVec
}

func NewMetrics(namespace string) *Metrics {
	ns := strings.TrimSpace(namespace)
	if ns == "" {
		ns = "kb"
	}
	return &Metrics{
		apiRequests: NewCounterVec(ns+"_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			ns+"_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight:  NewGauge(ns+"_api_inflight_requests", "In-flight API requests."),
		apiReqTotal:  NewCounter(ns+"_api_requests_total_all", "Total API requests (all)."),
		apiReqError:  NewCounter(ns+"_api_requests_error_total", "Total API requests answered with 5xx."),
		useCaseCalls: NewCounterVec(ns+"_usecase_calls_total", "Use case executions by name/outcome.", []string{"usecase", "outcome"}),
		useCaseTiming: NewHistogramVec(
			ns+"_usecase_duration_seconds",
			"Use case latency in seconds.",
			[]string{"usecase"},
			nil,
		),
		dbStats: NewGaugeVec(ns+"_db_pool", "database/sql pool statistics.", []string{"stat"}),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []promWriter{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.apiReqTotal,
		m.apiReqError,
		m.useCaseCalls,
		m.useCaseTiming,
		m.dbStats,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.apiRequests.Inc(method, route, code)
	m.apiLatency.Observe(dur.Seconds(), method, route, code)
	m.apiReqTotal.Inc()
	if status >= 500 {
		m.apiReqError.Inc()
	}
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveUseCase records one Execute call; outcome is "ok" or a fault code.
func (m *Metrics) ObserveUseCase(name, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.useCaseCalls.Inc(name, outcome)
	m.useCaseTiming.Observe(dur.Seconds(), name)
}

// RunDBCollector samples pool statistics every interval until ctx ends.
func (m *Metrics) RunDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) error {
	if m == nil || db == nil {
		return nil
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	m.CollectDBStats(log, db)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.CollectDBStats(log, db)
		}
	}
}

func (m *Metrics) CollectDBStats(log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	stats := sqlDB.Stats()
	m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
	m.dbStats.Set(float64(stats.InUse), "in_use")
	m.dbStats.Set(float64(stats.Idle), "idle")
	m.dbStats.Set(float64(stats.WaitCount), "wait_count")
	m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
}
