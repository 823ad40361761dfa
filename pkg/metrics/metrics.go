package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	SweepRunsTotal           *prometheus.CounterVec
	SweepCancelledTotal      *prometheus.CounterVec
	SweepTenantFailuresTotal *prometheus.CounterVec
	SweepDuration            *prometheus.HistogramVec

	BookingConflictsTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном registry (его отдает promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}, []string{}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}, []string{}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}, []string{}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}, []string{}),

		SweepRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reconciliation_runs_total",
			Help:        "Reconciliation sweep runs by result",
			ConstLabels: labels,
		}, []string{"result"}),
		SweepCancelledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reconciliation_cancelled_appointments_total",
			Help:        "Appointments automatically cancelled by the sweep",
			ConstLabels: labels,
		}, []string{}),
		SweepTenantFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reconciliation_tenant_failures_total",
			Help:        "Tenants skipped by the sweep because of an error",
			ConstLabels: labels,
		}, []string{}),
		SweepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "reconciliation_duration_seconds",
			Help:        "Duration of a reconciliation sweep",
			ConstLabels: labels,
			Buckets:     []float64{.1, .5, 1, 5, 15, 60, 300},
		}, []string{}),

		BookingConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Rejected bookings because of an overlapping appointment",
			ConstLabels: labels,
		}, []string{"source"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.SweepRunsTotal,
		m.SweepCancelledTotal,
		m.SweepTenantFailuresTotal,
		m.SweepDuration,
		m.BookingConflictsTotal,
	)

	return m
}

// ObserveHTTP фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// ObserveSweep фиксирует итог прогона сверки
func (m *Metrics) ObserveSweep(cancelled, failedTenants int, duration time.Duration, err error) {
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case failedTenants > 0:
		result = "partial"
	}
	m.SweepRunsTotal.WithLabelValues(result).Inc()
	m.SweepCancelledTotal.WithLabelValues().Add(float64(cancelled))
	m.SweepTenantFailuresTotal.WithLabelValues().Add(float64(failedTenants))
	m.SweepDuration.WithLabelValues().Observe(duration.Seconds())
}

// IncBookingConflict фиксирует отклоненное из-за пересечения бронирование
// source: "check" (проверка в приложении) или "constraint" (ограничение БД)
func (m *Metrics) IncBookingConflict(source string) {
	m.BookingConflictsTotal.WithLabelValues(source).Inc()
}
