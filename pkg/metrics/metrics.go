// Package metrics содержит Prometheus-метрики сервиса
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса, зарегистрированных в собственном registry
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	SlotTransitions      *prometheus.CounterVec
	ReservationConflicts prometheus.Counter
	DiscountRejections   *prometheus.CounterVec
}

// New создает и регистрирует метрики. serviceName добавляется как константная метка.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	labels := prometheus.Labels{"service": serviceName}
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: labels,
		}, []string{"state"}),

		SlotTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_transitions_total",
			Help:        "Slot status transitions",
			ConstLabels: labels,
		}, []string{"transition"}),

		ReservationConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_conflicts_total",
			Help:        "Reservations rejected because the slot was already booked",
			ConstLabels: labels,
		}),

		DiscountRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "discount_rejections_total",
			Help:        "Discount codes rejected by reason",
			ConstLabels: labels,
		}, []string{"reason"}),
	}
}

// Handler возвращает HTTP handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	m.DBConnections.WithLabelValues("open").Set(float64(open))
	m.DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues("idle").Set(float64(idle))
}

// RecordSlotTransition учитывает n переходов статуса слота
func (m *Metrics) RecordSlotTransition(transition string, n int) {
	if n <= 0 {
		return
	}
	m.SlotTransitions.WithLabelValues(transition).Add(float64(n))
}

// RecordReservationConflict учитывает проигранную гонку за слот
func (m *Metrics) RecordReservationConflict() {
	m.ReservationConflicts.Inc()
}

// RecordDiscountRejected учитывает отклоненный промокод
func (m *Metrics) RecordDiscountRejected(reason string) {
	m.DiscountRejections.WithLabelValues(reason).Inc()
}

// Nop реализация бизнес-метрик для конфигурации с выключенными метриками
type Nop struct{}

func (Nop) RecordSlotTransition(string, int) {}
func (Nop) RecordReservationConflict()       {}
func (Nop) RecordDiscountRejected(string)    {}
