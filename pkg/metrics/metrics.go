package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для вызова на nil (метрики выключены)
type Metrics struct {
	serviceName string

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// База данных
	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	// Бизнес метрики
	bookingsTotal      *prometheus.CounterVec
	timeslotsGenerated *prometheus.CounterVec
	paymentsTotal      *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "route"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"service", "operation", "status"},
		),
		dbConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_connections",
				Help: "Database connection pool state",
			},
			[]string{"service", "state"},
		),
		bookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "laundry_bookings_total",
				Help: "Booking attempts by type and outcome",
			},
			[]string{"service", "booking_type", "outcome"},
		),
		timeslotsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "laundry_timeslots_generated_total",
				Help: "Timeslots inserted by the generator",
			},
			[]string{"service"},
		),
		paymentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "laundry_payments_total",
				Help: "Payment confirmations by resulting status",
			},
			[]string{"service", "status"},
		),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbConnections,
		m.bookingsTotal,
		m.timeslotsGenerated,
		m.paymentsTotal,
	)

	return m
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(seconds)
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(seconds)
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.dbConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// RecordBooking учитывает попытку бронирования
func (m *Metrics) RecordBooking(bookingType, outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(m.serviceName, bookingType, outcome).Inc()
}

// RecordTimeslotsGenerated учитывает количество созданных слотов
func (m *Metrics) RecordTimeslotsGenerated(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.timeslotsGenerated.WithLabelValues(m.serviceName).Add(float64(count))
}

// RecordPayment учитывает подтверждение платежа
func (m *Metrics) RecordPayment(status string) {
	if m == nil {
		return
	}
	m.paymentsTotal.WithLabelValues(m.serviceName, status).Inc()
}
