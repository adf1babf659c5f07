package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты попытки бронирования слота (label result)
const (
	ReservationResultSuccess         = "success"
	ReservationResultAlreadyReserved = "already_reserved"
	ReservationResultVersionConflict = "version_conflict"
	ReservationResultSlotStarted     = "slot_started"
	ReservationResultNotFound        = "not_found"
	ReservationResultError           = "error"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасно вызывать на nil-указателе (метрики выключены)
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	slotsCreatedTotal        *prometheus.CounterVec
	slotConflictsTotal       *prometheus.CounterVec
	reservationAttemptsTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		dbOpenConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established database connections",
		}, []string{"service"}),

		dbInUseConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),

		dbIdleConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		slotsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slots_created_total",
			Help: "Total number of availability slots created",
		}, []string{"service"}),

		slotConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_conflicts_total",
			Help: "Total number of rejected availability batches due to overlapping slots",
		}, []string{"service"}),

		reservationAttemptsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_attempts_total",
			Help: "Total number of reservation attempts by result",
		}, []string{"service", "result"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполнение SQL запроса
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(m.serviceName).Set(float64(stats.OpenConnections))
	m.dbInUseConns.WithLabelValues(m.serviceName).Set(float64(stats.InUse))
	m.dbIdleConns.WithLabelValues(m.serviceName).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(stats.WaitCount))
}

// AddSlotsCreated увеличивает счетчик созданных слотов
func (m *Metrics) AddSlotsCreated(n int) {
	if m == nil {
		return
	}
	m.slotsCreatedTotal.WithLabelValues(m.serviceName).Add(float64(n))
}

// IncSlotConflict фиксирует отклоненный из-за пересечения пакет слотов
func (m *Metrics) IncSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflictsTotal.WithLabelValues(m.serviceName).Inc()
}

// IncReservationAttempt фиксирует попытку бронирования с указанным результатом
func (m *Metrics) IncReservationAttempt(result string) {
	if m == nil {
		return
	}
	m.reservationAttemptsTotal.WithLabelValues(m.serviceName, result).Inc()
}
