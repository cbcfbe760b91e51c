package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

// Причины отказа при создании заказа, используемые как значения метки reason.
const (
	ReasonEmptyOrder      = "empty_order"
	ReasonNotFound        = "not_found"
	ReasonDuplicateItem   = "duplicate_item"
	ReasonInvalidArgument = "invalid_argument"
	ReasonValidation      = "validation"
	ReasonInternal        = "internal"
)

// FailureReason переводит доменную ошибку в значение метки reason.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrEmptyOrder):
		return ReasonEmptyOrder
	case errors.Is(err, domain.ErrDuplicateItem):
		return ReasonDuplicateItem
	case domain.IsNotFound(err):
		return ReasonNotFound
	case domain.IsValidation(err):
		return ReasonValidation
	case domain.IsInvalidArgument(err):
		return ReasonInvalidArgument
	default:
		return ReasonInternal
	}
}

// OrderMetrics содержит метрики операций с заказами.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated prometheus.Counter
	ordersFailed  *prometheus.CounterVec

	// Гистограмма времени сборки заказа
	createDuration prometheus.Histogram

	// Счётчики пути чтения
	projectionsServed prometheus.Counter
	projectionsMissed prometheus.Counter
}

// NewOrderMetrics создаёт новый экземпляр метрик заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderflow_orders_created_total",
			Help: "Total number of orders successfully created",
		}),
		ordersFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orderflow_orders_failed_total",
			Help: "Total number of order creations rejected, by reason",
		}, []string{"reason"}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "orderflow_order_create_duration_seconds",
			Help:    "Duration of order assembly and persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		projectionsServed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderflow_order_projections_total",
			Help: "Total number of order views served",
		}),
		projectionsMissed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderflow_order_projections_missed_total",
			Help: "Total number of order view requests for unknown orders",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated фиксирует успешное создание заказа и его длительность.
func (m *OrderMetrics) RecordOrderCreated(duration time.Duration) {
	m.ordersCreated.Inc()
	m.createDuration.Observe(duration.Seconds())
}

// RecordOrderFailed увеличивает счётчик отказов с указанной причиной.
func (m *OrderMetrics) RecordOrderFailed(reason string) {
	if reason == "" {
		reason = ReasonInternal
	}
	m.ordersFailed.WithLabelValues(reason).Inc()
}

// RecordProjectionServed увеличивает счётчик отданных проекций.
func (m *OrderMetrics) RecordProjectionServed() {
	m.projectionsServed.Inc()
}

// RecordProjectionMissed увеличивает счётчик запросов несуществующих заказов.
func (m *OrderMetrics) RecordProjectionMissed() {
	m.projectionsMissed.Inc()
}
