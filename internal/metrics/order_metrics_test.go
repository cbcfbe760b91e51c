package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

func TestNewOrderMetrics(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newOrderMetricsWithRegisterer should not return nil")
	}
	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}
	if metrics.ordersFailed == nil {
		t.Error("ordersFailed counter vec should not be nil")
	}
	if metrics.createDuration == nil {
		t.Error("createDuration histogram should not be nil")
	}
	if metrics.projectionsServed == nil {
		t.Error("projectionsServed counter should not be nil")
	}
	if metrics.projectionsMissed == nil {
		t.Error("projectionsMissed counter should not be nil")
	}
}

func TestRegisterTwiceReturnsExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newOrderMetricsWithRegisterer(reg)
	second := newOrderMetricsWithRegisterer(reg)

	if first.ordersCreated != second.ordersCreated {
		t.Error("repeated registration should reuse the existing counter")
	}
	if first.ordersFailed != second.ordersFailed {
		t.Error("repeated registration should reuse the existing counter vec")
	}
	if first.createDuration != second.createDuration {
		t.Error("repeated registration should reuse the existing histogram")
	}
}

func TestRecordOrderCreated(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordOrderCreated(250 * time.Millisecond)
	metrics.RecordOrderCreated(100 * time.Millisecond)

	if got := counterValue(t, metrics.ordersCreated); got != 2.0 {
		t.Errorf("expected counter value 2.0, got %f", got)
	}
}

func TestRecordOrderFailed(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordOrderFailed(ReasonDuplicateItem)
	metrics.RecordOrderFailed(ReasonDuplicateItem)
	metrics.RecordOrderFailed("")

	if got := counterValue(t, metrics.ordersFailed.WithLabelValues(ReasonDuplicateItem)); got != 2.0 {
		t.Errorf("expected duplicate_item value 2.0, got %f", got)
	}
	// Пустая причина учитывается как internal.
	if got := counterValue(t, metrics.ordersFailed.WithLabelValues(ReasonInternal)); got != 1.0 {
		t.Errorf("expected internal value 1.0, got %f", got)
	}
}

func TestRecordProjections(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordProjectionServed()
	metrics.RecordProjectionServed()
	metrics.RecordProjectionMissed()

	if got := counterValue(t, metrics.projectionsServed); got != 2.0 {
		t.Errorf("expected served value 2.0, got %f", got)
	}
	if got := counterValue(t, metrics.projectionsMissed); got != 1.0 {
		t.Errorf("expected missed value 1.0, got %f", got)
	}
}

func TestFailureReason(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "empty order", err: domain.ErrEmptyOrder, want: ReasonEmptyOrder},
		{name: "duplicate item", err: domain.ErrDuplicateItem, want: ReasonDuplicateItem},
		{name: "not found", err: domain.NewNotFoundError(domain.EntityProduct, "p1"), want: ReasonNotFound},
		{name: "validation", err: domain.NewValidationError("name", "must not be blank"), want: ReasonValidation},
		{name: "invalid quantity", err: domain.ErrQuantityInvalid, want: ReasonInvalidArgument},
		{name: "unknown", err: errors.New("boom"), want: ReasonInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FailureReason(tc.err); got != tc.want {
				t.Errorf("FailureReason(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()

	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}
