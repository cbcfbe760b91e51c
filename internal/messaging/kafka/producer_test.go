package kafka

import (
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

func testOrder(t *testing.T) *domain.Order {
	t.Helper()
	product, err := domain.NewProduct("SKU-1", "Keyboard", decimal.RequireFromString("10.00"))
	if err != nil {
		t.Fatalf("test setup failed to build product: %v", err)
	}
	order := domain.NewOrder("customer-1")
	if err := order.AddItem(&product, 2); err != nil {
		t.Fatalf("test setup failed to add item: %v", err)
	}
	return order
}

func TestProducer_PublishOrderCreated(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	order := testOrder(t)

	// Проверяем и сериализацию события, а не только факт отправки.
	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var event OrderCreatedEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeOrderCreated {
			t.Errorf("unexpected event type: %s", event.EventType)
		}
		if event.OrderID != order.ID() {
			t.Errorf("unexpected order id: %s", event.OrderID)
		}
		if event.TotalAmount != "20" {
			t.Errorf("unexpected total amount: %s", event.TotalAmount)
		}
		if len(event.Items) != 1 || event.Items[0].UnitPrice != "10" {
			t.Errorf("unexpected items payload: %+v", event.Items)
		}
		return nil
	})

	if err := producer.PublishOrderCreated(order); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishOrderCreated_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	if err := producer.PublishOrderCreated(testOrder(t)); err == nil {
		t.Fatal("expected publish error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
