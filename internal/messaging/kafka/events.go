package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	EventTypeOrderCreated EventType = "order.created"
)

// Topics для Kafka
const (
	TopicOrderEvents = "orderflow.order.events"
)

// OrderEventItem — позиция заказа в составе события.
type OrderEventItem struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderCreatedEvent публикуется после успешной записи заказа в хранилище.
// Суммы сериализуются строками, чтобы потребители не теряли точность.
type OrderCreatedEvent struct {
	EventType   EventType        `json:"event_type"`
	OrderID     string           `json:"order_id"`
	CustomerID  string           `json:"customer_id"`
	TotalAmount string           `json:"total_amount"`
	Items       []OrderEventItem `json:"items"`
	OrderDate   time.Time        `json:"order_date"`
	Timestamp   time.Time        `json:"timestamp"`
}

// NewOrderCreatedEvent собирает событие из агрегата заказа.
func NewOrderCreatedEvent(order *domain.Order) *OrderCreatedEvent {
	items := order.Items()
	eventItems := make([]OrderEventItem, 0, len(items))
	for _, item := range items {
		eventItems = append(eventItems, OrderEventItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
		})
	}

	return &OrderCreatedEvent{
		EventType:   EventTypeOrderCreated,
		OrderID:     order.ID(),
		CustomerID:  order.CustomerID(),
		TotalAmount: order.TotalAmount().String(),
		Items:       eventItems,
		OrderDate:   order.OrderDate(),
		Timestamp:   time.Now().UTC(),
	}
}
