package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// productNameNotFound подставляется вместо имени товара, который успели
// удалить из каталога после создания заказа. Одна потерянная позиция не
// должна ломать просмотр всего заказа.
const productNameNotFound = "product not found"

// OrderItemView — позиция заказа, обогащённая текущим именем товара.
type OrderItemView struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// OrderView — проекция заказа для чтения. Состояние не мутируется.
type OrderView struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItemView `json:"items"`
}

// GetOrder возвращает проекцию заказа или nil, если заказа нет.
// Отсутствие заказа на пути чтения — легитимный результат, не ошибка.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*OrderView, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		if s.metrics != nil {
			s.metrics.RecordProjectionMissed()
		}
		return nil, nil
	}

	items := order.Items()
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		name := productNameNotFound
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product name: %w", err)
		}
		if product != nil {
			name = product.Name
		}

		views = append(views, OrderItemView{
			ProductID:   item.ProductID,
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total(),
		})
	}

	if s.metrics != nil {
		s.metrics.RecordProjectionServed()
	}

	return &OrderView{
		ID:          order.ID(),
		CustomerID:  order.CustomerID(),
		OrderDate:   order.OrderDate(),
		TotalAmount: order.TotalAmount(),
		Items:       views,
	}, nil
}
