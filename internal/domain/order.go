package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem представляет одну позицию заказа. Позиция принадлежит своему
// заказу и не существует отдельно от него.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID string
	// ProductID — ссылка на товар каталога.
	ProductID string
	// Quantity — количество единиц товара.
	Quantity int32
	// UnitPrice — снимок цены товара на момент добавления позиции.
	// Последующие изменения цены в каталоге на снимок не влияют.
	UnitPrice decimal.Decimal
}

// Total возвращает стоимость позиции: quantity * unitPrice.
func (i OrderItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

// Order — агрегат заказа. Все изменения набора позиций проходят через методы
// агрегата; внешний код получает позиции только как копию.
type Order struct {
	id         string
	customerID string
	orderDate  time.Time
	items      []OrderItem
}

// NewOrder создаёт пустой заказ для клиента. Дата фиксируется один раз в UTC.
func NewOrder(customerID string) *Order {
	return &Order{
		id:         uuid.NewString(),
		customerID: customerID,
		orderDate:  time.Now().UTC(),
	}
}

// RehydrateOrder восстанавливает заказ из хранилища вместе с полным набором
// позиций в порядке их добавления. Инварианты не перепроверяются: хранилище
// отдаёт то, что агрегат однажды собрал.
func RehydrateOrder(id, customerID string, orderDate time.Time, items []OrderItem) *Order {
	order := &Order{
		id:         id,
		customerID: customerID,
		orderDate:  orderDate,
		items:      make([]OrderItem, len(items)),
	}
	copy(order.items, items)
	return order
}

// ID возвращает идентификатор заказа.
func (o *Order) ID() string { return o.id }

// CustomerID возвращает идентификатор клиента-владельца.
func (o *Order) CustomerID() string { return o.customerID }

// OrderDate возвращает момент создания заказа (UTC).
func (o *Order) OrderDate() time.Time { return o.orderDate }

// Items возвращает копию позиций в порядке добавления.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// AddItem добавляет позицию с текущей ценой товара в качестве постоянной.
// Повторное добавление того же товара отклоняется, а не сливается:
// решение о слиянии количеств остаётся за владельцем продукта.
func (o *Order) AddItem(product *Product, quantity int32) error {
	if product == nil {
		return ErrProductRequired
	}
	if quantity <= 0 {
		return ErrQuantityInvalid
	}

	for _, item := range o.items {
		if item.ProductID == product.ID {
			return ErrDuplicateItem
		}
	}

	o.items = append(o.items, OrderItem{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	})
	return nil
}

// TotalAmount возвращает сумму заказа: сумма quantity * unitPrice по всем
// позициям, ноль для пустого заказа.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Total())
	}
	return total
}
