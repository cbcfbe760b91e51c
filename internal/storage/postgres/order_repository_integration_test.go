package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

func TestOrderRepository_PostgresAddGetAndFind(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	keyboard := sampleProduct(t, "SKU-KB", "Keyboard", "49.90")
	mouse := sampleProduct(t, "SKU-MS", "Mouse", "19.99")

	order1 := sampleOrder(t, "customer-1", &keyboard, &mouse)
	order2 := sampleOrder(t, "customer-1", &mouse)
	order3 := sampleOrder(t, "customer-2", &keyboard)

	for _, order := range []*domain.Order{order1, order2, order3} {
		if err := repo.Add(ctx, order); err != nil {
			t.Fatalf("add order %s: %v", order.ID(), err)
		}
	}

	got, err := repo.GetByID(ctx, order1.ID())
	if err != nil {
		t.Fatalf("get order1: %v", err)
	}
	if got == nil {
		t.Fatal("expected order1 to exist")
	}
	if got.CustomerID() != "customer-1" {
		t.Fatalf("unexpected customer: %s", got.CustomerID())
	}
	items := got.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Позиции возвращаются в порядке добавления, цены — точно как в снимке.
	if items[0].ProductID != keyboard.ID || items[1].ProductID != mouse.ID {
		t.Fatalf("items out of insertion order: %+v", items)
	}
	if !items[0].UnitPrice.Equal(decimal.RequireFromString("49.90")) {
		t.Fatalf("unit price must survive the round trip: %s", items[0].UnitPrice)
	}
	if !got.TotalAmount().Equal(decimal.RequireFromString("69.89")) {
		t.Fatalf("unexpected total: %s", got.TotalAmount())
	}

	absent, err := repo.GetByID(ctx, "missing-order")
	if err != nil {
		t.Fatalf("get missing order: %v", err)
	}
	if absent != nil {
		t.Fatalf("expected nil for missing order, got %+v", absent)
	}

	byCustomer, err := repo.GetByCustomerID(ctx, "customer-1")
	if err != nil {
		t.Fatalf("get by customer: %v", err)
	}
	if len(byCustomer) != 2 {
		t.Fatalf("expected 2 orders for customer-1, got %d", len(byCustomer))
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all orders: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}

	from := order1.OrderDate().Add(-time.Minute)
	to := order1.OrderDate().Add(time.Minute)
	inRange, err := repo.GetByDateRange(ctx, from, to)
	if err != nil {
		t.Fatalf("get by date range: %v", err)
	}
	if len(inRange) != 3 {
		t.Fatalf("expected all orders in range, got %d", len(inRange))
	}
	empty, err := repo.GetByDateRange(ctx, to.Add(time.Hour), to.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("get by empty date range: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no orders outside range, got %d", len(empty))
	}
}

func TestOrderRepository_PostgresUpdateAndDelete(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	keyboard := sampleProduct(t, "SKU-KB", "Keyboard", "49.90")
	mouse := sampleProduct(t, "SKU-MS", "Mouse", "19.99")

	order := sampleOrder(t, "customer-1", &keyboard)
	if err := repo.Add(ctx, order); err != nil {
		t.Fatalf("add order: %v", err)
	}

	if err := repo.Add(ctx, order); err == nil {
		t.Fatal("expected error on duplicate add")
	}

	// Пересобираем заказ с другим набором позиций и перезаписываем его.
	replacement := domain.NewOrder(order.CustomerID())
	if err := replacement.AddItem(&mouse, 3); err != nil {
		t.Fatalf("add item to replacement: %v", err)
	}
	rewritten := domain.RehydrateOrder(order.ID(), order.CustomerID(), order.OrderDate(), replacement.Items())
	if err := repo.Update(ctx, rewritten); err != nil {
		t.Fatalf("update order: %v", err)
	}

	updated, err := repo.GetByID(ctx, order.ID())
	if err != nil {
		t.Fatalf("get updated order: %v", err)
	}
	items := updated.Items()
	if len(items) != 1 || items[0].ProductID != mouse.ID {
		t.Fatalf("unexpected items after update: %+v", items)
	}

	missing := domain.RehydrateOrder("missing-order", "customer-1", order.OrderDate(), nil)
	if err := repo.Update(ctx, missing); !domain.IsNotFound(err) {
		t.Fatalf("expected not found on update of missing order, got %v", err)
	}

	if err := repo.Delete(ctx, order.ID()); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	deleted, err := repo.GetByID(ctx, order.ID())
	if err != nil {
		t.Fatalf("get deleted order: %v", err)
	}
	if deleted != nil {
		t.Fatalf("expected nil for deleted order, got %+v", deleted)
	}

	// Каскад должен убрать позиции вместе с заказом.
	var count int
	if err := store.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM order_items WHERE order_id = $1
	`, order.ID()).Scan(&count); err != nil {
		t.Fatalf("count orphan items: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascade delete of items, %d left", count)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("expected unique violation for code 23505")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "22001"}) {
		t.Fatal("unexpected unique violation for non-unique code")
	}
	if isUniqueViolation(errors.New("plain error")) {
		t.Fatal("plain error must not be unique violation")
	}
}

func sampleProduct(t *testing.T, sku, name, price string) domain.Product {
	t.Helper()

	product, err := domain.NewProduct(sku, name, decimal.RequireFromString(price))
	if err != nil {
		t.Fatalf("new product %s: %v", sku, err)
	}
	return product
}

func sampleOrder(t *testing.T, customerID string, products ...*domain.Product) *domain.Order {
	t.Helper()

	order := domain.NewOrder(customerID)
	for _, product := range products {
		if err := order.AddItem(product, 1); err != nil {
			t.Fatalf("add item %s: %v", product.SKU, err)
		}
	}
	return order
}
