package orders_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
	"github.com/vladislavdragonenkov/orderflow/internal/service/orders"
	"github.com/vladislavdragonenkov/orderflow/internal/storage/memory"
)

type fixture struct {
	service   *orders.Service
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
}

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel) // Уменьшаем шум в тестах
	return logger.WithField("component", "orders-test")
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orderRepo := memory.NewOrderRepository()
	customerRepo := memory.NewCustomerRepository()
	productRepo := memory.NewProductRepository()

	return &fixture{
		service:   orders.NewService(orderRepo, customerRepo, productRepo, loggerForTests()),
		orders:    orderRepo,
		customers: customerRepo,
		products:  productRepo,
	}
}

func (f *fixture) addCustomer(t *testing.T) domain.Customer {
	t.Helper()
	customer, err := domain.NewCustomer("Alice", "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, f.customers.Add(context.Background(), customer))
	return customer
}

func (f *fixture) addProduct(t *testing.T, sku, price string) domain.Product {
	t.Helper()
	product, err := domain.NewProduct(sku, "product "+sku, decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, f.products.Add(context.Background(), product))
	return product
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	all, err := f.orders.GetAll(context.Background())
	require.NoError(t, err)
	return len(all)
}

func TestCreateOrder_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.addCustomer(t)
	p1 := f.addProduct(t, "SKU-1", "10.00")
	p2 := f.addProduct(t, "SKU-2", "5.00")

	orderID, err := f.service.CreateOrder(ctx, orders.CreateOrderInput{
		CustomerID: customer.ID,
		Items: []orders.ItemInput{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	view, err := f.service.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, view)
	require.True(t, view.TotalAmount.Equal(decimal.RequireFromString("25.00")),
		"expected total 25.00, got %s", view.TotalAmount)
	require.Len(t, view.Items, 2)
	// Позиции идут в порядке запроса.
	require.Equal(t, p1.ID, view.Items[0].ProductID)
	require.EqualValues(t, 2, view.Items[0].Quantity)
	require.Equal(t, p2.ID, view.Items[1].ProductID)
	require.EqualValues(t, 1, view.Items[1].Quantity)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.addCustomer(t)

	_, err := f.service.CreateOrder(ctx, orders.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      nil,
	})
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
	require.Zero(t, f.orderCount(t), "nothing must be persisted")
}

func TestCreateOrder_CustomerNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	product := f.addProduct(t, "SKU-1", "10.00")

	_, err := f.service.CreateOrder(ctx, orders.CreateOrderInput{
		CustomerID: "missing-customer",
		Items:      []orders.ItemInput{{ProductID: product.ID, Quantity: 1}},
	})

	nfe, ok := domain.AsNotFound(err)
	require.True(t, ok, "expected NotFoundError, got %v", err)
	require.Equal(t, domain.EntityCustomer, nfe.Kind)
	require.Equal(t, "missing-customer", nfe.ID)
	require.Zero(t, f.orderCount(t))
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.addCustomer(t)

	_, err := f.service.CreateOrder(ctx, orders.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []orders.ItemInput{{ProductID: "missing-product", Quantity: 1}},
	})

	nfe, ok := domain.AsNotFound(err)
	require.True(t, ok, "expected NotFoundError, got %v", err)
	require.Equal(t, domain.EntityProduct, nfe.Kind)
	require.Equal(t, "missing-product", nfe.ID)
	require.Zero(t, f.orderCount(t))
}

func TestCreateOrder_DuplicateProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "SKU-1", "10.00")

	_, err := f.service.CreateOrder(ctx, orders.CreateOrderInput{
		CustomerID: customer.ID,
		Items: []orders.ItemInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateItem)
	require.Zero(t, f.orderCount(t))
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "SKU-1", "10.00")

	_, err := f.service.CreateOrder(ctx, orders.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []orders.ItemInput{{ProductID: product.ID, Quantity: 0}},
	})
	require.ErrorIs(t, err, domain.ErrQuantityInvalid)
	require.Zero(t, f.orderCount(t))
}

func TestCreateOrder_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "SKU-1", "10.00")

	orderID, err := f.service.CreateOrder(ctx, orders.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []orders.ItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Меняем цену товара в каталоге уже после создания заказа.
	product.Price = decimal.RequireFromString("99.99")
	require.NoError(t, f.products.Update(ctx, product))

	view, err := f.service.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.NotNil(t, view)
	require.True(t, view.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")),
		"snapshot price changed: %s", view.Items[0].UnitPrice)
	require.True(t, view.TotalAmount.Equal(decimal.RequireFromString("20.00")),
		"total recomputed from live price: %s", view.TotalAmount)
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) PublishOrderCreated(*domain.Order) error {
	p.calls++
	return context.DeadlineExceeded
}

func TestCreateOrder_PublisherFailureDoesNotFailCreation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	customer := f.addCustomer(t)
	product := f.addProduct(t, "SKU-1", "10.00")

	publisher := &failingPublisher{}
	service := orders.NewService(f.orders, f.customers, f.products, loggerForTests(),
		orders.WithPublisher(publisher))

	orderID, err := service.CreateOrder(ctx, orders.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []orders.ItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, orderID)
	require.Equal(t, 1, publisher.calls)
	require.Equal(t, 1, f.orderCount(t))
}
