package orders

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
	"github.com/vladislavdragonenkov/orderflow/internal/metrics"
)

// EventPublisher публикует доменные события заказа после фиксации в хранилище.
// Публикация best-effort: её сбой не откатывает уже сохранённый заказ.
type EventPublisher interface {
	PublishOrderCreated(order *domain.Order) error
}

// Service реализует сборку заказа и проекцию чтения поверх доменных
// репозиториев.
type Service struct {
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	publisher EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// Option настраивает необязательные зависимости сервиса.
type Option func(*Service)

// WithPublisher подключает публикацию событий заказа.
func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithMetrics подключает метрики операций с заказами.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService конструирует сервис с зависимостями.
func NewService(
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	logger *log.Entry,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "orders-service")
	}
	s := &Service{
		orders:    orders,
		customers: customers,
		products:  products,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ItemInput — запрошенная позиция заказа.
type ItemInput struct {
	ProductID string
	Quantity  int32
}

// CreateOrderInput — команда создания заказа.
type CreateOrderInput struct {
	CustomerID string
	Items      []ItemInput
}

// CreateOrder собирает и сохраняет заказ:
// проверка формы запроса -> разрешение клиента -> позиция за позицией
// разрешение товаров и AddItem -> единственная запись в хранилище.
// Позиции обрабатываются строго в порядке запроса, чтобы сообщения о
// дубликатах и отсутствующих товарах были детерминированными. Любой сбой
// до записи оставляет хранилище нетронутым.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (string, error) {
	started := time.Now()

	orderID, err := s.createOrder(ctx, input)
	if err != nil {
		s.observeCreateFailure(err)
		return "", err
	}

	s.observeCreateSuccess(time.Since(started))
	return orderID, nil
}

func (s *Service) createOrder(ctx context.Context, input CreateOrderInput) (string, error) {
	if len(input.Items) == 0 {
		return "", domain.ErrEmptyOrder
	}

	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return "", fmt.Errorf("resolve customer: %w", err)
	}
	if customer == nil {
		return "", domain.NewNotFoundError(domain.EntityCustomer, input.CustomerID)
	}

	order := domain.NewOrder(customer.ID)

	for _, item := range input.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return "", fmt.Errorf("resolve product: %w", err)
		}
		if product == nil {
			return "", domain.NewNotFoundError(domain.EntityProduct, item.ProductID)
		}

		if err := order.AddItem(product, item.Quantity); err != nil {
			return "", err
		}
	}

	if err := s.orders.Add(ctx, order); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID()).Error("failed to persist order")
		return "", fmt.Errorf("persist order: %w", err)
	}

	s.publishOrderCreated(order)

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID(),
		"customer_id": order.CustomerID(),
		"items":       len(order.Items()),
	}).Info("order created")

	return order.ID(), nil
}

func (s *Service) publishOrderCreated(order *domain.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderCreated(order); err != nil {
		// Заказ уже сохранён; событие теряем с предупреждением.
		s.logger.WithError(err).WithField("order_id", order.ID()).Warn("failed to publish order created event")
	}
}

func (s *Service) observeCreateSuccess(elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordOrderCreated(elapsed)
}

func (s *Service) observeCreateFailure(err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordOrderFailed(metrics.FailureReason(err))
}
