package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

// orderRepositoryInMemory хранит заказы как снимки состояния агрегата.
// Снимок пересобирается в агрегат на каждом чтении, чтобы хранимые данные
// нельзя было изменить через возвращённый объект.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]orderSnapshot
}

type orderSnapshot struct {
	id         string
	customerID string
	orderDate  time.Time
	items      []domain.OrderItem
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]orderSnapshot),
	}
}

func snapshotOf(order *domain.Order) orderSnapshot {
	return orderSnapshot{
		id:         order.ID(),
		customerID: order.CustomerID(),
		orderDate:  order.OrderDate(),
		items:      order.Items(),
	}
}

func (s orderSnapshot) rehydrate() *domain.Order {
	return domain.RehydrateOrder(s.id, s.customerID, s.orderDate, s.items)
}

// GetByID возвращает заказ с полным набором позиций или nil, если его нет.
func (r *orderRepositoryInMemory) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return snapshot.rehydrate(), nil
}

// GetAll возвращает все заказы, новые первыми.
func (r *orderRepositoryInMemory) GetAll(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(orderSnapshot) bool { return true }), nil
}

// Add сохраняет собранный заказ. Запись снимка атомарна относительно других
// операций репозитория.
func (r *orderRepositoryInMemory) Add(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[order.ID()] = snapshotOf(order)
	return nil
}

// Update перезаписывает существующий заказ.
func (r *orderRepositoryInMemory) Update(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[order.ID()]; !ok {
		return domain.NewNotFoundError(domain.EntityOrder, order.ID())
	}
	r.items[order.ID()] = snapshotOf(order)
	return nil
}

// Delete удаляет заказ по идентификатору.
func (r *orderRepositoryInMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// GetByCustomerID возвращает заказы клиента, новые первыми.
func (r *orderRepositoryInMemory) GetByCustomerID(_ context.Context, customerID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(s orderSnapshot) bool { return s.customerID == customerID }), nil
}

// GetByDateRange возвращает заказы, созданные в интервале [from, to].
func (r *orderRepositoryInMemory) GetByDateRange(_ context.Context, from, to time.Time) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(s orderSnapshot) bool {
		return !s.orderDate.Before(from) && !s.orderDate.After(to)
	}), nil
}

// collect вызывается под блокировкой чтения.
func (r *orderRepositoryInMemory) collect(match func(orderSnapshot) bool) []*domain.Order {
	snapshots := make([]orderSnapshot, 0, len(r.items))
	for _, snapshot := range r.items {
		if match(snapshot) {
			snapshots = append(snapshots, snapshot)
		}
	}

	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].orderDate.Equal(snapshots[j].orderDate) {
			return snapshots[i].orderDate.After(snapshots[j].orderDate)
		}
		return snapshots[i].id > snapshots[j].id
	})

	result := make([]*domain.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		result = append(result, snapshot.rehydrate())
	}
	return result
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
