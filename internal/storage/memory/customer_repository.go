package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[string]domain.Customer),
	}
}

// GetByID возвращает покупателя или nil, если его нет.
func (r *customerRepositoryInMemory) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

// GetAll возвращает всех покупателей, отсортированных по идентификатору.
func (r *customerRepositoryInMemory) GetAll(_ context.Context) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.items))
	for _, customer := range r.items {
		result = append(result, customer)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Add сохраняет нового покупателя.
func (r *customerRepositoryInMemory) Add(_ context.Context, customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[customer.ID] = customer
	return nil
}

// Update перезаписывает существующего покупателя.
func (r *customerRepositoryInMemory) Update(_ context.Context, customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[customer.ID]; !ok {
		return domain.NewNotFoundError(domain.EntityCustomer, customer.ID)
	}
	r.items[customer.ID] = customer
	return nil
}

// Delete удаляет покупателя по идентификатору.
func (r *customerRepositoryInMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// GetByEmail возвращает покупателя по адресу почты или nil.
func (r *customerRepositoryInMemory) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.items {
		if customer.Email == email {
			found := customer
			return &found, nil
		}
	}
	return nil, nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
