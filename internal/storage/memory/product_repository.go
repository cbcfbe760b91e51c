package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий каталога.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// GetByID возвращает товар или nil, если его нет.
func (r *productRepositoryInMemory) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// GetAll возвращает весь каталог, отсортированный по SKU.
func (r *productRepositoryInMemory) GetAll(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SKU < result[j].SKU })
	return result, nil
}

// Add сохраняет новый товар.
func (r *productRepositoryInMemory) Add(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[product.ID] = product
	return nil
}

// Update перезаписывает существующий товар.
func (r *productRepositoryInMemory) Update(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return domain.NewNotFoundError(domain.EntityProduct, product.ID)
	}
	r.items[product.ID] = product
	return nil
}

// Delete удаляет товар по идентификатору.
func (r *productRepositoryInMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// GetBySKU возвращает товар по SKU или nil.
func (r *productRepositoryInMemory) GetBySKU(_ context.Context, sku string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.items {
		if product.SKU == sku {
			found := product
			return &found, nil
		}
	}
	return nil, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
