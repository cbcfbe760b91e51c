package domain

import (
	"context"
	"time"
)

// Репозитории возвращают (nil, nil) для одиночных выборок, когда сущности
// нет: отсутствие — легитимный результат, а не ошибка. Ошибка означает сбой
// самого хранилища.

// CustomerRepository описывает требования к хранилищу покупателей.
type CustomerRepository interface {
	// GetByID возвращает покупателя или nil, если его нет.
	GetByID(ctx context.Context, id string) (*Customer, error)
	// GetAll возвращает всех покупателей.
	GetAll(ctx context.Context) ([]Customer, error)
	// Add сохраняет нового покупателя.
	Add(ctx context.Context, customer Customer) error
	// Update перезаписывает существующего покупателя.
	Update(ctx context.Context, customer Customer) error
	// Delete удаляет покупателя по идентификатору.
	Delete(ctx context.Context, id string) error
	// GetByEmail возвращает покупателя по адресу почты или nil.
	GetByEmail(ctx context.Context, email string) (*Customer, error)
}

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	// GetByID возвращает товар или nil, если его нет.
	GetByID(ctx context.Context, id string) (*Product, error)
	// GetAll возвращает весь каталог.
	GetAll(ctx context.Context) ([]Product, error)
	// Add сохраняет новый товар.
	Add(ctx context.Context, product Product) error
	// Update перезаписывает существующий товар.
	Update(ctx context.Context, product Product) error
	// Delete удаляет товар по идентификатору.
	Delete(ctx context.Context, id string) error
	// GetBySKU возвращает товар по SKU или nil.
	GetBySKU(ctx context.Context, sku string) (*Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
// GetByID обязан вернуть заказ вместе с полным набором позиций в порядке
// добавления: подсчёт суммы и проекция чтения зависят от полного набора,
// частичная или ленивая загрузка недопустима.
type OrderRepository interface {
	// GetByID возвращает заказ с позициями или nil, если его нет.
	GetByID(ctx context.Context, id string) (*Order, error)
	// GetAll возвращает все заказы.
	GetAll(ctx context.Context) ([]*Order, error)
	// Add сохраняет собранный заказ одной атомарной записью.
	Add(ctx context.Context, order *Order) error
	// Update перезаписывает существующий заказ.
	Update(ctx context.Context, order *Order) error
	// Delete удаляет заказ по идентификатору.
	Delete(ctx context.Context, id string) error
	// GetByCustomerID возвращает заказы клиента.
	GetByCustomerID(ctx context.Context, customerID string) ([]*Order, error)
	// GetByDateRange возвращает заказы, созданные в интервале [from, to].
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*Order, error)
}
