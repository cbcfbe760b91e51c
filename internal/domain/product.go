package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product — позиция каталога. Заказы только ссылаются на товар и копируют его
// цену; сборка заказа никогда не изменяет товар.
type Product struct {
	ID   string
	SKU  string
	Name string
	// Price хранится как decimal с фиксированной точностью, чтобы суммы
	// заказов не накапливали ошибок двоичного округления.
	Price decimal.Decimal
}

// NewProduct конструирует товар, проверяя инварианты на входе:
// непустые SKU и имя, строго положительная цена.
func NewProduct(sku, name string, price decimal.Decimal) (Product, error) {
	if strings.TrimSpace(sku) == "" {
		return Product{}, NewValidationError("sku", "must not be blank")
	}
	if strings.TrimSpace(name) == "" {
		return Product{}, NewValidationError("name", "must not be blank")
	}
	if price.Sign() <= 0 {
		return Product{}, NewValidationError("price", "must be greater than zero")
	}

	return Product{
		ID:    uuid.NewString(),
		SKU:   sku,
		Name:  name,
		Price: price,
	}, nil
}
