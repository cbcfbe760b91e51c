package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Customer — покупатель. В рамках сборки заказа используется только как цель
// проверки существования и после создания не изменяется.
type Customer struct {
	ID    string
	Name  string
	Email string
}

// NewCustomer конструирует покупателя, проверяя инварианты на входе.
// Пустые или состоящие из пробелов имя/почта отклоняются сразу.
func NewCustomer(name, email string) (Customer, error) {
	if strings.TrimSpace(name) == "" {
		return Customer{}, NewValidationError("name", "must not be blank")
	}
	if strings.TrimSpace(email) == "" {
		return Customer{}, NewValidationError("email", "must not be blank")
	}

	return Customer{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
	}, nil
}
