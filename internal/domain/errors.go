package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOrder возвращается, если запрос на создание заказа не содержит позиций.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrDuplicateItem возвращается при попытке добавить вторую позицию того же товара.
	ErrDuplicateItem = errors.New("product already exists in the order")
	// ErrProductRequired возвращается, если в AddItem передан отсутствующий товар.
	ErrProductRequired = errors.New("product is required")
	// ErrQuantityInvalid возвращается при некорректном количестве (<= 0).
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
)

// ValidationError описывает нарушение инварианта при конструировании сущности.
// Поле и причина хранятся отдельно, чтобы транспортный слой собирал
// осмысленный ответ без парсинга текста ошибки.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// NewValidationError создаёт ошибку валидации для конкретного поля.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation проверяет, относится ли ошибка к нарушениям валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// EntityKind перечисляет виды сущностей для ошибок "не найдено".
type EntityKind string

const (
	EntityCustomer EntityKind = "customer"
	EntityProduct  EntityKind = "product"
	EntityOrder    EntityKind = "order"
)

// NotFoundError сигнализирует, что сущность, на которую ссылается запрос,
// отсутствует в хранилище. Вид и идентификатор сохраняются, чтобы граница
// запроса могла назвать виновника.
type NotFoundError struct {
	Kind EntityKind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// NewNotFoundError создаёт ошибку отсутствия сущности.
func NewNotFoundError(kind EntityKind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound проверяет, является ли ошибка ошибкой отсутствия сущности.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// AsNotFound извлекает NotFoundError из цепочки ошибок.
func AsNotFound(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	ok := errors.As(err, &nfe)
	return nfe, ok
}

// IsInvalidArgument проверяет, относится ли ошибка к семейству структурно
// некорректных запросов.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrProductRequired) ||
		errors.Is(err, ErrQuantityInvalid) ||
		errors.Is(err, ErrEmptyOrder)
}
