package repository

import (
	"context"
	"errors"
	"strings"

	"skladpro/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ProductFilter параметры фильтрации каталога
type ProductFilter struct {
	Query      string
	SupplierID *int64
	Status     *domain.ProductStatus
}

// RequestFilter параметры фильтрации заявок
type RequestFilter struct {
	Type   *domain.RequestType
	Status *domain.RequestStatus
}

// OrderFilter параметры фильтрации заказов
type OrderFilter struct {
	ClientID *int64
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	Replace(ctx context.Context, list []domain.Product) error
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, r *domain.Request) error
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	Update(ctx context.Context, r *domain.Request) error
	List(ctx context.Context, f RequestFilter) ([]domain.Request, error)
	Replace(ctx context.Context, list []domain.Request) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, f OrderFilter) ([]domain.Order, error)
	Replace(ctx context.Context, list []domain.Order) error
}

// CartRepository корзина текущей сессии
type CartRepository interface {
	Items(ctx context.Context) ([]domain.CartItem, error)
	Put(ctx context.Context, item domain.CartItem) error
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}

// ContractorRepository интерфейс репозитория контрагентов
type ContractorRepository interface {
	Create(ctx context.Context, c *domain.Contractor) error
	List(ctx context.Context) ([]domain.Contractor, error)
	Replace(ctx context.Context, list []domain.Contractor) error
}

// ZoneRepository интерфейс репозитория складских зон
type ZoneRepository interface {
	List(ctx context.Context) ([]domain.Zone, error)
	Replace(ctx context.Context, list []domain.Zone) error
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
