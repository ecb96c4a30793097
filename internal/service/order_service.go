package service

import (
	"context"
	"errors"

	"skladpro/internal/domain"
	"skladpro/internal/logging"
	"skladpro/internal/metrics"
	"skladpro/internal/repository"
)

// OrderService оформление заказа из корзины и работа со списком заказов
type OrderService struct {
	cart   repository.CartRepository
	orders repository.OrderRepository
	tx     repository.TxManager
}

func NewOrderService(cart repository.CartRepository, orders repository.OrderRepository, tx repository.TxManager) *OrderService {
	return &OrderService{cart: cart, orders: orders, tx: tx}
}

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidState = errors.New("invalid state")
)

// CreateOrder атомарно превращает корзину в заказ: снимок строк, сумма, очистка корзины.
// Пустая корзина не меняет состояние.
func (s *OrderService) CreateOrder(ctx context.Context, client domain.User) (*domain.Order, error) {
	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		items, err := s.cart.Items(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}
		o := domain.Order{
			ClientID:    client.ID,
			Status:      domain.OrderStatusNew,
			TotalAmount: CartTotal(items),
			Items:       make([]domain.OrderItem, 0, len(items)),
		}
		for _, it := range items {
			o.Items = append(o.Items, domain.OrderItem{
				ProductID:   it.Product.ID,
				ProductName: it.Product.Name,
				Quantity:    it.Quantity,
				Price:       it.Product.Price,
			})
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		if err := s.cart.Clear(ctx); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			logging.LogKV("warn", "order rejected: cart is empty", map[string]interface{}{"client_id": client.ID})
		}
		return nil, err
	}
	metrics.OrdersCreated.Inc()
	metrics.OrderAmount.Add(created.TotalAmount.InexactFloat64())
	logging.LogKV("info", "order created", map[string]interface{}{
		"order_id": created.ID, "client_id": client.ID, "total_amount": created.TotalAmount.String(), "lines": len(created.Items),
	})
	return created, nil
}

func visibleOrderFilter(viewer domain.User) repository.OrderFilter {
	if viewer.Role == domain.RoleClient {
		id := viewer.ID
		return repository.OrderFilter{ClientID: &id}
	}
	return repository.OrderFilter{}
}

// GetOrder возвращает заказ; покупатель видит только свои
func (s *OrderService) GetOrder(ctx context.Context, viewer domain.User, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.Role == domain.RoleClient && o.ClientID != viewer.ID {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

// List заказы глазами пользователя
func (s *OrderService) List(ctx context.Context, viewer domain.User) ([]domain.Order, error) {
	return s.orders.List(ctx, visibleOrderFilter(viewer))
}

// UpdateStatus смена статуса заказа оператором без ограничений на переходы
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if id <= 0 || !status.IsValid() {
		return nil, ErrInvalidInput
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		o.Status = status
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
