package service

import (
	"context"

	"github.com/shopspring/decimal"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
)

// CartLine строка корзины с подытогом
type CartLine struct {
	domain.CartItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartView корзина и её сумма
type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartService корзина покупателя в рамках сессии
type CartService struct {
	cart     repository.CartRepository
	products repository.ProductRepository
	tx       repository.TxManager
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository, tx repository.TxManager) *CartService {
	return &CartService{cart: cart, products: products, tx: tx}
}

// CartTotal сумма подытогов строк
func CartTotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func newCartView(items []domain.CartItem) *CartView {
	v := &CartView{Items: make([]CartLine, 0, len(items)), Total: CartTotal(items)}
	for _, it := range items {
		v.Items = append(v.Items, CartLine{CartItem: it, Subtotal: it.Subtotal()})
	}
	return v
}

// View текущее содержимое корзины
func (s *CartService) View(ctx context.Context) (*CartView, error) {
	items, err := s.cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	return newCartView(items), nil
}

// Add кладёт товар в корзину. Количество 0 трактуется как 1, повторное добавление увеличивает строку.
func (s *CartService) Add(ctx context.Context, viewer domain.User, productID, qty int64) (*CartView, error) {
	if productID <= 0 || qty < 0 {
		return nil, ErrInvalidInput
	}
	if qty == 0 {
		qty = 1
	}
	var view *CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if !VisibleTo(viewer, *p) {
			return repository.ErrNotFound
		}
		items, err := s.cart.Items(ctx)
		if err != nil {
			return err
		}
		line := domain.CartItem{Product: *p, Quantity: qty}
		for _, it := range items {
			if it.Product.ID == productID {
				line = it
				line.Quantity += qty
				break
			}
		}
		if err := s.cart.Put(ctx, line); err != nil {
			return err
		}
		items, err = s.cart.Items(ctx)
		if err != nil {
			return err
		}
		view = newCartView(items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SetQuantity задаёт количество строки; 0 удаляет строку
func (s *CartService) SetQuantity(ctx context.Context, productID, qty int64) (*CartView, error) {
	if productID <= 0 || qty < 0 {
		return nil, ErrInvalidInput
	}
	if qty == 0 {
		return s.Remove(ctx, productID)
	}
	var view *CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		items, err := s.cart.Items(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.Product.ID != productID {
				continue
			}
			it.Quantity = qty
			if err := s.cart.Put(ctx, it); err != nil {
				return err
			}
			items, err = s.cart.Items(ctx)
			if err != nil {
				return err
			}
			view = newCartView(items)
			return nil
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Remove убирает строку из корзины
func (s *CartService) Remove(ctx context.Context, productID int64) (*CartView, error) {
	if productID <= 0 {
		return nil, ErrInvalidInput
	}
	var view *CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.cart.Remove(ctx, productID); err != nil {
			return err
		}
		items, err := s.cart.Items(ctx)
		if err != nil {
			return err
		}
		view = newCartView(items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
