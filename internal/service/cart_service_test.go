package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
)

func TestCartAdd(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	v, err := f.cart.Add(ctx, client, 3, 0)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(v.Items) != 1 || v.Items[0].Quantity != 1 {
		t.Fatalf("zero quantity must count as one: %+v", v.Items)
	}

	v, err = f.cart.Add(ctx, client, 3, 2)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if len(v.Items) != 1 || v.Items[0].Quantity != 3 {
		t.Fatalf("repeated add must merge lines: %+v", v.Items)
	}
	if !v.Total.Equal(decimal.NewFromInt(3600)) || !v.Items[0].Subtotal.Equal(decimal.NewFromInt(3600)) {
		t.Fatalf("unexpected total %s", v.Total)
	}

	if _, err := f.cart.Add(ctx, client, 3, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := f.cart.Add(ctx, client, 42, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCartAddHiddenProduct(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	p, _ := f.products.Submit(ctx, supplier, domain.Product{SKU: "SKU100", Name: "Чайник", Price: decimal.NewFromInt(10)})
	if _, err := f.cart.Add(ctx, client, p.ID, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("pending product must not reach the cart, got %v", err)
	}
}

func TestCartSetQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, _ = f.cart.Add(ctx, client, 1, 1)
	_, _ = f.cart.Add(ctx, client, 2, 1)

	v, err := f.cart.SetQuantity(ctx, 1, 5)
	if err != nil || v.Items[0].Quantity != 5 {
		t.Fatalf("set quantity: %+v, %v", v, err)
	}
	if _, err := f.cart.SetQuantity(ctx, 3, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found for missing line, got %v", err)
	}

	v, err = f.cart.SetQuantity(ctx, 1, 0)
	if err != nil || len(v.Items) != 1 || v.Items[0].Product.ID != 2 {
		t.Fatalf("zero quantity must remove the line: %+v, %v", v, err)
	}

	v, err = f.cart.Remove(ctx, 2)
	if err != nil || len(v.Items) != 0 || !v.Total.IsZero() {
		t.Fatalf("remove: %+v, %v", v, err)
	}
}
