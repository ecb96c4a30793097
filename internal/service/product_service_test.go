package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
)

func TestSubmitProduct(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	p, err := f.products.Submit(ctx, supplier, domain.Product{
		SKU: "SKU100", Name: "Чайник Bosch", Unit: "шт", Price: decimal.NewFromInt(3500),
		Status: domain.ProductStatusApproved,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if p.ID != 4 || p.Status != domain.ProductStatusPending || !p.OwnedBy(supplier.ID) {
		t.Fatalf("unexpected product: %+v", p)
	}

	if _, err := f.products.Submit(ctx, supplier, domain.Product{SKU: "SKU101"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty name, got %v", err)
	}
}

func TestVisibleByRole(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	if _, err := f.products.Submit(ctx, supplier, domain.Product{SKU: "SKU100", Name: "Чайник"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	list, _ := f.products.Visible(ctx, client, repository.ProductFilter{})
	if len(list) != 3 {
		t.Fatalf("client must see only approved, got %d", len(list))
	}
	for _, p := range list {
		if p.Status != domain.ProductStatusApproved {
			t.Fatalf("client sees %s product", p.Status)
		}
	}

	list, _ = f.products.Visible(ctx, supplier, repository.ProductFilter{})
	if len(list) != 1 || list[0].SKU != "SKU100" {
		t.Fatalf("supplier must see only own products: %+v", list)
	}

	list, _ = f.products.Visible(ctx, operator, repository.ProductFilter{})
	if len(list) != 4 {
		t.Fatalf("operator must see everything, got %d", len(list))
	}

	// фильтр из запроса не расширяет проекцию
	pending := domain.ProductStatusPending
	list, _ = f.products.Visible(ctx, client, repository.ProductFilter{Status: &pending})
	if len(list) != 3 {
		t.Fatalf("client status filter must be overridden, got %d", len(list))
	}

	if _, err := f.products.GetVisible(ctx, client, 4); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("pending product must be hidden from client, got %v", err)
	}
	if _, err := f.products.GetVisible(ctx, supplier, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("foreign product must be hidden from supplier, got %v", err)
	}
}

func TestApproveReject(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	a, _ := f.products.Submit(ctx, supplier, domain.Product{SKU: "SKU100", Name: "A"})
	b, _ := f.products.Submit(ctx, supplier, domain.Product{SKU: "SKU101", Name: "B"})

	got, err := f.products.Approve(ctx, a.ID)
	if err != nil || got.Status != domain.ProductStatusApproved {
		t.Fatalf("approve: %+v, %v", got, err)
	}
	other, _ := f.products.GetByID(ctx, b.ID)
	if other.Status != domain.ProductStatusPending {
		t.Fatalf("approve touched another product: %+v", other)
	}

	if _, err := f.products.Reject(ctx, a.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state for approved product, got %v", err)
	}
	got, err = f.products.Reject(ctx, b.ID)
	if err != nil || got.Status != domain.ProductStatusRejected {
		t.Fatalf("reject: %+v, %v", got, err)
	}
	if _, err := f.products.Approve(ctx, 42); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	list, _ := f.products.Visible(ctx, client, repository.ProductFilter{})
	if len(list) != 4 {
		t.Fatalf("approved product must reach the client catalog, got %d", len(list))
	}
}
