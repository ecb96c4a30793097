package service

import (
	"context"
	"testing"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
)

func TestNavigation(t *testing.T) {
	keys := func(items []NavItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Key)
		}
		return out
	}

	got := keys(Navigation(domain.RoleOperator))
	want := []string{"dashboard", "products", "receiving", "shipping", "warehouse", "inventory", "orders", "contractors", "reports"}
	if len(got) != len(want) {
		t.Fatalf("operator menu: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("operator menu: %v", got)
		}
	}

	for _, r := range []domain.Role{domain.RoleClient, domain.RoleSupplier} {
		got := keys(Navigation(r))
		if len(got) != 4 || got[0] != "dashboard" || got[3] != "contractors" {
			t.Fatalf("%s menu: %v", r, got)
		}
	}
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	tx := repository.NewMemoryTx(f.store)
	rs := NewRequestService(f.requests, tx)
	ds := NewDashboardService(f.products, f.requests, f.orders, f.zones)

	for i := 0; i < 12; i++ {
		_, _ = rs.Create(ctx, operator, NewRequest{Type: domain.RequestTypeReceiving})
	}
	_, _ = rs.UpdateStatus(ctx, 1, domain.RequestStatusCompleted)
	_, _ = rs.UpdateStatus(ctx, 2, domain.RequestStatusCancelled)
	_, _ = f.products.Submit(ctx, supplier, domain.Product{SKU: "SKU100", Name: "Чайник"})

	d, err := ds.Build(ctx, operator)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if d.TotalProducts != 4 || d.ActiveRequests != 11 || d.Zones != 3 || d.Orders != 0 {
		t.Fatalf("unexpected counters: %+v", d)
	}
	if d.PendingProducts == nil || *d.PendingProducts != 1 {
		t.Fatalf("unexpected pending: %v", d.PendingProducts)
	}
	if len(d.RecentRequests) != 10 || d.RecentRequests[0].ID != 12 || d.RecentRequests[9].ID != 3 {
		t.Fatalf("unexpected recent requests: %d", len(d.RecentRequests))
	}

	d, err = ds.Build(ctx, client)
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	if d.TotalProducts != 3 || d.PendingProducts != nil || d.RecentRequests != nil {
		t.Fatalf("client dashboard: %+v", d)
	}
}
