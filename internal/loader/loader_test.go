package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
)

func newTargets(t *testing.T) (Targets, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	zones := repository.NewMemoryZones(store)
	if err := zones.Replace(context.Background(), []domain.Zone{{ID: 1, Code: "A", Capacity: 10}}); err != nil {
		t.Fatalf("seed zones: %v", err)
	}
	if err := store.Create(context.Background(), &domain.Product{SKU: "SKU001", Name: "Ноутбук"}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return Targets{
		Requests:    repository.NewMemoryRequests(store),
		Products:    store,
		Contractors: repository.NewMemoryContractors(store),
		Orders:      repository.NewMemoryOrders(store),
		Zones:       zones,
	}, store
}

func TestLoadReplacesOnlySuccessfulLists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(PathRequests, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":5,"request_type":"shipping","status":"in_progress"}]`))
	})
	mux.HandleFunc(PathProducts, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc(PathContractors, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc(PathOrders, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	})
	mux.HandleFunc(PathZones, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	targets, store := newTargets(t)
	ctx := context.Background()
	outcomes := New(srv.URL, time.Second, targets).Load(ctx)

	want := []struct {
		path   string
		failed bool
	}{
		{PathRequests, false},
		{PathProducts, true},
		{PathContractors, false},
		{PathOrders, true},
		{PathZones, true},
	}
	if len(outcomes) != len(want) {
		t.Fatalf("unexpected outcomes: %+v", outcomes)
	}
	for i, w := range want {
		if outcomes[i].Path != w.path || (outcomes[i].Err != nil) != w.failed {
			t.Fatalf("outcome %d: %+v", i, outcomes[i])
		}
	}

	reqs, _ := targets.Requests.List(ctx, repository.RequestFilter{})
	if len(reqs) != 1 || reqs[0].ID != 5 || reqs[0].Status != domain.RequestStatusInProgress {
		t.Fatalf("requests not replaced: %+v", reqs)
	}
	products, _ := store.List(ctx, repository.ProductFilter{})
	if len(products) != 1 || products[0].SKU != "SKU001" {
		t.Fatalf("products must keep previous value: %+v", products)
	}
	zones, _ := targets.Zones.List(ctx)
	if len(zones) != 1 {
		t.Fatalf("zones must keep previous value: %+v", zones)
	}
}

func TestLoadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	targets, store := newTargets(t)
	for _, o := range New(url, 200*time.Millisecond, targets).Load(context.Background()) {
		if o.Err == nil {
			t.Fatalf("expected failure for %s", o.Path)
		}
	}
	products, _ := store.List(context.Background(), repository.ProductFilter{})
	if len(products) != 1 {
		t.Fatalf("products must survive failed load: %+v", products)
	}
}

func TestDisabledWithoutBaseURL(t *testing.T) {
	targets, _ := newTargets(t)
	l := New("", time.Second, targets)
	if l.Enabled() {
		t.Fatalf("loader without base url must be disabled")
	}
	l.LoadInBackground(context.Background(), domain.User{ID: 1})
}
