package repository

import (
	"context"
	"sync"
	"time"

	"skladpro/internal/domain"
)

// MemoryStore объединённое in-memory хранилище состояния сессии.
// ID новых записей = текущая длина списка + 1, записи не удаляются.
type MemoryStore struct {
	mu          sync.RWMutex
	products    []domain.Product
	requests    []domain.Request
	orders      []domain.Order
	contractors []domain.Contractor
	zones       []domain.Zone
	cart        []domain.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p.ID = int64(len(m.products)) + 1
	p.CreatedAt = stamp(p.CreatedAt)
	m.products = append(m.products, *p)
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, p := range m.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = *p
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		if f.Query != "" && !containsIgnoreCase(p.Name, f.Query) && !containsIgnoreCase(p.SKU, f.Query) {
			continue
		}
		if f.SupplierID != nil && !p.OwnedBy(*f.SupplierID) {
			continue
		}
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *MemoryStore) Replace(ctx context.Context, list []domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	m.products = append([]domain.Product(nil), list...)
	return nil
}

// RequestRepository implementation on wrapper type
type MemoryRequests struct{ store *MemoryStore }

func NewMemoryRequests(store *MemoryStore) *MemoryRequests { return &MemoryRequests{store: store} }

var _ RequestRepository = (*MemoryRequests)(nil)

func (mr *MemoryRequests) Create(ctx context.Context, r *domain.Request) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	r.ID = int64(len(mr.store.requests)) + 1
	r.CreatedAt = stamp(r.CreatedAt)
	mr.store.requests = append(mr.store.requests, *r)
	return nil
}

func (mr *MemoryRequests) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	mr.store.rlock(ctx)
	defer mr.store.runlock(ctx)
	for _, r := range mr.store.requests {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mr *MemoryRequests) Update(ctx context.Context, r *domain.Request) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	for i := range mr.store.requests {
		if mr.store.requests[i].ID == r.ID {
			mr.store.requests[i] = *r
			return nil
		}
	}
	return ErrNotFound
}

func (mr *MemoryRequests) List(ctx context.Context, f RequestFilter) ([]domain.Request, error) {
	mr.store.rlock(ctx)
	defer mr.store.runlock(ctx)
	out := make([]domain.Request, 0, len(mr.store.requests))
	for _, r := range mr.store.requests {
		if f.Type != nil && r.RequestType != *f.Type {
			continue
		}
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (mr *MemoryRequests) Replace(ctx context.Context, list []domain.Request) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	mr.store.requests = append([]domain.Request(nil), list...)
	return nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o.ID = int64(len(mo.store.orders)) + 1
	o.CreatedAt = stamp(o.CreatedAt)
	mo.store.orders = append(mo.store.orders, cloneOrder(*o))
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	for _, o := range mo.store.orders {
		if o.ID == id {
			cp := cloneOrder(o)
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	for i := range mo.store.orders {
		if mo.store.orders[i].ID == o.ID {
			mo.store.orders[i] = cloneOrder(*o)
			return nil
		}
	}
	return ErrNotFound
}

func (mo *MemoryOrders) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0, len(mo.store.orders))
	for _, o := range mo.store.orders {
		if f.ClientID != nil && o.ClientID != *f.ClientID {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (mo *MemoryOrders) Replace(ctx context.Context, list []domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	mo.store.orders = make([]domain.Order, 0, len(list))
	for _, o := range list {
		mo.store.orders = append(mo.store.orders, cloneOrder(o))
	}
	return nil
}

// позиции заказа не должны разделять backing array с вызывающим кодом
func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}

// CartRepository implementation on wrapper type
type MemoryCart struct{ store *MemoryStore }

func NewMemoryCart(store *MemoryStore) *MemoryCart { return &MemoryCart{store: store} }

var _ CartRepository = (*MemoryCart)(nil)

func (mc *MemoryCart) Items(ctx context.Context) ([]domain.CartItem, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	return append([]domain.CartItem{}, mc.store.cart...), nil
}

// Put заменяет строку с тем же товаром или добавляет новую в конец
func (mc *MemoryCart) Put(ctx context.Context, item domain.CartItem) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for i := range mc.store.cart {
		if mc.store.cart[i].Product.ID == item.Product.ID {
			mc.store.cart[i] = item
			return nil
		}
	}
	mc.store.cart = append(mc.store.cart, item)
	return nil
}

func (mc *MemoryCart) Remove(ctx context.Context, productID int64) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for i := range mc.store.cart {
		if mc.store.cart[i].Product.ID == productID {
			mc.store.cart = append(mc.store.cart[:i], mc.store.cart[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (mc *MemoryCart) Clear(ctx context.Context) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	mc.store.cart = nil
	return nil
}

// ContractorRepository implementation on wrapper type
type MemoryContractors struct{ store *MemoryStore }

func NewMemoryContractors(store *MemoryStore) *MemoryContractors {
	return &MemoryContractors{store: store}
}

var _ ContractorRepository = (*MemoryContractors)(nil)

func (mc *MemoryContractors) Create(ctx context.Context, c *domain.Contractor) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	c.ID = int64(len(mc.store.contractors)) + 1
	c.CreatedAt = stamp(c.CreatedAt)
	mc.store.contractors = append(mc.store.contractors, *c)
	return nil
}

func (mc *MemoryContractors) List(ctx context.Context) ([]domain.Contractor, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	return append([]domain.Contractor{}, mc.store.contractors...), nil
}

func (mc *MemoryContractors) Replace(ctx context.Context, list []domain.Contractor) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	mc.store.contractors = append([]domain.Contractor(nil), list...)
	return nil
}

// ZoneRepository implementation on wrapper type
type MemoryZones struct{ store *MemoryStore }

func NewMemoryZones(store *MemoryStore) *MemoryZones { return &MemoryZones{store: store} }

var _ ZoneRepository = (*MemoryZones)(nil)

func (mz *MemoryZones) List(ctx context.Context) ([]domain.Zone, error) {
	mz.store.rlock(ctx)
	defer mz.store.runlock(ctx)
	return append([]domain.Zone{}, mz.store.zones...), nil
}

func (mz *MemoryZones) Replace(ctx context.Context, list []domain.Zone) error {
	mz.store.wlock(ctx)
	defer mz.store.wunlock(ctx)
	mz.store.zones = append([]domain.Zone(nil), list...)
	return nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if isTx(ctx) {
		return fn(ctx)
	}
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
