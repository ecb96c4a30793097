package service

import (
	"context"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
)

const recentRequestsLimit = 10

// Dashboard сводка, считается при каждом чтении
type Dashboard struct {
	TotalProducts   int              `json:"total_products"`
	ActiveRequests  int              `json:"active_requests"`
	Zones           int              `json:"zones"`
	Orders          int              `json:"orders"`
	PendingProducts *int             `json:"pending_products,omitempty"`
	RecentRequests  []domain.Request `json:"recent_requests,omitempty"`
}

// NavItem пункт меню
type NavItem struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Navigation меню для роли
func Navigation(role domain.Role) []NavItem {
	items := []NavItem{{"dashboard", "Дашборд"}, {"products", "Товары"}}
	if role == domain.RoleOperator {
		items = append(items,
			NavItem{"receiving", "Приемка"},
			NavItem{"shipping", "Отгрузка"},
			NavItem{"warehouse", "Склад"},
			NavItem{"inventory", "Инвентаризация"},
		)
	}
	items = append(items, NavItem{"orders", "Заказы"}, NavItem{"contractors", "Контрагенты"})
	if role == domain.RoleOperator {
		items = append(items, NavItem{"reports", "Отчеты"})
	}
	return items
}

type DashboardService struct {
	products *ProductService
	requests repository.RequestRepository
	orders   *OrderService
	zones    repository.ZoneRepository
}

func NewDashboardService(products *ProductService, requests repository.RequestRepository, orders *OrderService, zones repository.ZoneRepository) *DashboardService {
	return &DashboardService{products: products, requests: requests, orders: orders, zones: zones}
}

// Build считает сводку для пользователя. Активной считается любая незавершённая заявка.
func (s *DashboardService) Build(ctx context.Context, viewer domain.User) (*Dashboard, error) {
	products, err := s.products.Visible(ctx, viewer, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.List(ctx, repository.RequestFilter{})
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx, viewer)
	if err != nil {
		return nil, err
	}
	zones, err := s.zones.List(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{TotalProducts: len(products), Zones: len(zones), Orders: len(orders)}
	for _, r := range requests {
		if r.Status != domain.RequestStatusCompleted {
			d.ActiveRequests++
		}
	}
	if viewer.Role == domain.RoleOperator {
		pending := 0
		for _, p := range products {
			if p.Status == domain.ProductStatusPending {
				pending++
			}
		}
		d.PendingProducts = &pending
		// последние заявки, новые сверху
		d.RecentRequests = make([]domain.Request, 0, recentRequestsLimit)
		for i := len(requests) - 1; i >= 0 && len(d.RecentRequests) < recentRequestsLimit; i-- {
			d.RecentRequests = append(d.RecentRequests, requests[i])
		}
	}
	return d, nil
}
