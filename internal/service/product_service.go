package service

import (
	"context"
	"errors"

	"skladpro/internal/domain"
	"skladpro/internal/logging"
	"skladpro/internal/metrics"
	"skladpro/internal/repository"
)

// ProductService инкапсулирует каталог: заявки поставщиков, согласование, видимость по ролям
type ProductService struct {
	repo repository.ProductRepository
	tx   repository.TxManager
}

func NewProductService(repo repository.ProductRepository, tx repository.TxManager) *ProductService {
	return &ProductService{repo: repo, tx: tx}
}

var ErrInvalidInput = errors.New("invalid input")

// VisibleTo проекция каталога по роли: поставщик видит свои товары,
// покупатель только согласованные, оператор всё.
func VisibleTo(viewer domain.User, p domain.Product) bool {
	switch viewer.Role {
	case domain.RoleOperator:
		return true
	case domain.RoleSupplier:
		return p.OwnedBy(viewer.ID)
	case domain.RoleClient:
		return p.Status == domain.ProductStatusApproved
	default:
		return false
	}
}

// Submit создаёт товар от имени поставщика в статусе pending
func (s *ProductService) Submit(ctx context.Context, supplier domain.User, p domain.Product) (*domain.Product, error) {
	if p.Name == "" || p.SKU == "" {
		return nil, ErrInvalidInput
	}
	cp := p
	cp.ID = 0
	cp.Status = domain.ProductStatusPending
	owner := supplier.ID
	cp.SupplierID = &owner
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	metrics.ProductsSubmitted.Inc()
	logging.LogKV("info", "product submitted", map[string]interface{}{
		"product_id": cp.ID, "sku": cp.SKU, "supplier_id": owner,
	})
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// GetVisible возвращает товар, только если он виден пользователю
func (s *ProductService) GetVisible(ctx context.Context, viewer domain.User, id int64) (*domain.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !VisibleTo(viewer, *p) {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

// Visible список каталога глазами пользователя. Ролевая проекция сильнее фильтра из запроса.
func (s *ProductService) Visible(ctx context.Context, viewer domain.User, f repository.ProductFilter) ([]domain.Product, error) {
	switch viewer.Role {
	case domain.RoleOperator:
	case domain.RoleSupplier:
		id := viewer.ID
		f.SupplierID = &id
	case domain.RoleClient:
		approved := domain.ProductStatusApproved
		f.Status = &approved
	default:
		return []domain.Product{}, nil
	}
	return s.repo.List(ctx, f)
}

// Approve pending -> approved
func (s *ProductService) Approve(ctx context.Context, id int64) (*domain.Product, error) {
	return s.decide(ctx, id, domain.ProductStatusApproved)
}

// Reject pending -> rejected
func (s *ProductService) Reject(ctx context.Context, id int64) (*domain.Product, error) {
	return s.decide(ctx, id, domain.ProductStatusRejected)
}

func (s *ProductService) decide(ctx context.Context, id int64, to domain.ProductStatus) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	var updated *domain.Product
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Status.IsFinal() {
			return ErrInvalidState
		}
		p.Status = to
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ProductDecisions.WithLabelValues(string(to)).Inc()
	logging.LogKV("info", "product decided", map[string]interface{}{
		"product_id": id, "status": to,
	})
	return updated, nil
}
