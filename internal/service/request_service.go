package service

import (
	"context"

	"skladpro/internal/domain"
	"skladpro/internal/logging"
	"skladpro/internal/metrics"
	"skladpro/internal/repository"
)

// RequestService складские заявки оператора
type RequestService struct {
	repo repository.RequestRepository
	tx   repository.TxManager
}

func NewRequestService(repo repository.RequestRepository, tx repository.TxManager) *RequestService {
	return &RequestService{repo: repo, tx: tx}
}

// NewRequest параметры создания заявки
type NewRequest struct {
	Type         domain.RequestType
	ContractorID *int64
	Notes        *string
}

// Create заводит заявку в статусе pending от имени оператора
func (s *RequestService) Create(ctx context.Context, operator domain.User, in NewRequest) (*domain.Request, error) {
	if !in.Type.IsValid() {
		return nil, ErrInvalidInput
	}
	operatorID := operator.ID
	r := domain.Request{
		RequestType:  in.Type,
		Status:       domain.RequestStatusPending,
		ContractorID: in.ContractorID,
		OperatorID:   &operatorID,
		Notes:        in.Notes,
	}
	if err := s.repo.Create(ctx, &r); err != nil {
		return nil, err
	}
	metrics.RequestsCreated.WithLabelValues(string(r.RequestType)).Inc()
	logging.LogKV("info", "request created", map[string]interface{}{
		"request_id": r.ID, "type": r.RequestType, "operator_id": operatorID,
	})
	return &r, nil
}

func (s *RequestService) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus любой статус может смениться на любой другой
func (s *RequestService) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) (*domain.Request, error) {
	if id <= 0 || !status.IsValid() {
		return nil, ErrInvalidInput
	}
	var updated *domain.Request
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		r, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		r.Status = status
		if err := s.repo.Update(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RequestStatusChanges.WithLabelValues(string(status)).Inc()
	logging.LogKV("info", "request status updated", map[string]interface{}{
		"request_id": id, "status": status,
	})
	return updated, nil
}

func (s *RequestService) List(ctx context.Context, f repository.RequestFilter) ([]domain.Request, error) {
	if f.Type != nil && !f.Type.IsValid() {
		return nil, ErrInvalidInput
	}
	if f.Status != nil && !f.Status.IsValid() {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, f)
}
