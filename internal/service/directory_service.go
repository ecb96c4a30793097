package service

import (
	"context"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
)

// DirectoryService справочники: контрагенты и складские зоны
type DirectoryService struct {
	contractors repository.ContractorRepository
	zones       repository.ZoneRepository
}

func NewDirectoryService(contractors repository.ContractorRepository, zones repository.ZoneRepository) *DirectoryService {
	return &DirectoryService{contractors: contractors, zones: zones}
}

func (s *DirectoryService) Contractors(ctx context.Context) ([]domain.Contractor, error) {
	return s.contractors.List(ctx)
}

// AddContractor добавляет контрагента; вид по умолчанию поставщик
func (s *DirectoryService) AddContractor(ctx context.Context, c domain.Contractor) (*domain.Contractor, error) {
	if c.Kind == "" {
		c.Kind = domain.ContractorSupplier
	}
	if c.Name == "" || !c.Kind.IsValid() {
		return nil, ErrInvalidInput
	}
	c.ID = 0
	if err := s.contractors.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *DirectoryService) Zones(ctx context.Context) ([]domain.Zone, error) {
	return s.zones.List(ctx)
}
