package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
)

// DefaultCatalog предзагруженные согласованные товары
func DefaultCatalog() []domain.Product {
	return []domain.Product{
		{SKU: "SKU001", Name: "Ноутбук Dell XPS", Category: "Электроника", Unit: "шт", Price: decimal.NewFromInt(85000), Status: domain.ProductStatusApproved},
		{SKU: "SKU002", Name: "Холодильник LG", Category: "Бытовая техника", Unit: "шт", Price: decimal.NewFromInt(65000), Status: domain.ProductStatusApproved},
		{SKU: "SKU003", Name: "Кофе Lavazza", Category: "Продукты питания", Unit: "кг", Price: decimal.NewFromInt(1200), Status: domain.ProductStatusApproved},
	}
}

// DefaultZones зоны склада: приемка, хранение, отгрузка
func DefaultZones() []domain.Zone {
	return []domain.Zone{
		{ID: 1, Code: "A", Name: "Зона А - Приемка", Description: "Зона приемки товаров", Capacity: 1000, Occupied: 320},
		{ID: 2, Code: "B", Name: "Зона Б - Хранение", Description: "Основная зона хранения", Capacity: 5000, Occupied: 3840},
		{ID: 3, Code: "C", Name: "Зона В - Отгрузка", Description: "Зона подготовки к отгрузке", Capacity: 800, Occupied: 156},
	}
}

// Seed наполняет пустое хранилище значениями по умолчанию
func Seed(ctx context.Context, products repository.ProductRepository, zones repository.ZoneRepository) error {
	existing, err := products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(existing) == 0 {
		for _, p := range DefaultCatalog() {
			if err := products.Create(ctx, &p); err != nil {
				return fmt.Errorf("seed product %s: %w", p.SKU, err)
			}
		}
	}
	current, err := zones.List(ctx)
	if err != nil {
		return fmt.Errorf("list zones: %w", err)
	}
	if len(current) == 0 {
		if err := zones.Replace(ctx, DefaultZones()); err != nil {
			return fmt.Errorf("seed zones: %w", err)
		}
	}
	return nil
}
