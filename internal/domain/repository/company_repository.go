package repository

import (
	"context"

	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/shopspring/decimal"
)

// CompanyTotals agregados globales sobre el conjunto filtrado.
type CompanyTotals struct {
	Count     int64
	Revenue   decimal.Decimal // suma exacta; nulos cuentan como 0
	Employees int64
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// Todas las consultas de lectura son read-only; los filtros contradictorios
// (min > max) devuelven resultados vacíos, nunca error.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)

	// List devuelve la página pedida ordenada por ingresos descendente.
	List(ctx context.Context, filter query.CompanyFilter, page query.Page) ([]*entity.Company, error)
	// Count total de empresas que cumplen el filtro, sin paginación.
	Count(ctx context.Context, filter query.CompanyFilter) (int64, error)

	DistinctLevels(ctx context.Context) ([]int, error)
	Locations(ctx context.Context) ([]entity.Location, error)

	Totals(ctx context.Context, filter query.CompanyFilter) (CompanyTotals, error)
	// CountByDimension agrupa por la dimensión excluyendo valores nulos. Sin orden garantizado.
	CountByDimension(ctx context.Context, dim query.Dimension, filter query.CompanyFilter) ([]query.GroupCount, error)
	// CountByLevel cardinalidad por nivel, ascendente por nivel.
	CountByLevel(ctx context.Context) ([]query.LevelCount, error)
	// CountByFoundedYear agrupa por año de fundación (sin nulos), con año > minYear si se indica.
	CountByFoundedYear(ctx context.Context, minYear *int) ([]query.YearCount, error)
}
