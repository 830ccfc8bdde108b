package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/company-admin/internal/domain/query"
)

// CompanyQueryParams filtros de empresas tal como llegan en la query string.
// Las listas van separadas por comas: levels=1,2&countries=CO,MX.
type CompanyQueryParams struct {
	Search           string `query:"search"`
	Levels           string `query:"levels"`
	Countries        string `query:"countries"`
	Cities           string `query:"cities"`
	FoundedYearMin   string `query:"founded_year_min"`
	FoundedYearMax   string `query:"founded_year_max"`
	AnnualRevenueMin string `query:"annual_revenue_min"`
	AnnualRevenueMax string `query:"annual_revenue_max"`
	EmployeesMin     string `query:"employees_min"`
	EmployeesMax     string `query:"employees_max"`
	PageParams
}

// ToFilter construye el filtro ignorando los valores mal formados.
func (p CompanyQueryParams) ToFilter() query.CompanyFilter {
	return query.CompanyFilter{
		Search:    p.Search,
		Levels:    splitInts(p.Levels),
		Countries: splitList(p.Countries),
		Cities:    splitList(p.Cities),
		FoundedYear: query.IntRange{
			Min: parseIntPtr(p.FoundedYearMin),
			Max: parseIntPtr(p.FoundedYearMax),
		},
		AnnualRevenue: query.DecimalRange{
			Min: parseDecimalPtr(p.AnnualRevenueMin),
			Max: parseDecimalPtr(p.AnnualRevenueMax),
		},
		Employees: query.IntRange{
			Min: parseIntPtr(p.EmployeesMin),
			Max: parseIntPtr(p.EmployeesMax),
		},
	}
}

// CreateCompanyRequest entrada para crear una empresa.
// annual_revenue acepta número o string ("125000000000000000000").
type CreateCompanyRequest struct {
	Code          string          `json:"code" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Level         int             `json:"level"`
	Country       *string         `json:"country"`
	City          *string         `json:"city"`
	FoundedYear   *int            `json:"founded_year"`
	AnnualRevenue decimal.Decimal `json:"annual_revenue"`
	Employees     *int64          `json:"employees"`
}

// CompanyResponse salida de una empresa. annual_revenue se serializa como string exacto.
type CompanyResponse struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Level         int             `json:"level"`
	Country       *string         `json:"country"`
	City          *string         `json:"city"`
	FoundedYear   *int            `json:"founded_year"`
	AnnualRevenue decimal.Decimal `json:"annual_revenue"`
	Employees     *int64          `json:"employees"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CompanyListResponse página de empresas más el total filtrado.
type CompanyListResponse struct {
	Success bool              `json:"success"`
	Items   []CompanyResponse `json:"items"`
	PageResponse
}

// CompanyMutationResponse resultado de crear una empresa.
type CompanyMutationResponse struct {
	MutationResponse
	Company *CompanyResponse `json:"company,omitempty"`
}

// LevelsResponse niveles distintos, ascendentes.
type LevelsResponse struct {
	Success bool  `json:"success"`
	Levels  []int `json:"levels"`
}

// LocationDTO par país/ciudad.
type LocationDTO struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// FilterOptionsResponse valores disponibles para los desplegables de filtros.
type FilterOptionsResponse struct {
	Success   bool          `json:"success"`
	Levels    []int         `json:"levels"`
	Countries []string      `json:"countries"`
	Cities    []string      `json:"cities"`
	Locations []LocationDTO `json:"locations"`
}
