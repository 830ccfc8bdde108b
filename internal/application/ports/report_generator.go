package ports

import "github.com/jhoicas/company-admin/internal/application/dto"

// CompanyReport datos de entrada del PDF de empresas.
type CompanyReport struct {
	Title        string
	Filters      []string // descripción legible de los filtros aplicados
	Companies    []dto.CompanyResponse
	Total        int64  // total filtrado; puede superar len(Companies)
	TotalRevenue string // suma exacta de ingresos del conjunto filtrado
	GeneratedBy  string
}

// CompanyReportGenerator genera el PDF a partir del reporte.
type CompanyReportGenerator interface {
	GenerateCompanyReport(report CompanyReport) ([]byte, error)
}
