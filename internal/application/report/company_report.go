// Package report genera el reporte PDF del listado de empresas filtrado.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/application/ports"
	"github.com/jhoicas/company-admin/internal/application/usecase"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
	"github.com/jhoicas/company-admin/pkg/logger"
)

// MaxRows filas máximas que se incluyen en el PDF; el total impreso sigue siendo el real.
const MaxRows = 500

// CompanyReportUseCase arma el reporte con las empresas que cumplen el filtro,
// en el mismo orden que el listado (ingresos descendente).
type CompanyReportUseCase struct {
	repo      repository.CompanyRepository
	generator ports.CompanyReportGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewCompanyReportUseCase construye el caso de uso inyectando el generador de PDF.
func NewCompanyReportUseCase(repo repository.CompanyRepository, generator ports.CompanyReportGenerator, log *logger.Logger) *CompanyReportUseCase {
	return &CompanyReportUseCase{repo: repo, generator: generator, log: log.Component("report"), now: time.Now}
}

// Generate devuelve los bytes del PDF y el nombre de archivo sugerido.
// Los errores del almacén se propagan: sin datos no hay reporte.
func (uc *CompanyReportUseCase) Generate(ctx context.Context, f query.CompanyFilter, requestedBy string) ([]byte, string, error) {
	rep := ports.CompanyReport{
		Title:        "Reporte de empresas",
		Filters:      DescribeFilter(f),
		Companies:    []dto.CompanyResponse{},
		TotalRevenue: "0",
		GeneratedBy:  requestedBy,
	}

	if !f.Contradictory() {
		totals, err := uc.repo.Totals(ctx, f)
		if err != nil {
			return nil, "", fmt.Errorf("reporte: totales: %w", err)
		}
		rep.Total = totals.Count
		rep.TotalRevenue = totals.Revenue.String()

		for page := 1; len(rep.Companies) < MaxRows && int64(len(rep.Companies)) < rep.Total; page++ {
			list, err := uc.repo.List(ctx, f, query.Page{Page: page, PageSize: query.MaxPageSize})
			if err != nil {
				return nil, "", fmt.Errorf("reporte: página %d: %w", page, err)
			}
			if len(list) == 0 {
				break
			}
			for _, c := range list {
				if len(rep.Companies) == MaxRows {
					break
				}
				rep.Companies = append(rep.Companies, *usecase.ToCompanyResponse(c))
			}
		}
	}

	pdf, err := uc.generator.GenerateCompanyReport(rep)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	uc.log.Info().Int("rows", len(rep.Companies)).Int64("total", rep.Total).Msg("reporte de empresas generado")

	filename := fmt.Sprintf("empresas-%s.pdf", uc.now().Format("20060102-1504"))
	return pdf, filename, nil
}

// DescribeFilter devuelve una línea legible por cada criterio aplicado.
func DescribeFilter(f query.CompanyFilter) []string {
	var out []string
	if s := strings.TrimSpace(f.Search); s != "" {
		out = append(out, fmt.Sprintf("Nombre contiene %q", s))
	}
	if len(f.Levels) > 0 {
		levels := make([]string, 0, len(f.Levels))
		for _, l := range f.Levels {
			levels = append(levels, strconv.Itoa(l))
		}
		out = append(out, "Niveles: "+strings.Join(levels, ", "))
	}
	if len(f.Countries) > 0 {
		out = append(out, "Países: "+strings.Join(f.Countries, ", "))
	}
	if len(f.Cities) > 0 {
		out = append(out, "Ciudades: "+strings.Join(f.Cities, ", "))
	}
	if f.FoundedYear.IsSet() {
		out = append(out, "Año de fundación: "+describeInt(f.FoundedYear))
	}
	if f.AnnualRevenue.IsSet() {
		lo, hi := "-", "-"
		if f.AnnualRevenue.Min != nil {
			lo = f.AnnualRevenue.Min.String()
		}
		if f.AnnualRevenue.Max != nil {
			hi = f.AnnualRevenue.Max.String()
		}
		out = append(out, fmt.Sprintf("Ingresos anuales: %s a %s", lo, hi))
	}
	if f.Employees.IsSet() {
		out = append(out, "Empleados: "+describeInt(f.Employees))
	}
	return out
}

func describeInt(r query.IntRange) string {
	lo, hi := "-", "-"
	if r.Min != nil {
		lo = strconv.FormatInt(*r.Min, 10)
	}
	if r.Max != nil {
		hi = strconv.FormatInt(*r.Max, 10)
	}
	return lo + " a " + hi
}
