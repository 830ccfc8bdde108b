// Package analytics contiene los casos de uso del dashboard: resumen de
// estadísticas, distribución por nivel, crecimiento acumulado y gráficos.
package analytics

import (
	"context"

	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
	"github.com/jhoicas/company-admin/pkg/logger"
)

// DashboardUseCase agrega los datos de empresas para el dashboard y los gráficos.
//
// Fuente de datos: CompanyRepository (consultas read-only). Un fallo del almacén
// se registra y produce una respuesta vacía con Success=false.
type DashboardUseCase struct {
	companyRepo repository.CompanyRepository
	topN        int
	log         *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. topN <= 0 usa query.DefaultTopN.
func NewDashboardUseCase(companyRepo repository.CompanyRepository, topN int, log *logger.Logger) *DashboardUseCase {
	if topN <= 0 {
		topN = query.DefaultTopN
	}
	return &DashboardUseCase{companyRepo: companyRepo, topN: topN, log: log.Component("dashboard")}
}

// Stats calcula los totales sobre el conjunto filtrado (vacío = todas las empresas).
//
// Dos consultas en paralelo:
//  1. Totals                      → empresas, ingresos, empleados
//  2. CountByDimension(country)   → países distintos (número de grupos)
func (uc *DashboardUseCase) Stats(ctx context.Context, f query.CompanyFilter) *dto.DashboardStatsResponse {
	resp := &dto.DashboardStatsResponse{TotalRevenueExact: "0"}
	if f.Contradictory() {
		resp.Success = true
		return resp
	}

	type totalsResult struct {
		totals repository.CompanyTotals
		err    error
	}
	type countriesResult struct {
		groups []query.GroupCount
		err    error
	}

	totalsCh := make(chan totalsResult, 1)
	countriesCh := make(chan countriesResult, 1)

	go func() {
		t, err := uc.companyRepo.Totals(ctx, f)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		g, err := uc.companyRepo.CountByDimension(ctx, query.DimensionCountry, f)
		countriesCh <- countriesResult{g, err}
	}()

	totals := <-totalsCh
	countries := <-countriesCh

	if totals.err != nil {
		uc.log.Warn().Err(totals.err).Msg("estadísticas: totales")
		return resp
	}
	if countries.err != nil {
		uc.log.Warn().Err(countries.err).Msg("estadísticas: países")
		return resp
	}

	// La suma exacta solo se reduce a float64 para mostrarla.
	revenue, _ := totals.totals.Revenue.Float64()
	return &dto.DashboardStatsResponse{
		Success:           true,
		TotalCompanies:    totals.totals.Count,
		TotalRevenue:      revenue,
		TotalRevenueExact: totals.totals.Revenue.String(),
		TotalEmployees:    totals.totals.Employees,
		UniqueCountries:   len(countries.groups),
	}
}

// LevelDistribution empresas por nivel, ascendente por nivel.
func (uc *DashboardUseCase) LevelDistribution(ctx context.Context) *dto.LevelDistributionResponse {
	levels, err := uc.companyRepo.CountByLevel(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("distribución por nivel")
		return &dto.LevelDistributionResponse{Items: []dto.LevelCountDTO{}}
	}
	items := make([]dto.LevelCountDTO, 0, len(levels))
	for _, l := range levels {
		items = append(items, dto.LevelCountDTO{Level: l.Level, Count: l.Count})
	}
	return &dto.LevelDistributionResponse{Success: true, Items: items}
}

// GrowthTrend serie acumulada de empresas por año de fundación. Con minYear solo
// entran los años estrictamente mayores.
func (uc *DashboardUseCase) GrowthTrend(ctx context.Context, minYear *int) *dto.GrowthTrendResponse {
	years, err := uc.companyRepo.CountByFoundedYear(ctx, minYear)
	if err != nil {
		uc.log.Warn().Err(err).Msg("crecimiento por año")
		return &dto.GrowthTrendResponse{Items: []dto.TrendPointDTO{}}
	}
	points := query.Cumulative(years)
	items := make([]dto.TrendPointDTO, 0, len(points))
	for _, p := range points {
		items = append(items, dto.TrendPointDTO{Year: p.Year, Count: p.Count})
	}
	return &dto.GrowthTrendResponse{Success: true, Items: items}
}

// ChartData agrupa las empresas filtradas por la dimensión y devuelve los topN
// grupos por cantidad descendente.
func (uc *DashboardUseCase) ChartData(ctx context.Context, dim query.Dimension, f query.CompanyFilter) *dto.ChartResponse {
	resp := &dto.ChartResponse{Dimension: string(dim), Labels: []string{}, Data: []int64{}}
	if f.Contradictory() {
		resp.Success = true
		return resp
	}
	groups, err := uc.companyRepo.CountByDimension(ctx, dim, f)
	if err != nil {
		uc.log.Warn().Err(err).Str("dimension", string(dim)).Msg("datos del gráfico")
		return resp
	}
	for _, g := range query.TopGroups(groups, uc.topN) {
		resp.Labels = append(resp.Labels, g.Key)
		resp.Data = append(resp.Data, g.Count)
	}
	resp.Success = true
	return resp
}
