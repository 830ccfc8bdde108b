package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
	"github.com/jhoicas/company-admin/pkg/logger"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
//
// Las lecturas no propagan errores del almacén: registran el fallo y devuelven
// una respuesta vacía con Success=false.
type CompanyUseCase struct {
	repo repository.CompanyRepository
	log  *logger.Logger
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, log: log.Component("companies")}
}

// List devuelve la página pedida y el total filtrado.
func (uc *CompanyUseCase) List(ctx context.Context, f query.CompanyFilter, p query.Page) *dto.CompanyListResponse {
	p = p.Normalize()
	resp := &dto.CompanyListResponse{
		Items:        []dto.CompanyResponse{},
		PageResponse: dto.PageResponse{Page: p.Page, PageSize: p.PageSize},
	}
	if f.Contradictory() {
		resp.Success = true
		return resp
	}

	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		uc.log.Warn().Err(err).Msg("listar empresas: count")
		return resp
	}
	list, err := uc.repo.List(ctx, f, p)
	if err != nil {
		uc.log.Warn().Err(err).Msg("listar empresas: página")
		return resp
	}
	for _, c := range list {
		resp.Items = append(resp.Items, *ToCompanyResponse(c))
	}
	resp.Total = total
	resp.Success = true
	return resp
}

// Levels devuelve los niveles distintos en orden ascendente.
func (uc *CompanyUseCase) Levels(ctx context.Context) *dto.LevelsResponse {
	levels, err := uc.repo.DistinctLevels(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("niveles distintos")
		return &dto.LevelsResponse{Levels: []int{}}
	}
	return &dto.LevelsResponse{Success: true, Levels: levels}
}

// FilterOptions valores para los desplegables: niveles, países, ciudades y pares país/ciudad.
func (uc *CompanyUseCase) FilterOptions(ctx context.Context) *dto.FilterOptionsResponse {
	empty := &dto.FilterOptionsResponse{
		Levels:    []int{},
		Countries: []string{},
		Cities:    []string{},
		Locations: []dto.LocationDTO{},
	}
	levels, err := uc.repo.DistinctLevels(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("opciones de filtro: niveles")
		return empty
	}
	countries, err := uc.distinctKeys(ctx, query.DimensionCountry)
	if err != nil {
		uc.log.Warn().Err(err).Msg("opciones de filtro: países")
		return empty
	}
	cities, err := uc.distinctKeys(ctx, query.DimensionCity)
	if err != nil {
		uc.log.Warn().Err(err).Msg("opciones de filtro: ciudades")
		return empty
	}
	locations, err := uc.repo.Locations(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("opciones de filtro: ubicaciones")
		return empty
	}

	out := &dto.FilterOptionsResponse{
		Success:   true,
		Levels:    levels,
		Countries: countries,
		Cities:    cities,
		Locations: make([]dto.LocationDTO, 0, len(locations)),
	}
	for _, l := range locations {
		out.Locations = append(out.Locations, dto.LocationDTO{Country: l.Country, City: l.City})
	}
	return out
}

func (uc *CompanyUseCase) distinctKeys(ctx context.Context, dim query.Dimension) ([]string, error) {
	groups, err := uc.repo.CountByDimension(ctx, dim, query.CompanyFilter{})
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetByID obtiene una empresa por ID. Devuelve (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el código ya existe
// y domain.ErrInvalidInput si ingresos o empleados son negativos.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	company := &entity.Company{
		Code:          strings.TrimSpace(in.Code),
		Name:          strings.TrimSpace(in.Name),
		Level:         in.Level,
		Country:       trimOptional(in.Country),
		City:          trimOptional(in.City),
		FoundedYear:   in.FoundedYear,
		AnnualRevenue: in.AnnualRevenue,
		Employees:     in.Employees,
	}
	if !company.Validate() {
		return nil, fmt.Errorf("crear empresa: %w", domain.ErrInvalidInput)
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("company_id", company.ID).Str("code", company.Code).Msg("empresa creada")
	return ToCompanyResponse(company), nil
}

// trimOptional recorta el valor y trata la cadena vacía como ausente.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
