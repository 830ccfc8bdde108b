package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/company-admin/internal/application/analytics"
	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/domain/query"
)

// DashboardHandler maneja los endpoints del dashboard y de los gráficos.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas globales
// @Description  Total de empresas, ingresos (float y exacto), empleados y países distintos.
// @Description  Admite los filtros del listado de empresas.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      503  {object}  dto.DashboardStatsResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out := h.uc.Stats(c.Context(), companyParams(c).ToFilter())
	return c.Status(readStatus(out.Success)).JSON(out)
}

// Levels godoc
// @Summary      Distribución por nivel
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LevelDistributionResponse
// @Router       /api/dashboard/levels [get]
func (h *DashboardHandler) Levels(c *fiber.Ctx) error {
	out := h.uc.LevelDistribution(c.Context())
	return c.Status(readStatus(out.Success)).JSON(out)
}

// Growth godoc
// @Summary      Crecimiento acumulado por año de fundación
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        min_year  query  int  false  "Solo años mayores a este"
// @Success      200  {object}  dto.GrowthTrendResponse
// @Router       /api/dashboard/growth [get]
func (h *DashboardHandler) Growth(c *fiber.Ctx) error {
	var minYear *int
	if y, err := strconv.Atoi(c.Query("min_year")); err == nil {
		minYear = &y
	}
	out := h.uc.GrowthTrend(c.Context(), minYear)
	return c.Status(readStatus(out.Success)).JSON(out)
}

// Chart godoc
// @Summary      Datos de gráfico por dimensión
// @Description  Top 20 grupos por cantidad descendente; admite los filtros del listado.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        dimension  query  string  true  "level | country | city"
// @Success      200  {object}  dto.ChartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/chart [get]
func (h *DashboardHandler) Chart(c *fiber.Ctx) error {
	dim, err := query.ParseDimension(c.Query("dimension"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DIMENSION", Message: err.Error()})
	}
	out := h.uc.ChartData(c.Context(), dim, companyParams(c).ToFilter())
	return c.Status(readStatus(out.Success)).JSON(out)
}
