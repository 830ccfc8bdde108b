package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/application/report"
	"github.com/jhoicas/company-admin/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc              *usecase.CompanyUseCase
	reportUC        *report.CompanyReportUseCase
	defaultPageSize int
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, reportUC *report.CompanyReportUseCase, defaultPageSize int) *CompanyHandler {
	return &CompanyHandler{uc: uc, reportUC: reportUC, defaultPageSize: defaultPageSize}
}

// companyParams lee los filtros de la query string. Los valores mal formados se ignoran.
func companyParams(c *fiber.Ctx) dto.CompanyQueryParams {
	var p dto.CompanyQueryParams
	_ = c.QueryParser(&p)
	return p
}

// List godoc
// @Summary      Listar empresas
// @Description  Ordenadas por ingresos anuales descendente. Listas separadas por comas.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        search              query  string  false  "Subcadena del nombre"
// @Param        levels              query  string  false  "Niveles, ej: 1,2"
// @Param        countries           query  string  false  "Países"
// @Param        cities              query  string  false  "Ciudades"
// @Param        founded_year_min    query  int     false  "Año de fundación mínimo"
// @Param        founded_year_max    query  int     false  "Año de fundación máximo"
// @Param        annual_revenue_min  query  string  false  "Ingresos mínimos"
// @Param        annual_revenue_max  query  string  false  "Ingresos máximos"
// @Param        employees_min       query  int     false  "Empleados mínimos"
// @Param        employees_max       query  int     false  "Empleados máximos"
// @Param        page                query  int     false  "Página"  default(1)
// @Param        page_size           query  int     false  "Tamaño de página"  default(10)
// @Success      200  {object}  dto.CompanyListResponse
// @Failure      503  {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	p := companyParams(c)
	out := h.uc.List(c.Context(), p.ToFilter(), p.ToPage(h.defaultPageSize))
	return c.Status(readStatus(out.Success)).JSON(out)
}

// Levels godoc
// @Summary      Niveles distintos
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LevelsResponse
// @Router       /api/companies/levels [get]
func (h *CompanyHandler) Levels(c *fiber.Ctx) error {
	out := h.uc.Levels(c.Context())
	return c.Status(readStatus(out.Success)).JSON(out)
}

// FilterOptions godoc
// @Summary      Opciones de los filtros
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.FilterOptionsResponse
// @Router       /api/companies/filter-options [get]
func (h *CompanyHandler) FilterOptions(c *fiber.Ctx) error {
	out := h.uc.FilterOptions(c.Context())
	return c.Status(readStatus(out.Success)).JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de empresas
// @Description  Mismos filtros que el listado; incluye hasta 500 filas.
// @Tags         companies
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/companies/report.pdf [get]
func (h *CompanyHandler) Report(c *fiber.Ctx) error {
	by := "usuario #" + strconv.FormatInt(GetUserID(c), 10)
	pdf, filename, err := h.reportUC.Generate(c.Context(), companyParams(c).ToFilter(), by)
	if err != nil {
		status := writeStatus(err)
		if status < fiber.StatusInternalServerError {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: "REPORT_FAILED", Message: "no se pudo generar el reporte"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return readFailure(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyMutationResponse
// @Failure      400   {object}  dto.MutationResponse
// @Failure      409   {object}  dto.MutationResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MutationResponse{Error: "cuerpo inválido"})
	}
	if in.Code == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MutationResponse{Error: "code y name son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CompanyMutationResponse{
		MutationResponse: dto.MutationResponse{Success: true},
		Company:          out,
	})
}
