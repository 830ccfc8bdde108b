package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP para el recurso User.
type UserHandler struct {
	uc              *usecase.UserUseCase
	defaultPageSize int
}

// NewUserHandler construye el handler inyectando el caso de uso.
func NewUserHandler(uc *usecase.UserUseCase, defaultPageSize int) *UserHandler {
	return &UserHandler{uc: uc, defaultPageSize: defaultPageSize}
}

// List godoc
// @Summary      Listar usuarios
// @Description  Más recientes primero. search busca en nombre o email.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search     query  string  false  "Subcadena de nombre o email"
// @Param        roles      query  string  false  "Roles, ej: Admin,User"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        page_size  query  int     false  "Tamaño de página"  default(10)
// @Success      200  {object}  dto.UserListResponse
// @Failure      503  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var p dto.UserQueryParams
	_ = c.QueryParser(&p)
	out := h.uc.List(c.Context(), p.ToFilter(), p.ToPage(h.defaultPageSize))
	return c.Status(readStatus(out.Success)).JSON(out)
}

// Roles godoc
// @Summary      Roles distintos
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RolesResponse
// @Router       /api/users/roles [get]
func (h *UserHandler) Roles(c *fiber.Ctx) error {
	out := h.uc.Roles(c.Context())
	return c.Status(readStatus(out.Success)).JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return readFailure(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserMutationResponse
// @Failure      400   {object}  dto.MutationResponse
// @Failure      409   {object}  dto.MutationResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MutationResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeFailure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserMutationResponse{
		MutationResponse: dto.MutationResponse{Success: true},
		User:             out,
	})
}

// Update godoc
// @Summary      Actualizar usuario (parcial)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.UserMutationResponse
// @Failure      404   {object}  dto.MutationResponse
// @Failure      409   {object}  dto.MutationResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MutationResponse{Error: "id debe ser un entero positivo"})
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MutationResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeFailure(c, err)
	}
	return c.JSON(dto.UserMutationResponse{
		MutationResponse: dto.MutationResponse{Success: true},
		User:             out,
	})
}

// Delete godoc
// @Summary      Borrar usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.MutationResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MutationResponse{Error: "id debe ser un entero positivo"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeFailure(c, err)
	}
	return c.JSON(dto.MutationResponse{Success: true})
}

// BulkDelete godoc
// @Summary      Borrado masivo de usuarios
// @Description  Los IDs inexistentes se omiten sin error.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BulkDeleteRequest  true  "IDs a borrar"
// @Success      200   {object}  dto.BulkDeleteResponse
// @Router       /api/users/bulk-delete [post]
func (h *UserHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MutationResponse{Error: "cuerpo inválido"})
	}
	n, err := h.uc.DeleteMany(c.Context(), in.IDs)
	if err != nil {
		return writeFailure(c, err)
	}
	return c.JSON(dto.BulkDeleteResponse{
		MutationResponse: dto.MutationResponse{Success: true},
		Deleted:          n,
	})
}
