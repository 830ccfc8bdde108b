package dto

import (
	"time"

	"github.com/jhoicas/company-admin/internal/domain/query"
)

// UserQueryParams filtros de usuarios: search sobre nombre o email, roles=Admin,User.
type UserQueryParams struct {
	Search string `query:"search"`
	Roles  string `query:"roles"`
	PageParams
}

// ToFilter construye el filtro de usuarios.
func (p UserQueryParams) ToFilter() query.UserFilter {
	return query.UserFilter{Search: p.Search, Roles: splitList(p.Roles)}
}

// CreateUserRequest entrada para crear un usuario desde el panel.
// Sin password la cuenta queda sin credencial utilizable.
type CreateUserRequest struct {
	Name     *string `json:"name"`
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"required"`
	Status   string  `json:"status" validate:"omitempty,oneof=Active Disabled Pending"`
	Password string  `json:"password,omitempty"`
}

// UpdateUserRequest actualización parcial; solo se aplican los campos presentes.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Password *string `json:"password,omitempty"`
}

// BulkDeleteRequest entrada de POST /api/users/bulk-delete.
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// BulkDeleteResponse IDs inexistentes se omiten; Deleted cuenta solo los borrados.
type BulkDeleteResponse struct {
	MutationResponse
	Deleted int64 `json:"deleted"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse página de usuarios más el total filtrado.
type UserListResponse struct {
	Success bool           `json:"success"`
	Items   []UserResponse `json:"items"`
	PageResponse
}

// UserMutationResponse resultado de crear o actualizar un usuario.
type UserMutationResponse struct {
	MutationResponse
	User *UserResponse `json:"user,omitempty"`
}

// RolesResponse roles distintos, ascendentes.
type RolesResponse struct {
	Success bool     `json:"success"`
	Roles   []string `json:"roles"`
}

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     *string `json:"name"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
