package repository

import (
	"context"

	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create asigna ID y devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update devuelve domain.ErrNotFound si el usuario no existe.
	Update(ctx context.Context, user *entity.User) error
	// Delete devuelve domain.ErrNotFound si el usuario no existe.
	Delete(ctx context.Context, id int64) error
	// DeleteMany borra los IDs existentes, ignora los demás y devuelve los borrados.
	DeleteMany(ctx context.Context, ids []int64) ([]int64, error)

	// List devuelve la página pedida, los más recientes primero.
	List(ctx context.Context, filter query.UserFilter, page query.Page) ([]*entity.User, error)
	Count(ctx context.Context, filter query.UserFilter) (int64, error)
	DistinctRoles(ctx context.Context) ([]string, error)
}
