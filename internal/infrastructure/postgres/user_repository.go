package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, role, status, password_hash, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const stmt = `
		INSERT INTO users (name, email, role, status, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, stmt, u.Name, u.Email, u.Role, u.Status, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapError("insert user", err, domain.ErrEmailAlreadyExists)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (usar con tx).
func (r *UserRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, "lock user", `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
}

func (r *UserRepo) getOne(ctx context.Context, op, sql string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err, nil)
	}
	return u, nil
}

// Update actualiza los campos editables de un usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	const stmt = `
		UPDATE users SET name = $2, email = $3, role = $4, status = $5, password_hash = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, stmt, u.ID, u.Name, u.Email, u.Role, u.Status, u.PasswordHash).Scan(&u.UpdatedAt)
	if err != nil {
		return mapError("update user", err, domain.ErrEmailAlreadyExists)
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError("delete user", err, nil)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteMany elimina los usuarios indicados; los IDs inexistentes se ignoran.
func (r *UserRepo) DeleteMany(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	rows, err := r.q.Query(ctx, `DELETE FROM users WHERE id = ANY($1) RETURNING id`, ids)
	if err != nil {
		return nil, mapError("delete users", err, nil)
	}
	deleted, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, mapError("delete users", err, nil)
	}
	return deleted, nil
}

// List lista usuarios filtrados, más recientes primero.
func (r *UserRepo) List(ctx context.Context, f query.UserFilter, page query.Page) ([]*entity.User, error) {
	w := userWhere(f)
	sql := `SELECT ` + userColumns + ` FROM users` + w.SQL() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + w.arg(page.Limit()) + ` OFFSET ` + w.arg(page.Offset())
	rows, err := r.q.Query(ctx, sql, w.Args()...)
	if err != nil {
		return nil, mapError("list users", err, nil)
	}
	defer rows.Close()

	list := make([]*entity.User, 0, page.Limit())
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list users", err, nil)
	}
	return list, nil
}

// Count total de usuarios que cumplen el filtro.
func (r *UserRepo) Count(ctx context.Context, f query.UserFilter) (int64, error) {
	w := userWhere(f)
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`+w.SQL(), w.Args()...).Scan(&n); err != nil {
		return 0, mapError("count users", err, nil)
	}
	return n, nil
}

// DistinctRoles roles existentes, ascendente.
func (r *UserRepo) DistinctRoles(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT role FROM users ORDER BY role ASC`)
	if err != nil {
		return nil, mapError("distinct roles", err, nil)
	}
	roles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapError("distinct roles", err, nil)
	}
	return roles, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
