package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/company-admin/internal/application/usecase"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/repository"
)

var _ usecase.UserTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunUsers inicia una transacción, ejecuta fn con un repo de usuarios atado a la tx y hace Commit o Rollback.
// load bloquea la fila (SELECT ... FOR UPDATE) para que la actualización parcial no pise escrituras concurrentes.
func (r *TxRunner) RunUsers(ctx context.Context, fn func(
	users repository.UserRepository,
	load func(ctx context.Context, id int64) (*entity.User, error),
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError("begin transaction", err, nil)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	users := NewUserRepository(tx)
	if err := fn(users, users.GetByIDForUpdate); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", mapError("commit", err, nil))
	}
	return nil
}
