package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/company-admin/internal/application/usecase"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/repository"
)

var _ usecase.UserTxRunner = (*TxRunner)(nil)

// TxRunner serializa los callbacks sobre el UserStore. No hay rollback:
// el callback solo escribe al final, después de validar.
type TxRunner struct {
	mu    sync.Mutex
	users *UserStore
}

// NewTxRunner construye el runner sobre el almacén dado.
func NewTxRunner(users *UserStore) *TxRunner {
	return &TxRunner{users: users}
}

func (r *TxRunner) RunUsers(ctx context.Context, fn func(
	users repository.UserRepository,
	load func(ctx context.Context, id int64) (*entity.User, error),
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.users, r.users.GetByID)
}
