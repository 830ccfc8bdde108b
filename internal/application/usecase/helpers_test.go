package usecase_test

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-admin/internal/application/ports"
	"github.com/jhoicas/company-admin/internal/application/usecase"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/infrastructure/memory"
	"github.com/jhoicas/company-admin/pkg/logger"
)

// recorder guarda los eventos publicados.
type recorder struct {
	mu     sync.Mutex
	events []ports.UserEvent
	err    error
}

func (r *recorder) Publish(_ context.Context, events ...ports.UserEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return r.err
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newUserUC() (*usecase.UserUseCase, *memory.UserStore, *recorder) {
	store := memory.NewUserStore()
	rec := &recorder{}
	return usecase.NewUserUseCase(store, memory.NewTxRunner(store), rec, logger.Nop()), store, rec
}

// seedCompanies crea una empresa por nivel indicado, con ingresos crecientes.
func seedCompanies(t *testing.T, store *memory.CompanyStore, levels ...int) {
	t.Helper()
	for i, lvl := range levels {
		year := 1990 + i%5
		c := &entity.Company{
			Code:          "C" + strconv.Itoa(i),
			Name:          "Empresa " + strconv.Itoa(i),
			Level:         lvl,
			FoundedYear:   &year,
			AnnualRevenue: decimal.NewFromInt(int64(1000 * (i + 1))),
		}
		require.NoError(t, store.Create(context.Background(), c))
	}
}
