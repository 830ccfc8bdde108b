package memory

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email, role string) *entity.User {
	return &entity.User{Email: email, Role: role, Status: entity.StatusActive}
}

func TestUserStore_CreateEmailDuplicado(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	require.NoError(t, s.Create(ctx, newUser("a@x.co", entity.RoleUser)))

	err := s.Create(ctx, newUser("a@x.co", entity.RoleAdmin))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	n, err := s.Count(ctx, query.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserStore_ListMasRecientesPrimero(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	for _, e := range []string{"a@x.co", "b@x.co", "c@x.co"} {
		require.NoError(t, s.Create(ctx, newUser(e, entity.RoleUser)))
	}

	list, err := s.List(ctx, query.UserFilter{}, query.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c@x.co", list[0].Email)
	assert.Equal(t, "a@x.co", list[2].Email)
}

func TestUserStore_UpdateYDelete(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	a, b := newUser("a@x.co", entity.RoleUser), newUser("b@x.co", entity.RoleUser)
	require.NoError(t, s.Create(ctx, a))
	require.NoError(t, s.Create(ctx, b))

	b.Email = "a@x.co"
	assert.ErrorIs(t, s.Update(ctx, b), domain.ErrEmailAlreadyExists)

	a.Role = entity.RoleManager
	require.NoError(t, s.Update(ctx, a))
	got, err := s.GetByEmail(ctx, "a@x.co")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, got.Role)

	assert.ErrorIs(t, s.Update(ctx, &entity.User{ID: 99, Email: "z@x.co"}), domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 99), domain.ErrNotFound)
	require.NoError(t, s.Delete(ctx, a.ID))
}

func TestUserStore_DeleteManyIgnoraInexistentes(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	for _, e := range []string{"a@x.co", "b@x.co", "c@x.co"} {
		require.NoError(t, s.Create(ctx, newUser(e, entity.RoleUser)))
	}

	deleted, err := s.DeleteMany(ctx, []int64{1, 2, 999})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, deleted)

	n, err := s.Count(ctx, query.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserStore_DistinctRoles(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	require.NoError(t, s.Create(ctx, newUser("a@x.co", entity.RoleUser)))
	require.NoError(t, s.Create(ctx, newUser("b@x.co", entity.RoleAdmin)))
	require.NoError(t, s.Create(ctx, newUser("c@x.co", entity.RoleUser)))

	roles, err := s.DistinctRoles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin, entity.RoleUser}, roles)
}

func TestTxRunner_RunUsers(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	require.NoError(t, s.Create(ctx, newUser("a@x.co", entity.RoleUser)))

	err := NewTxRunner(s).RunUsers(ctx, func(users repository.UserRepository, load func(context.Context, int64) (*entity.User, error)) error {
		u, err := load(ctx, 1)
		require.NoError(t, err)
		u.Status = entity.StatusDisabled
		return users.Update(ctx, u)
	})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDisabled, got.Status)
}
