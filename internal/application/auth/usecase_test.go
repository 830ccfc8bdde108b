package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-admin/internal/application/auth"
	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/application/usecase"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/infrastructure/events"
	"github.com/jhoicas/company-admin/internal/infrastructure/memory"
	"github.com/jhoicas/company-admin/pkg/jwt"
	"github.com/jhoicas/company-admin/pkg/logger"
)

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *usecase.UserUseCase) {
	store := memory.NewUserStore()
	users := usecase.NewUserUseCase(store, memory.NewTxRunner(store), events.Noop{}, logger.Nop())
	return auth.NewAuthUseCase(users, store, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}), users
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	created, err := uc.Register(ctx, dto.RegisterRequest{Email: "Ana@Acme.co", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, created.Role)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: " ANA@acme.co", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.User.ID)

	id, role, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
	assert.Equal(t, entity.RoleUser, role)
}

func TestRegister_Errores(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@acme.co", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "a@acme.co", Password: "secreto1"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "a@acme.co", Password: "secreto2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Rechazos(t *testing.T) {
	uc, users := newAuth()
	ctx := context.Background()

	_, err := users.Create(ctx, dto.CreateUserRequest{Email: "sin-pass@acme.co"})
	require.NoError(t, err)
	disabled, err := users.Create(ctx, dto.CreateUserRequest{Email: "off@acme.co", Password: "secreto1"})
	require.NoError(t, err)
	_, err = users.Update(ctx, disabled.ID, dto.UpdateUserRequest{Status: strPtr(entity.StatusDisabled)})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   dto.LoginRequest
		want error
	}{
		{"email desconocido", dto.LoginRequest{Email: "nadie@acme.co", Password: "secreto1"}, domain.ErrUnauthorized},
		{"cuenta sin password", dto.LoginRequest{Email: "sin-pass@acme.co", Password: ""}, domain.ErrUnauthorized},
		{"password incorrecto", dto.LoginRequest{Email: "off@acme.co", Password: "otro"}, domain.ErrUnauthorized},
		{"cuenta deshabilitada", dto.LoginRequest{Email: "off@acme.co", Password: "secreto1"}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Login(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func strPtr(s string) *string { return &s }
