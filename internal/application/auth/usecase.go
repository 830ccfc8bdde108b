package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/application/usecase"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// userCreator es el subconjunto de UserUseCase que necesita el registro.
type userCreator interface {
	Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error)
}

// userFinder busca la cuenta con su hash para el login.
type userFinder interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	users  userCreator
	finder userFinder
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users userCreator, finder userFinder, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, finder: finder, jwtCfg: jwtCfg}
}

// Register crea una cuenta con rol User y estado Active.
// Devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if len(in.Password) < usecase.MinPasswordLength {
		return nil, fmt.Errorf("password de menos de %d caracteres: %w", usecase.MinPasswordLength, domain.ErrInvalidInput)
	}
	return uc.users.Create(ctx, dto.CreateUserRequest{
		Name:     in.Name,
		Email:    in.Email,
		Role:     entity.RoleUser,
		Status:   entity.StatusActive,
		Password: in.Password,
	})
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido, cuenta sin credencial o password incorrecto devuelven
// domain.ErrUnauthorized; una cuenta deshabilitada devuelve domain.ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.finder.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status == entity.StatusDisabled {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}
