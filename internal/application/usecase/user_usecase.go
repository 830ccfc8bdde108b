package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/application/ports"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/jhoicas/company-admin/internal/domain/entity"
	"github.com/jhoicas/company-admin/internal/domain/query"
	"github.com/jhoicas/company-admin/internal/domain/repository"
	"github.com/jhoicas/company-admin/pkg/logger"
)

// MinPasswordLength longitud mínima de password al crear o registrar.
const MinPasswordLength = 6

// UserTxRunner ejecuta fn dentro de una transacción sobre usuarios. load bloquea
// la fila leída hasta el commit; si fn devuelve error se hace rollback.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(
		users repository.UserRepository,
		load func(ctx context.Context, id int64) (*entity.User, error),
	) error) error
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo   repository.UserRepository
	tx     UserTxRunner
	events ports.EventPublisher
	log    *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, tx UserTxRunner, events ports.EventPublisher, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx, events: events, log: log.Component("users")}
}

// List devuelve la página pedida (más recientes primero) y el total filtrado.
func (uc *UserUseCase) List(ctx context.Context, f query.UserFilter, p query.Page) *dto.UserListResponse {
	p = p.Normalize()
	resp := &dto.UserListResponse{
		Items:        []dto.UserResponse{},
		PageResponse: dto.PageResponse{Page: p.Page, PageSize: p.PageSize},
	}
	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		uc.log.Warn().Err(err).Msg("listar usuarios: count")
		return resp
	}
	list, err := uc.repo.List(ctx, f, p)
	if err != nil {
		uc.log.Warn().Err(err).Msg("listar usuarios: página")
		return resp
	}
	for _, u := range list {
		resp.Items = append(resp.Items, *ToUserResponse(u))
	}
	resp.Total = total
	resp.Success = true
	return resp
}

// Roles devuelve los roles distintos en orden ascendente.
func (uc *UserUseCase) Roles(ctx context.Context) *dto.RolesResponse {
	roles, err := uc.repo.DistinctRoles(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("roles distintos")
		return &dto.RolesResponse{Roles: []string{}}
	}
	return &dto.RolesResponse{Success: true, Roles: roles}
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Create crea un usuario. Devuelve domain.ErrEmailAlreadyExists si el email ya está en uso.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = entity.RoleUser
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.StatusActive
	}
	if !entity.ValidStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	user := &entity.User{
		Name:   trimOptional(in.Name),
		Email:  email,
		Role:   role,
		Status: status,
	}
	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("usuario creado")
	uc.publish(ctx, ports.EventUserCreated, user)
	return ToUserResponse(user), nil
}

// Update aplica los campos presentes en in. Lectura y escritura ocurren en la misma
// transacción. Devuelve domain.ErrNotFound si el usuario no existe.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var hash string
	if in.Password != nil {
		h, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var updated *entity.User
	err := uc.tx.RunUsers(ctx, func(users repository.UserRepository, load func(context.Context, int64) (*entity.User, error)) error {
		user, err := load(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			user.Name = trimOptional(in.Name)
		}
		if in.Email != nil {
			email, err := normalizeEmail(*in.Email)
			if err != nil {
				return err
			}
			user.Email = email
		}
		if in.Role != nil {
			role := strings.TrimSpace(*in.Role)
			if role == "" {
				return fmt.Errorf("rol vacío: %w", domain.ErrInvalidInput)
			}
			user.Role = role
		}
		if in.Status != nil {
			if !entity.ValidStatus(*in.Status) {
				return fmt.Errorf("estado %q: %w", *in.Status, domain.ErrInvalidInput)
			}
			user.Status = *in.Status
		}
		if hash != "" {
			user.PasswordHash = hash
		}
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.EventUserUpdated, updated)
	return ToUserResponse(updated), nil
}

// Delete borra un usuario. Devuelve domain.ErrNotFound si no existe.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.publish(ctx, ports.EventUserDeleted, &entity.User{ID: id})
	return nil
}

// DeleteMany borra los IDs existentes; los inexistentes se omiten sin error.
func (uc *UserUseCase) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	deleted, err := uc.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int("deleted", len(deleted)).Int("requested", len(ids)).Msg("borrado masivo de usuarios")
	if len(deleted) > 0 {
		events := make([]ports.UserEvent, 0, len(deleted))
		for _, id := range deleted {
			events = append(events, newUserEvent(ports.EventUserDeleted, &entity.User{ID: id}))
		}
		uc.send(ctx, events...)
	}
	return int64(len(deleted)), nil
}

// EnsureAdmin crea una cuenta Admin activa con email y password si no existe
// ningún usuario con ese email. Devuelve true si la creó.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return false, err
	}
	existing, err := uc.repo.GetByEmail(ctx, normalized)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.Create(ctx, dto.CreateUserRequest{
		Email:    normalized,
		Role:     entity.RoleAdmin,
		Status:   entity.StatusActive,
		Password: password,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// HashPassword valida la longitud mínima y devuelve el hash bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password de menos de %d caracteres: %w", MinPasswordLength, domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (uc *UserUseCase) publish(ctx context.Context, eventType string, u *entity.User) {
	uc.send(ctx, newUserEvent(eventType, u))
}

func (uc *UserUseCase) send(ctx context.Context, events ...ports.UserEvent) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, events...); err != nil {
		uc.log.Error().Err(err).Str("type", events[0].Type).Msg("no se pudo publicar el evento")
	}
}

func newUserEvent(eventType string, u *entity.User) ports.UserEvent {
	return ports.UserEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     u.ID,
		Email:      u.Email,
		Role:       u.Role,
		Status:     u.Status,
		OccurredAt: time.Now().UTC(),
	}
}

// normalizeEmail recorta, pasa a minúsculas y valida el formato.
func normalizeEmail(s string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(s))
	if email == "" {
		return "", fmt.Errorf("email vacío: %w", domain.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("email %q: %w", s, domain.ErrInvalidInput)
	}
	return email, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
