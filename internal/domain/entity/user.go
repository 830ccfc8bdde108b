package entity

import "time"

// Roles conocidos. El conjunto es abierto: se aceptan otros valores.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// Estados válidos para User.
const (
	StatusActive   = "Active"
	StatusDisabled = "Disabled"
	StatusPending  = "Pending"
)

// User representa una cuenta administrada desde el panel.
type User struct {
	ID           int64
	Name         *string
	Email        string
	Role         string
	Status       string
	PasswordHash string // bcrypt; vacío = cuenta sin credencial utilizable
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidStatus informa si s es uno de los estados admitidos.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusDisabled, StatusPending:
		return true
	}
	return false
}

// DisplayName devuelve el nombre o el email si no tiene nombre.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
