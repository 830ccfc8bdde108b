package ports

import (
	"context"
	"time"
)

// Tipos de evento de usuario.
const (
	EventUserCreated = "user_created"
	EventUserUpdated = "user_updated"
	EventUserDeleted = "user_deleted"
)

// UserEvent cambio sobre una cuenta de usuario. Nunca incluye el hash del password.
type UserEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher puerto de salida para notificar cambios de usuarios.
// Un fallo al publicar no revierte la escritura; el caso de uso solo lo registra.
type EventPublisher interface {
	Publish(ctx context.Context, events ...UserEvent) error
}
