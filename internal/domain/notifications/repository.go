package notifications

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) error
	// ListByUser devuelve las notificaciones del usuario, la más nueva
	// primero.
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
	// MarkRead marca como leída solo si pertenece al usuario.
	MarkRead(ctx context.Context, notificationID, userID string) error
}
