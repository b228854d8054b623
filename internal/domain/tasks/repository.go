package tasks

import (
	"context"

	"pet-care-tracker/internal/domain/tasklogs"
)

type Filter struct {
	PetID    string
	Date     string // YYYY-MM-DD, matchea solo el día calendario
	Priority string
	Type     string
}

// Repository recibe el userID en cada operación mutante y mete el
// predicado de acceso en la misma sentencia: sin check-then-act.
type Repository interface {
	Create(ctx context.Context, t Task) error

	// GetAccessible resuelve la task solo si el usuario es owner o tiene
	// rol compartido sobre su mascota.
	GetAccessible(ctx context.Context, taskID, userID string) (TaskWithPet, error)

	// List devuelve tasks de mascotas accesibles, scheduledTime asc.
	List(ctx context.Context, userID string, f Filter) ([]TaskWithPet, error)

	// Update exige owner/caregiver; no toca CompletedAt.
	Update(ctx context.Context, t Task, userID string) error

	// Complete marca la task y crea el entry en una sola transacción.
	// entry.TaskID/PetID los completa el adapter desde la fila de la task.
	// Errores: ErrNotFound, ErrAlreadyCompleted.
	Complete(ctx context.Context, taskID, userID string, entry tasklogs.Entry) error

	// Delete borra logs y task atómicamente, owner/caregiver.
	Delete(ctx context.Context, taskID, userID string) error
}
