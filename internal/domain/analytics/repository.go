package analytics

import "context"

// TaskFilter acota la agregación por tipo. Las fechas van como
// YYYY-MM-DD y son inclusivas.
type TaskFilter struct {
	PetID     string
	StartDate string
	EndDate   string
}

type Repository interface {
	// TaskStatsByType devuelve los conteos crudos por tipo de task,
	// solo sobre mascotas accesibles para el usuario.
	TaskStatsByType(ctx context.Context, userID string, f TaskFilter) ([]TypeStats, error)
	// TaskStatsByPet devuelve los conteos crudos por mascota.
	TaskStatsByPet(ctx context.Context, userID, petID string) ([]PetStats, error)
}
