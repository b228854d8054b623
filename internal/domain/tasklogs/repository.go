package tasklogs

import "context"

type Filter struct {
	PetID  string
	TaskID string
}

// Repository solo lee: los entries se insertan dentro de la transacción
// de completación de task (ver tasks.Repository.Complete).
type Repository interface {
	List(ctx context.Context, userID string, f Filter) ([]EntryWithContext, error)
}
