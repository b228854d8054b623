package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// Update escribe solo si editorUserID es owner o caregiver de la
	// mascota; el predicado va en la misma sentencia (sin check-then-act).
	Update(ctx context.Context, p Pet, editorUserID string) error

	// Delete borra la mascota solo si ownerUserID es su dueño, cascadeando
	// tasks, task logs, registros de extensión y grants en una transacción.
	Delete(ctx context.Context, petID, ownerUserID string) error
}
