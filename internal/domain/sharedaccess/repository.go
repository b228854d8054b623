package sharedaccess

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, g Grant) error
	UpdateRole(ctx context.Context, id string, role Role, updatedAt time.Time) error
	GetByID(ctx context.Context, id string) (Grant, error)
	GetByPetAndUser(ctx context.Context, petID, userID string) (Grant, error)
	ListByPet(ctx context.Context, petID string) ([]Grant, error)
	Delete(ctx context.Context, id string) error
}
