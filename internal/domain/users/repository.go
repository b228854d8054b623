package users

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateProfile(ctx context.Context, u User) error
	UpdatePreferences(ctx context.Context, userID string, p Preferences, updatedAt time.Time) error
}
