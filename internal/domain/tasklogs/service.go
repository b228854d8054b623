package tasklogs

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List devuelve los logs de tasks sobre mascotas accesibles por el usuario,
// completación más reciente primero.
func (s *Service) List(ctx context.Context, userID string, f Filter) ([]EntryWithContext, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	f.PetID = strings.TrimSpace(f.PetID)
	f.TaskID = strings.TrimSpace(f.TaskID)
	return s.repo.List(ctx, userID, f)
}
