package analytics

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

func (s *Service) TasksByType(ctx context.Context, userID string, f TaskFilter) ([]TypeStats, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	f.PetID = strings.TrimSpace(f.PetID)
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.EndDate = strings.TrimSpace(f.EndDate)

	stats, err := s.repo.TaskStatsByType(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	for i := range stats {
		stats[i].CompletionRate = Rate(stats[i].Completed, stats[i].Total)
	}
	return stats, nil
}

func (s *Service) TasksByPet(ctx context.Context, userID, petID string) ([]PetStats, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}

	stats, err := s.repo.TaskStatsByPet(ctx, userID, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	for i := range stats {
		stats[i].CompletionRate = Rate(stats[i].Completed, stats[i].Total)
	}
	return stats, nil
}
