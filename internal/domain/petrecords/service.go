package petrecords

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/tasklogs"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type PetAccess interface {
	AccessFor(ctx context.Context, petID, userID string) (pets.Access, error)
}

type Service struct {
	repo      Repository
	petAccess PetAccess
	now       func() time.Time
}

func NewService(repo Repository, petAccess PetAccess) *Service {
	return &Service{repo: repo, petAccess: petAccess, now: time.Now}
}

// requireAccess corta con ErrNotFound cuando el usuario no llega al
// nivel pedido, sin revelar si la mascota existe.
func (s *Service) requireAccess(ctx context.Context, petID, userID string, min pets.Access) error {
	access, err := s.petAccess.AccessFor(ctx, petID, userID)
	if err != nil || access < min {
		return ErrNotFound
	}
	return nil
}

type PhotoInput struct {
	URL     string
	Caption string
}

func (s *Service) AddPhoto(ctx context.Context, petID, userID string, in PhotoInput) (Photo, error) {
	url := strings.TrimSpace(in.URL)
	if url == "" {
		return Photo{}, ErrInvalidInput
	}
	if err := s.requireAccess(ctx, petID, userID, pets.AccessEdit); err != nil {
		return Photo{}, err
	}

	p := Photo{
		ID:        uuid.NewString(),
		PetID:     petID,
		URL:       url,
		Caption:   strings.TrimSpace(in.Caption),
		CreatedAt: s.now(),
	}
	if err := s.repo.CreatePhoto(ctx, p); err != nil {
		return Photo{}, err
	}
	return p, nil
}

func (s *Service) ListPhotos(ctx context.Context, petID, userID string) ([]Photo, error) {
	if err := s.requireAccess(ctx, petID, userID, pets.AccessView); err != nil {
		return nil, err
	}
	return s.repo.ListPhotos(ctx, petID)
}

type MilestoneInput struct {
	Title       string
	Description string
	AchievedAt  time.Time
}

func (s *Service) AddMilestone(ctx context.Context, petID, userID string, in MilestoneInput) (Milestone, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Milestone{}, ErrInvalidInput
	}
	if err := s.requireAccess(ctx, petID, userID, pets.AccessEdit); err != nil {
		return Milestone{}, err
	}

	achieved := in.AchievedAt
	if achieved.IsZero() {
		achieved = s.now()
	}
	m := Milestone{
		ID:          uuid.NewString(),
		PetID:       petID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		AchievedAt:  achieved,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateMilestone(ctx, m); err != nil {
		return Milestone{}, err
	}
	return m, nil
}

func (s *Service) ListMilestones(ctx context.Context, petID, userID string) ([]Milestone, error) {
	if err := s.requireAccess(ctx, petID, userID, pets.AccessView); err != nil {
		return nil, err
	}
	return s.repo.ListMilestones(ctx, petID)
}

type WeightInput struct {
	Weight     float64
	Notes      string
	RecordedAt time.Time
}

func (s *Service) AddWeightEntry(ctx context.Context, petID, userID string, in WeightInput) (WeightEntry, error) {
	if in.Weight <= 0 {
		return WeightEntry{}, ErrInvalidInput
	}
	if err := s.requireAccess(ctx, petID, userID, pets.AccessEdit); err != nil {
		return WeightEntry{}, err
	}

	recorded := in.RecordedAt
	if recorded.IsZero() {
		recorded = s.now()
	}
	e := WeightEntry{
		ID:         uuid.NewString(),
		PetID:      petID,
		Weight:     in.Weight,
		Notes:      strings.TrimSpace(in.Notes),
		RecordedAt: recorded,
		CreatedAt:  s.now(),
	}
	if err := s.repo.CreateWeightEntry(ctx, e); err != nil {
		return WeightEntry{}, err
	}
	return e, nil
}

func (s *Service) ListWeightEntries(ctx context.Context, petID, userID string) ([]WeightEntry, error) {
	if err := s.requireAccess(ctx, petID, userID, pets.AccessView); err != nil {
		return nil, err
	}
	return s.repo.ListWeightEntries(ctx, petID)
}

type MoodInput struct {
	Mood       string
	Notes      string
	RecordedAt time.Time
}

func (s *Service) AddMoodEntry(ctx context.Context, petID, userID string, in MoodInput) (MoodEntry, error) {
	if !tasklogs.ValidMood(in.Mood) {
		return MoodEntry{}, ErrInvalidInput
	}
	if err := s.requireAccess(ctx, petID, userID, pets.AccessEdit); err != nil {
		return MoodEntry{}, err
	}

	recorded := in.RecordedAt
	if recorded.IsZero() {
		recorded = s.now()
	}
	e := MoodEntry{
		ID:         uuid.NewString(),
		PetID:      petID,
		Mood:       tasklogs.Mood(in.Mood),
		Notes:      strings.TrimSpace(in.Notes),
		RecordedAt: recorded,
		CreatedAt:  s.now(),
	}
	if err := s.repo.CreateMoodEntry(ctx, e); err != nil {
		return MoodEntry{}, err
	}
	return e, nil
}

func (s *Service) ListMoodEntries(ctx context.Context, petID, userID string) ([]MoodEntry, error) {
	if err := s.requireAccess(ctx, petID, userID, pets.AccessView); err != nil {
		return nil, err
	}
	return s.repo.ListMoodEntries(ctx, petID)
}

type AchievementInput struct {
	Title    string
	Icon     string
	EarnedAt time.Time
}

func (s *Service) AddAchievement(ctx context.Context, petID, userID string, in AchievementInput) (Achievement, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Achievement{}, ErrInvalidInput
	}
	if err := s.requireAccess(ctx, petID, userID, pets.AccessEdit); err != nil {
		return Achievement{}, err
	}

	earned := in.EarnedAt
	if earned.IsZero() {
		earned = s.now()
	}
	a := Achievement{
		ID:        uuid.NewString(),
		PetID:     petID,
		Title:     title,
		Icon:      strings.TrimSpace(in.Icon),
		EarnedAt:  earned,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateAchievement(ctx, a); err != nil {
		return Achievement{}, err
	}
	return a, nil
}

func (s *Service) ListAchievements(ctx context.Context, petID, userID string) ([]Achievement, error) {
	if err := s.requireAccess(ctx, petID, userID, pets.AccessView); err != nil {
		return nil, err
	}
	return s.repo.ListAchievements(ctx, petID)
}
