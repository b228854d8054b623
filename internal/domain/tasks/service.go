package tasks

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
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyCompleted = errors.New("task already completed")
)

// PetAccess resuelve el nivel de acceso del usuario sobre una mascota.
type PetAccess interface {
	AccessFor(ctx context.Context, petID, userID string) (pets.Access, error)
}

type Service struct {
	repo      Repository
	petAccess PetAccess
	now       func() time.Time
}

func NewService(repo Repository, petAccess PetAccess) *Service {
	return &Service{
		repo:      repo,
		petAccess: petAccess,
		now:       time.Now,
	}
}

type CreateInput struct {
	PetID             string
	Title             string
	Description       string
	Type              string
	Priority          string
	ScheduledTime     time.Time
	IsRecurring       bool
	RecurrencePattern string
	Notes             string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (TaskWithPet, error) {
	petID := strings.TrimSpace(in.PetID)
	title := strings.TrimSpace(in.Title)

	if petID == "" || title == "" || !ValidType(in.Type) || in.ScheduledTime.IsZero() {
		return TaskWithPet{}, ErrInvalidInput
	}

	priority := Priority(in.Priority)
	if in.Priority == "" {
		priority = PriorityMedium
	} else if !ValidPriority(in.Priority) {
		return TaskWithPet{}, ErrInvalidInput
	}

	var pattern Recurrence
	if in.IsRecurring {
		if !ValidRecurrence(in.RecurrencePattern) {
			return TaskWithPet{}, ErrInvalidInput
		}
		pattern = Recurrence(in.RecurrencePattern)
	}

	// La mascota tiene que ser del usuario (o caregiver); si no, 404.
	access, err := s.petAccess.AccessFor(ctx, petID, userID)
	if err != nil || access < pets.AccessEdit {
		return TaskWithPet{}, ErrNotFound
	}

	now := s.now()
	t := Task{
		ID:                uuid.NewString(),
		PetID:             petID,
		Title:             title,
		Description:       strings.TrimSpace(in.Description),
		Type:              TaskType(in.Type),
		Priority:          priority,
		ScheduledTime:     in.ScheduledTime,
		IsRecurring:       in.IsRecurring,
		RecurrencePattern: pattern,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return TaskWithPet{}, err
	}

	return s.repo.GetAccessible(ctx, t.ID, userID)
}

func (s *Service) List(ctx context.Context, userID string, f Filter) ([]TaskWithPet, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, userID, f)
}

func (s *Service) GetByID(ctx context.Context, taskID, userID string) (TaskWithPet, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return TaskWithPet{}, ErrNotFound
	}
	return s.repo.GetAccessible(ctx, taskID, userID)
}

type UpdateInput struct {
	Title             string
	Description       string
	Type              string
	Priority          string
	ScheduledTime     time.Time
	IsRecurring       bool
	RecurrencePattern string
	Notes             string
}

// Update sobreescribe los campos mutables. CompletedAt no se toca acá:
// completar es una operación aparte.
func (s *Service) Update(ctx context.Context, taskID, userID string, in UpdateInput) (TaskWithPet, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || !ValidType(in.Type) || in.ScheduledTime.IsZero() {
		return TaskWithPet{}, ErrInvalidInput
	}

	priority := Priority(in.Priority)
	if in.Priority == "" {
		priority = PriorityMedium
	} else if !ValidPriority(in.Priority) {
		return TaskWithPet{}, ErrInvalidInput
	}

	var pattern Recurrence
	if in.IsRecurring {
		if !ValidRecurrence(in.RecurrencePattern) {
			return TaskWithPet{}, ErrInvalidInput
		}
		pattern = Recurrence(in.RecurrencePattern)
	}

	current, err := s.repo.GetAccessible(ctx, taskID, userID)
	if err != nil {
		return TaskWithPet{}, ErrNotFound
	}

	t := current.Task
	t.Title = title
	t.Description = strings.TrimSpace(in.Description)
	t.Type = TaskType(in.Type)
	t.Priority = priority
	t.ScheduledTime = in.ScheduledTime
	t.IsRecurring = in.IsRecurring
	t.RecurrencePattern = pattern
	t.Notes = strings.TrimSpace(in.Notes)
	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t, userID); err != nil {
		return TaskWithPet{}, err
	}

	return s.repo.GetAccessible(ctx, taskID, userID)
}

type CompleteInput struct {
	Notes    string
	Duration *int
	Quantity *int
	Mood     string
}

// Complete es one-way: segunda llamada sobre la misma task devuelve
// ErrAlreadyCompleted y no genera un segundo log.
func (s *Service) Complete(ctx context.Context, taskID, userID string, in CompleteInput) (TaskWithPet, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return TaskWithPet{}, ErrNotFound
	}

	if in.Mood != "" && !tasklogs.ValidMood(in.Mood) {
		return TaskWithPet{}, ErrInvalidInput
	}
	if in.Duration != nil && *in.Duration < 0 {
		return TaskWithPet{}, ErrInvalidInput
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return TaskWithPet{}, ErrInvalidInput
	}

	entry := tasklogs.Entry{
		ID:          uuid.NewString(),
		CompletedAt: s.now().UTC(),
		Notes:       strings.TrimSpace(in.Notes),
		Duration:    in.Duration,
		Quantity:    in.Quantity,
		Mood:        tasklogs.Mood(in.Mood),
	}

	if err := s.repo.Complete(ctx, taskID, userID, entry); err != nil {
		return TaskWithPet{}, err
	}

	return s.repo.GetAccessible(ctx, taskID, userID)
}

func (s *Service) Delete(ctx context.Context, taskID, userID string) error {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, taskID, userID)
}
