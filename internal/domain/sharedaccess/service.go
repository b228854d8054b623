package sharedaccess

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type GrantInput struct {
	PetID  string
	UserID string
	Role   string
}

// Grant otorga (o actualiza) el rol de un usuario sobre una mascota.
// El dueño no se otorga a sí mismo; eso ya lo cubre el ownership directo.
func (s *Service) Grant(ctx context.Context, ownerUserID string, in GrantInput) (Grant, error) {
	petID := strings.TrimSpace(in.PetID)
	userID := strings.TrimSpace(in.UserID)

	if petID == "" || userID == "" {
		return Grant{}, ErrInvalidInput
	}
	if userID == strings.TrimSpace(ownerUserID) {
		return Grant{}, ErrInvalidInput
	}
	if !ValidRole(in.Role) {
		return Grant{}, ErrInvalidInput
	}

	now := s.now()

	// Dedupe (petID, userID): re-otorgar pisa el rol existente.
	if existing, err := s.repo.GetByPetAndUser(ctx, petID, userID); err == nil {
		if err := s.repo.UpdateRole(ctx, existing.ID, Role(in.Role), now); err != nil {
			return Grant{}, err
		}
		existing.Role = Role(in.Role)
		existing.UpdatedAt = now
		return existing, nil
	}

	g := Grant{
		ID:        uuid.NewString(),
		PetID:     petID,
		UserID:    userID,
		Role:      Role(in.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Grant, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, petID)
}

// Revoke elimina un grant; el handler valida que quien revoca sea el owner.
func (s *Service) Revoke(ctx context.Context, grantID, petID string) error {
	grantID = strings.TrimSpace(grantID)
	if grantID == "" {
		return ErrNotFound
	}

	g, err := s.repo.GetByID(ctx, grantID)
	if err != nil || g.PetID != petID {
		return ErrNotFound
	}

	return s.repo.Delete(ctx, grantID)
}

// RoleFor devuelve el rol del usuario sobre la mascota, "" si no tiene.
// Implementa pets.GrantLookup.
func (s *Service) RoleFor(ctx context.Context, petID, userID string) (string, error) {
	g, err := s.repo.GetByPetAndUser(ctx, petID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(g.Role), nil
}
