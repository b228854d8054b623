package pets

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

// GrantLookup resuelve el rol compartido de un usuario sobre una mascota.
// Interface local para no importar sharedaccess (rompe ciclos).
type GrantLookup interface {
	RoleFor(ctx context.Context, petID, userID string) (string, error)
}

type Service struct {
	repo   Repository
	grants GrantLookup
	now    func() time.Time
}

func NewService(repo Repository, grants GrantLookup) *Service {
	return &Service{
		repo:   repo,
		grants: grants,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name         string
	Type         string
	Breed        string
	Age          *int
	Weight       *float64
	Avatar       string
	FavoriteToys string
	Allergies    string
	SpecialNeeds string
	AdoptionDate *time.Time
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if !ValidType(in.Type) {
		return Pet{}, ErrInvalidInput
	}
	if in.Age != nil && *in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.Weight != nil && *in.Weight < 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Name:         strings.TrimSpace(in.Name),
		Type:         PetType(in.Type),
		Breed:        strings.TrimSpace(in.Breed),
		Age:          in.Age,
		Weight:       in.Weight,
		Avatar:       strings.TrimSpace(in.Avatar),
		FavoriteToys: strings.TrimSpace(in.FavoriteToys),
		Allergies:    strings.TrimSpace(in.Allergies),
		SpecialNeeds: strings.TrimSpace(in.SpecialNeeds),
		AdoptionDate: in.AdoptionDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Update sobreescribe los campos mutables del perfil.
func (s *Service) Update(ctx context.Context, petID, editorUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" || !ValidType(in.Type) {
		return Pet{}, ErrInvalidInput
	}
	if in.Age != nil && *in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.Weight != nil && *in.Weight < 0 {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Type = PetType(in.Type)
	p.Breed = strings.TrimSpace(in.Breed)
	p.Age = in.Age
	p.Weight = in.Weight
	p.Avatar = strings.TrimSpace(in.Avatar)
	p.FavoriteToys = strings.TrimSpace(in.FavoriteToys)
	p.Allergies = strings.TrimSpace(in.Allergies)
	p.SpecialNeeds = strings.TrimSpace(in.SpecialNeeds)
	p.AdoptionDate = in.AdoptionDate
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p, editorUserID); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, petID, ownerUserID string) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, petID, ownerUserID)
}
