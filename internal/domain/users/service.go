package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
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

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" || email == "" || len(in.Password) < 6 {
		return User{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Preferences:  DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// carrera register/register: el unique de email manda
		if errors.Is(err, ErrEmailTaken) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

// Login devuelve el mismo error genérico tanto para email desconocido
// como para password incorrecto.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

type UpdateProfileInput struct {
	Name   string
	Email  string
	Avatar string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" || email == "" {
		return User{}, ErrInvalidInput
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, ErrNotFound
	}

	// El email puede cambiar, pero no al de otro usuario.
	if email != u.Email {
		if other, err := s.repo.GetByEmail(ctx, email); err == nil && other.ID != userID {
			return User{}, ErrEmailTaken
		}
	}

	u.Name = name
	u.Email = email
	u.Avatar = strings.TrimSpace(in.Avatar)
	u.UpdatedAt = s.now()

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetPreferences(ctx context.Context, userID string) (Preferences, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Preferences{}, ErrNotFound
	}
	if u.Preferences.Version == 0 {
		return DefaultPreferences(), nil
	}
	return u.Preferences, nil
}

func (s *Service) UpdatePreferences(ctx context.Context, userID string, p Preferences) (Preferences, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Preferences{}, ErrInvalidInput
	}

	p.Version = PreferencesVersion
	if err := p.Validate(); err != nil {
		return Preferences{}, err
	}

	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return Preferences{}, ErrNotFound
	}

	if err := s.repo.UpdatePreferences(ctx, userID, p, s.now()); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
