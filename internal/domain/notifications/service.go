package notifications

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
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Type    string
	Title   string
	Message string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Notification, error) {
	title := strings.TrimSpace(in.Title)
	if strings.TrimSpace(userID) == "" || title == "" {
		return Notification{}, ErrInvalidInput
	}

	n := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      strings.TrimSpace(in.Type),
		Title:     title,
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.now(),
	}
	if n.Type == "" {
		n.Type = "general"
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, notificationID, userID string) error {
	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return ErrNotFound
	}
	return s.repo.MarkRead(ctx, notificationID, userID)
}
