package sharedaccess

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Grant
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Grant{}}
}

func (r *testRepo) Create(ctx context.Context, g Grant) error {
	if g.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) UpdateRole(ctx context.Context, id string, role Role, updatedAt time.Time) error {
	g, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	g.Role = role
	g.UpdatedAt = updatedAt
	r.byID[id] = g
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Grant, error) {
	g, ok := r.byID[id]
	if !ok {
		return Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *testRepo) GetByPetAndUser(ctx context.Context, petID, userID string) (Grant, error) {
	for _, g := range r.byID {
		if g.PetID == petID && g.UserID == userID {
			return g, nil
		}
	}
	return Grant{}, ErrNotFound
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.PetID == petID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestGrant_Validation(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Grant(ctx, "owner-1", GrantInput{PetID: "p1", UserID: "u2", Role: "superadmin"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad role, got %v", err)
	}
	if _, err := svc.Grant(ctx, "owner-1", GrantInput{PetID: "p1", UserID: "owner-1", Role: "viewer"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self-grant, got %v", err)
	}
}

func TestGrant_DedupeUpdatesRole(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Grant(ctx, "owner-1", GrantInput{PetID: "p1", UserID: "u2", Role: "viewer"})
	if err != nil {
		t.Fatalf("grant: %v", err)
	}

	second, err := svc.Grant(ctx, "owner-1", GrantInput{PetID: "p1", UserID: "u2", Role: "caregiver"})
	if err != nil {
		t.Fatalf("re-grant: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("re-grant must reuse the grant row, got %s vs %s", second.ID, first.ID)
	}
	if second.Role != RoleCaregiver {
		t.Fatalf("expected role updated to caregiver, got %s", second.Role)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected a single grant row, got %d", len(repo.byID))
	}
}

func TestRoleFor(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Grant(ctx, "owner-1", GrantInput{PetID: "p1", UserID: "u2", Role: "caregiver"}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	role, err := svc.RoleFor(ctx, "p1", "u2")
	if err != nil {
		t.Fatalf("RoleFor: %v", err)
	}
	if role != "caregiver" {
		t.Fatalf("expected caregiver, got %q", role)
	}

	role, err = svc.RoleFor(ctx, "p1", "stranger")
	if err != nil || role != "" {
		t.Fatalf("expected empty role without error, got %q / %v", role, err)
	}
}

func TestRevoke(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	g, _ := svc.Grant(ctx, "owner-1", GrantInput{PetID: "p1", UserID: "u2", Role: "viewer"})

	// grant de otra mascota: no revocable por este path
	if err := svc.Revoke(ctx, g.ID, "other-pet"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for mismatched pet, got %v", err)
	}

	if err := svc.Revoke(ctx, g.ID, "p1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	role, _ := svc.RoleFor(ctx, "p1", "u2")
	if role != "" {
		t.Fatalf("expected no role after revoke, got %q", role)
	}
}
