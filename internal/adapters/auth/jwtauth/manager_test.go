package jwtauth

import (
	"context"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tok, err := m.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok == "" {
		t.Fatal("issue: empty token")
	}

	claims, err := m.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }
	tok, err := m.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	if _, err := m.Verify(context.Background(), tok); err == nil {
		t.Fatal("expected error verifying expired token")
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	tok, err := NewManager("secret-a", time.Hour).Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Verify(context.Background(), tok); err == nil {
		t.Fatal("expected error verifying with wrong secret")
	}
}

func TestVerify_RejectsEmptyToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	if _, err := m.Verify(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty token")
	}
}
