package analytics

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	byType []TypeStats
	byPet  []PetStats
}

func (r *testRepo) TaskStatsByType(context.Context, string, TaskFilter) ([]TypeStats, error) {
	return r.byType, nil
}

func (r *testRepo) TaskStatsByPet(context.Context, string, string) ([]PetStats, error) {
	return r.byPet, nil
}

func TestRate(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
	}
	for _, tc := range cases {
		if got := Rate(tc.completed, tc.total); got != tc.want {
			t.Errorf("Rate(%d, %d) = %d, esperaba %d", tc.completed, tc.total, got, tc.want)
		}
	}
}

func TestTasksByType_FillsRates(t *testing.T) {
	repo := &testRepo{byType: []TypeStats{
		{Type: "feeding", Total: 4, Completed: 3},
		{Type: "walking", Total: 0, Completed: 0},
	}}
	svc := NewService(repo)

	stats, err := svc.TasksByType(context.Background(), "user-1", TaskFilter{})
	if err != nil {
		t.Fatalf("TasksByType: %v", err)
	}
	if stats[0].CompletionRate != 75 {
		t.Errorf("feeding: esperaba 75, vino %d", stats[0].CompletionRate)
	}
	if stats[1].CompletionRate != 0 {
		t.Errorf("walking sin tasks: esperaba 0, vino %d", stats[1].CompletionRate)
	}
}

func TestTasksByPet_FillsRates(t *testing.T) {
	repo := &testRepo{byPet: []PetStats{
		{PetID: "pet-1", PetName: "Rocky", Total: 2, Completed: 1},
	}}
	svc := NewService(repo)

	stats, err := svc.TasksByPet(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("TasksByPet: %v", err)
	}
	if stats[0].CompletionRate != 50 {
		t.Errorf("esperaba 50, vino %d", stats[0].CompletionRate)
	}
}

func TestAnalytics_RequiresUser(t *testing.T) {
	svc := NewService(&testRepo{})
	if _, err := svc.TasksByType(context.Background(), "  ", TaskFilter{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("esperaba ErrInvalidInput, vino %v", err)
	}
	if _, err := svc.TasksByPet(context.Background(), "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("esperaba ErrInvalidInput, vino %v", err)
	}
}
