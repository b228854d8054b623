package petrecords

import (
	"time"

	"pet-care-tracker/internal/domain/tasklogs"
)

type Photo struct {
	ID        string
	PetID     string
	URL       string
	Caption   string
	CreatedAt time.Time
}

type Milestone struct {
	ID          string
	PetID       string
	Title       string
	Description string
	AchievedAt  time.Time
	CreatedAt   time.Time
}

type WeightEntry struct {
	ID         string
	PetID      string
	Weight     float64
	Notes      string
	RecordedAt time.Time
	CreatedAt  time.Time
}

// MoodEntry registra el ánimo observado de la mascota. Reusa la escala
// de los task logs.
type MoodEntry struct {
	ID         string
	PetID      string
	Mood       tasklogs.Mood
	Notes      string
	RecordedAt time.Time
	CreatedAt  time.Time
}

type Achievement struct {
	ID        string
	PetID     string
	Title     string
	Icon      string
	EarnedAt  time.Time
	CreatedAt time.Time
}
