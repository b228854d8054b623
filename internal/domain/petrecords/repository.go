package petrecords

import "context"

// Repository persiste las entidades de extensión de una mascota. Los
// listados devuelven lo más nuevo primero. El borrado va en cascada con
// la mascota, desde el repo de pets.
type Repository interface {
	CreatePhoto(ctx context.Context, p Photo) error
	ListPhotos(ctx context.Context, petID string) ([]Photo, error)

	CreateMilestone(ctx context.Context, m Milestone) error
	ListMilestones(ctx context.Context, petID string) ([]Milestone, error)

	CreateWeightEntry(ctx context.Context, e WeightEntry) error
	ListWeightEntries(ctx context.Context, petID string) ([]WeightEntry, error)

	CreateMoodEntry(ctx context.Context, e MoodEntry) error
	ListMoodEntries(ctx context.Context, petID string) ([]MoodEntry, error)

	CreateAchievement(ctx context.Context, a Achievement) error
	ListAchievements(ctx context.Context, petID string) ([]Achievement, error)
}
