package memory

import (
	"context"
	"sort"

	"pet-care-tracker/internal/domain/notifications"
	"pet-care-tracker/internal/domain/petrecords"
)

type NotificationsRepo struct {
	s *Store
}

func (r *NotificationsRepo) Create(_ context.Context, n notifications.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.notifications[n.ID] = n
	return nil
}

func (r *NotificationsRepo) ListByUser(_ context.Context, userID string) ([]notifications.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []notifications.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *NotificationsRepo) MarkRead(_ context.Context, notificationID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[notificationID]
	if !ok || n.UserID != userID {
		return notifications.ErrNotFound
	}
	n.Read = true
	r.s.notifications[notificationID] = n
	return nil
}

type PetRecordsRepo struct {
	s *Store
}

func (r *PetRecordsRepo) CreatePhoto(_ context.Context, p petrecords.Photo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.photos[p.ID] = p
	return nil
}

func (r *PetRecordsRepo) ListPhotos(_ context.Context, petID string) ([]petrecords.Photo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []petrecords.Photo
	for _, p := range r.s.photos {
		if p.PetID == petID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PetRecordsRepo) CreateMilestone(_ context.Context, m petrecords.Milestone) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.milestones[m.ID] = m
	return nil
}

func (r *PetRecordsRepo) ListMilestones(_ context.Context, petID string) ([]petrecords.Milestone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []petrecords.Milestone
	for _, m := range r.s.milestones {
		if m.PetID == petID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AchievedAt.After(out[j].AchievedAt) })
	return out, nil
}

func (r *PetRecordsRepo) CreateWeightEntry(_ context.Context, e petrecords.WeightEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.weights[e.ID] = e
	return nil
}

func (r *PetRecordsRepo) ListWeightEntries(_ context.Context, petID string) ([]petrecords.WeightEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []petrecords.WeightEntry
	for _, e := range r.s.weights {
		if e.PetID == petID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}

func (r *PetRecordsRepo) CreateMoodEntry(_ context.Context, e petrecords.MoodEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.moods[e.ID] = e
	return nil
}

func (r *PetRecordsRepo) ListMoodEntries(_ context.Context, petID string) ([]petrecords.MoodEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []petrecords.MoodEntry
	for _, e := range r.s.moods {
		if e.PetID == petID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}

func (r *PetRecordsRepo) CreateAchievement(_ context.Context, a petrecords.Achievement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.achievements[a.ID] = a
	return nil
}

func (r *PetRecordsRepo) ListAchievements(_ context.Context, petID string) ([]petrecords.Achievement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []petrecords.Achievement
	for _, a := range r.s.achievements {
		if a.PetID == petID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EarnedAt.After(out[j].EarnedAt) })
	return out, nil
}
