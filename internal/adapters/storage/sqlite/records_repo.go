package sqlite

import (
	"context"
	"database/sql"

	"pet-care-tracker/internal/domain/petrecords"
)

type PetRecordsRepo struct {
	db *sql.DB
}

func NewPetRecordsRepo(db *sql.DB) *PetRecordsRepo {
	return &PetRecordsRepo{db: db}
}

func (r *PetRecordsRepo) CreatePhoto(ctx context.Context, p petrecords.Photo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_photos (id, pet_id, url, caption, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.PetID, p.URL, p.Caption, encodeTime(p.CreatedAt),
	)
	return err
}

func (r *PetRecordsRepo) ListPhotos(ctx context.Context, petID string) ([]petrecords.Photo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, url, caption, created_at
		FROM pet_photos WHERE pet_id = ? ORDER BY created_at DESC`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []petrecords.Photo
	for rows.Next() {
		var p petrecords.Photo
		var createdAt string
		if err := rows.Scan(&p.ID, &p.PetID, &p.URL, &p.Caption, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = decodeTime(createdAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetRecordsRepo) CreateMilestone(ctx context.Context, m petrecords.Milestone) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_milestones (id, pet_id, title, description, achieved_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.PetID, m.Title, m.Description, encodeTime(m.AchievedAt), encodeTime(m.CreatedAt),
	)
	return err
}

func (r *PetRecordsRepo) ListMilestones(ctx context.Context, petID string) ([]petrecords.Milestone, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, title, description, achieved_at, created_at
		FROM pet_milestones WHERE pet_id = ? ORDER BY achieved_at DESC`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []petrecords.Milestone
	for rows.Next() {
		var m petrecords.Milestone
		var achievedAt, createdAt string
		if err := rows.Scan(&m.ID, &m.PetID, &m.Title, &m.Description, &achievedAt, &createdAt); err != nil {
			return nil, err
		}
		m.AchievedAt = decodeTime(achievedAt)
		m.CreatedAt = decodeTime(createdAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PetRecordsRepo) CreateWeightEntry(ctx context.Context, e petrecords.WeightEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_weight_logs (id, pet_id, weight, notes, recorded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.PetID, e.Weight, e.Notes, encodeTime(e.RecordedAt), encodeTime(e.CreatedAt),
	)
	return err
}

func (r *PetRecordsRepo) ListWeightEntries(ctx context.Context, petID string) ([]petrecords.WeightEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, weight, notes, recorded_at, created_at
		FROM pet_weight_logs WHERE pet_id = ? ORDER BY recorded_at DESC`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []petrecords.WeightEntry
	for rows.Next() {
		var e petrecords.WeightEntry
		var recordedAt, createdAt string
		if err := rows.Scan(&e.ID, &e.PetID, &e.Weight, &e.Notes, &recordedAt, &createdAt); err != nil {
			return nil, err
		}
		e.RecordedAt = decodeTime(recordedAt)
		e.CreatedAt = decodeTime(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PetRecordsRepo) CreateMoodEntry(ctx context.Context, e petrecords.MoodEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_mood_logs (id, pet_id, mood, notes, recorded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.PetID, string(e.Mood), e.Notes, encodeTime(e.RecordedAt), encodeTime(e.CreatedAt),
	)
	return err
}

func (r *PetRecordsRepo) ListMoodEntries(ctx context.Context, petID string) ([]petrecords.MoodEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, mood, notes, recorded_at, created_at
		FROM pet_mood_logs WHERE pet_id = ? ORDER BY recorded_at DESC`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []petrecords.MoodEntry
	for rows.Next() {
		var e petrecords.MoodEntry
		var recordedAt, createdAt string
		if err := rows.Scan(&e.ID, &e.PetID, &e.Mood, &e.Notes, &recordedAt, &createdAt); err != nil {
			return nil, err
		}
		e.RecordedAt = decodeTime(recordedAt)
		e.CreatedAt = decodeTime(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PetRecordsRepo) CreateAchievement(ctx context.Context, a petrecords.Achievement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_achievements (id, pet_id, title, icon, earned_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.PetID, a.Title, a.Icon, encodeTime(a.EarnedAt), encodeTime(a.CreatedAt),
	)
	return err
}

func (r *PetRecordsRepo) ListAchievements(ctx context.Context, petID string) ([]petrecords.Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, title, icon, earned_at, created_at
		FROM pet_achievements WHERE pet_id = ? ORDER BY earned_at DESC`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []petrecords.Achievement
	for rows.Next() {
		var a petrecords.Achievement
		var earnedAt, createdAt string
		if err := rows.Scan(&a.ID, &a.PetID, &a.Title, &a.Icon, &earnedAt, &createdAt); err != nil {
			return nil, err
		}
		a.EarnedAt = decodeTime(earnedAt)
		a.CreatedAt = decodeTime(createdAt)
		out = append(out, a)
	}
	return out, rows.Err()
}
