package sqlite

import (
	"context"
	"database/sql"

	"pet-care-tracker/internal/domain/analytics"
)

type AnalyticsRepo struct {
	db *sql.DB
}

func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

func (r *AnalyticsRepo) TaskStatsByType(ctx context.Context, userID string, f analytics.TaskFilter) ([]analytics.TypeStats, error) {
	query := `
		SELECT t.type, COUNT(*), SUM(CASE WHEN t.completed_at IS NOT NULL THEN 1 ELSE 0 END)
		FROM tasks t
		WHERE t.pet_id IN ` + petReadable
	args := []any{userID, userID}

	if f.PetID != "" {
		query += ` AND t.pet_id = ?`
		args = append(args, f.PetID)
	}
	if f.StartDate != "" {
		query += ` AND DATE(t.scheduled_time) >= ?`
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		query += ` AND DATE(t.scheduled_time) <= ?`
		args = append(args, f.EndDate)
	}
	query += ` GROUP BY t.type ORDER BY t.type`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.TypeStats
	for rows.Next() {
		var s analytics.TypeStats
		if err := rows.Scan(&s.Type, &s.Total, &s.Completed); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) TaskStatsByPet(ctx context.Context, userID, petID string) ([]analytics.PetStats, error) {
	// LEFT JOIN: una mascota sin tasks igual aparece, con totales en cero.
	query := `
		SELECT p.id, p.name, p.type,
			COUNT(t.id),
			SUM(CASE WHEN t.completed_at IS NOT NULL THEN 1 ELSE 0 END)
		FROM pets p
		LEFT JOIN tasks t ON t.pet_id = p.id
		WHERE p.id IN ` + petReadable
	args := []any{userID, userID}

	if petID != "" {
		query += ` AND p.id = ?`
		args = append(args, petID)
	}
	query += ` GROUP BY p.id, p.name, p.type ORDER BY p.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.PetStats
	for rows.Next() {
		var s analytics.PetStats
		var completed sql.NullInt64
		if err := rows.Scan(&s.PetID, &s.PetName, &s.PetType, &s.Total, &completed); err != nil {
			return nil, err
		}
		s.Completed = int(completed.Int64)
		out = append(out, s)
	}
	return out, rows.Err()
}
