package sqlite

import (
	"context"
	"database/sql"

	"pet-care-tracker/internal/domain/tasklogs"
)

type TaskLogsRepo struct {
	db *sql.DB
}

func NewTaskLogsRepo(db *sql.DB) *TaskLogsRepo {
	return &TaskLogsRepo{db: db}
}

func (r *TaskLogsRepo) List(ctx context.Context, userID string, f tasklogs.Filter) ([]tasklogs.EntryWithContext, error) {
	query := `
		SELECT l.id, l.task_id, l.pet_id, l.completed_at, l.notes,
			l.duration, l.quantity, l.mood,
			t.title, t.type, p.name, p.type
		FROM task_logs l
		JOIN tasks t ON t.id = l.task_id
		JOIN pets p ON p.id = l.pet_id
		WHERE l.pet_id IN ` + petReadable
	args := []any{userID, userID}

	if f.PetID != "" {
		query += ` AND l.pet_id = ?`
		args = append(args, f.PetID)
	}
	if f.TaskID != "" {
		query += ` AND l.task_id = ?`
		args = append(args, f.TaskID)
	}
	query += ` ORDER BY l.completed_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tasklogs.EntryWithContext
	for rows.Next() {
		var e tasklogs.EntryWithContext
		var completedAt string
		var duration, quantity sql.NullInt64

		err := rows.Scan(&e.ID, &e.TaskID, &e.PetID, &completedAt, &e.Notes,
			&duration, &quantity, &e.Mood,
			&e.TaskTitle, &e.TaskType, &e.PetName, &e.PetType)
		if err != nil {
			return nil, err
		}

		e.CompletedAt = decodeTime(completedAt)
		if duration.Valid {
			v := int(duration.Int64)
			e.Duration = &v
		}
		if quantity.Valid {
			v := int(quantity.Int64)
			e.Quantity = &v
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
