package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-tracker/internal/domain/tasklogs"
	"pet-care-tracker/internal/domain/tasks"
)

type TasksRepo struct {
	db *sql.DB
}

func NewTasksRepo(db *sql.DB) *TasksRepo {
	return &TasksRepo{db: db}
}

// Predicados de acceso: van embebidos en cada sentencia para que la
// verificación y la escritura sean una sola operación.
const petReadable = `(
	SELECT id FROM pets WHERE owner_user_id = ?
	UNION
	SELECT pet_id FROM shared_access WHERE user_id = ?
)`

const petEditable = `(
	SELECT id FROM pets WHERE owner_user_id = ?
	UNION
	SELECT pet_id FROM shared_access WHERE user_id = ? AND role IN ('owner', 'caregiver')
)`

const taskColumns = `t.id, t.pet_id, t.title, t.description, t.type, t.priority,
	t.scheduled_time, t.completed_at, t.is_recurring, t.recurrence_pattern,
	t.notes, t.created_at, t.updated_at, p.name, p.type`

func scanTask(row rowScanner) (tasks.TaskWithPet, error) {
	var t tasks.TaskWithPet
	var scheduled, createdAt, updatedAt string
	var completed sql.NullString
	var recurring int

	err := row.Scan(&t.ID, &t.PetID, &t.Title, &t.Description, &t.Type, &t.Priority,
		&scheduled, &completed, &recurring, &t.RecurrencePattern,
		&t.Notes, &createdAt, &updatedAt, &t.PetName, &t.PetType)
	if errors.Is(err, sql.ErrNoRows) {
		return tasks.TaskWithPet{}, tasks.ErrNotFound
	}
	if err != nil {
		return tasks.TaskWithPet{}, err
	}

	t.ScheduledTime = decodeTime(scheduled)
	t.CompletedAt = decodeTimePtr(completed)
	t.IsRecurring = recurring != 0
	t.CreatedAt = decodeTime(createdAt)
	t.UpdatedAt = decodeTime(updatedAt)
	return t, nil
}

func (r *TasksRepo) Create(ctx context.Context, t tasks.Task) error {
	recurring := 0
	if t.IsRecurring {
		recurring = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, pet_id, title, description, type, priority,
			scheduled_time, completed_at, is_recurring, recurrence_pattern,
			notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.PetID, t.Title, t.Description, string(t.Type), string(t.Priority),
		encodeTime(t.ScheduledTime), encodeTimePtr(t.CompletedAt), recurring,
		string(t.RecurrencePattern), t.Notes,
		encodeTime(t.CreatedAt), encodeTime(t.UpdatedAt),
	)
	return err
}

func (r *TasksRepo) GetAccessible(ctx context.Context, taskID, userID string) (tasks.TaskWithPet, error) {
	return scanTask(r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t JOIN pets p ON p.id = t.pet_id
		WHERE t.id = ? AND t.pet_id IN `+petReadable,
		taskID, userID, userID))
}

func (r *TasksRepo) List(ctx context.Context, userID string, f tasks.Filter) ([]tasks.TaskWithPet, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t JOIN pets p ON p.id = t.pet_id
		WHERE t.pet_id IN ` + petReadable
	args := []any{userID, userID}

	if f.PetID != "" {
		query += ` AND t.pet_id = ?`
		args = append(args, f.PetID)
	}
	if f.Date != "" {
		// scheduled_time es RFC3339 UTC: DATE() recorta al día calendario.
		query += ` AND DATE(t.scheduled_time) = ?`
		args = append(args, f.Date)
	}
	if f.Priority != "" {
		query += ` AND t.priority = ?`
		args = append(args, f.Priority)
	}
	if f.Type != "" {
		query += ` AND t.type = ?`
		args = append(args, f.Type)
	}
	query += ` ORDER BY t.scheduled_time ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tasks.TaskWithPet
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TasksRepo) Update(ctx context.Context, t tasks.Task, userID string) error {
	recurring := 0
	if t.IsRecurring {
		recurring = 1
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, type = ?, priority = ?,
			scheduled_time = ?, is_recurring = ?, recurrence_pattern = ?,
			notes = ?, updated_at = ?
		WHERE id = ? AND pet_id IN `+petEditable,
		t.Title, t.Description, string(t.Type), string(t.Priority),
		encodeTime(t.ScheduledTime), recurring, string(t.RecurrencePattern),
		t.Notes, encodeTime(t.UpdatedAt),
		t.ID, userID, userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return tasks.ErrNotFound
	}
	return nil
}

// Complete marca la task y crea su log en una sola transacción. El
// UPDATE solo pega si la task está accesible y sin completar; si no
// pegó, distinguimos 404 de 409 con una lectura dentro de la misma tx.
func (r *TasksRepo) Complete(ctx context.Context, taskID, userID string, entry tasklogs.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE tasks SET completed_at = ?, updated_at = ?
		WHERE id = ? AND completed_at IS NULL AND pet_id IN `+petEditable,
		encodeTime(entry.CompletedAt), encodeTime(entry.CompletedAt),
		taskID, userID, userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var completed sql.NullString
		err := tx.QueryRowContext(ctx, `
			SELECT completed_at FROM tasks
			WHERE id = ? AND pet_id IN `+petEditable,
			taskID, userID, userID).Scan(&completed)
		if errors.Is(err, sql.ErrNoRows) {
			return tasks.ErrNotFound
		}
		if err != nil {
			return err
		}
		if completed.Valid {
			return tasks.ErrAlreadyCompleted
		}
		return tasks.ErrNotFound
	}

	var petID string
	if err := tx.QueryRowContext(ctx,
		`SELECT pet_id FROM tasks WHERE id = ?`, taskID).Scan(&petID); err != nil {
		return err
	}

	var duration, quantity any
	if entry.Duration != nil {
		duration = *entry.Duration
	}
	if entry.Quantity != nil {
		quantity = *entry.Quantity
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO task_logs (id, task_id, pet_id, completed_at, notes, duration, quantity, mood)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, taskID, petID, encodeTime(entry.CompletedAt),
		entry.Notes, duration, quantity, string(entry.Mood),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TasksRepo) Delete(ctx context.Context, taskID, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Logs primero, task después; el predicado acota ambas al acceso
	// del usuario.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM task_logs
		WHERE task_id = ? AND pet_id IN `+petEditable,
		taskID, userID, userID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE id = ? AND pet_id IN `+petEditable,
		taskID, userID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return tasks.ErrNotFound
	}

	return tx.Commit()
}
