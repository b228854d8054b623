// Package sqlite implementa los repositorios de dominio sobre SQLite
// usando el driver puro de modernc (sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base y aplica las migraciones pendientes.
// path vacío abre una base en memoria, útil para dev y tests.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}

	// Una sola conexión: evita SQLITE_BUSY y hace que :memory: sea una
	// única base compartida.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// migrations se aplican en orden según PRAGMA user_version.
var migrations = []string{
	`
	CREATE TABLE users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		avatar        TEXT NOT NULL DEFAULT '',
		preferences   TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	);

	CREATE TABLE pets (
		id            TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL REFERENCES users(id),
		name          TEXT NOT NULL,
		type          TEXT NOT NULL,
		breed         TEXT NOT NULL DEFAULT '',
		age           INTEGER,
		weight        REAL,
		avatar        TEXT NOT NULL DEFAULT '',
		favorite_toys TEXT NOT NULL DEFAULT '',
		allergies     TEXT NOT NULL DEFAULT '',
		special_needs TEXT NOT NULL DEFAULT '',
		adoption_date TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	);
	CREATE INDEX idx_pets_owner ON pets(owner_user_id);

	CREATE TABLE shared_access (
		id         TEXT PRIMARY KEY,
		pet_id     TEXT NOT NULL REFERENCES pets(id),
		user_id    TEXT NOT NULL REFERENCES users(id),
		role       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (pet_id, user_id)
	);
	CREATE INDEX idx_shared_access_user ON shared_access(user_id);

	CREATE TABLE tasks (
		id                 TEXT PRIMARY KEY,
		pet_id             TEXT NOT NULL REFERENCES pets(id),
		title              TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		type               TEXT NOT NULL,
		priority           TEXT NOT NULL,
		scheduled_time     TEXT NOT NULL,
		completed_at       TEXT,
		is_recurring       INTEGER NOT NULL DEFAULT 0,
		recurrence_pattern TEXT NOT NULL DEFAULT '',
		notes              TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	);
	CREATE INDEX idx_tasks_pet ON tasks(pet_id);
	CREATE INDEX idx_tasks_scheduled ON tasks(scheduled_time);

	CREATE TABLE task_logs (
		id           TEXT PRIMARY KEY,
		task_id      TEXT NOT NULL REFERENCES tasks(id),
		pet_id       TEXT NOT NULL REFERENCES pets(id),
		completed_at TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		duration     INTEGER,
		quantity     INTEGER,
		mood         TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX idx_task_logs_task ON task_logs(task_id);
	CREATE INDEX idx_task_logs_pet ON task_logs(pet_id);

	CREATE TABLE pet_photos (
		id         TEXT PRIMARY KEY,
		pet_id     TEXT NOT NULL REFERENCES pets(id),
		url        TEXT NOT NULL,
		caption    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX idx_pet_photos_pet ON pet_photos(pet_id);

	CREATE TABLE pet_milestones (
		id          TEXT PRIMARY KEY,
		pet_id      TEXT NOT NULL REFERENCES pets(id),
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		achieved_at TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX idx_pet_milestones_pet ON pet_milestones(pet_id);

	CREATE TABLE pet_weight_logs (
		id          TEXT PRIMARY KEY,
		pet_id      TEXT NOT NULL REFERENCES pets(id),
		weight      REAL NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX idx_pet_weight_logs_pet ON pet_weight_logs(pet_id);

	CREATE TABLE pet_mood_logs (
		id          TEXT PRIMARY KEY,
		pet_id      TEXT NOT NULL REFERENCES pets(id),
		mood        TEXT NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX idx_pet_mood_logs_pet ON pet_mood_logs(pet_id);

	CREATE TABLE pet_achievements (
		id         TEXT PRIMARY KEY,
		pet_id     TEXT NOT NULL REFERENCES pets(id),
		title      TEXT NOT NULL,
		icon       TEXT NOT NULL DEFAULT '',
		earned_at  TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX idx_pet_achievements_pet ON pet_achievements(pet_id);

	CREATE TABLE notifications (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id),
		type       TEXT NOT NULL DEFAULT 'general',
		title      TEXT NOT NULL,
		message    TEXT NOT NULL DEFAULT '',
		read       INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE INDEX idx_notifications_user ON notifications(user_id);
	`,
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("sqlite: leer user_version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("sqlite: migración %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite: migración %d: %w", i+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite: migración %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("sqlite: migración %d: %w", i+1, err)
		}
	}
	return nil
}

// Los timestamps se guardan como TEXT RFC3339 en UTC: el orden
// lexicográfico coincide con el cronológico y DATE() funciona directo.

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}

func decodeTimePtr(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t := decodeTime(s.String)
	return &t
}

// execContext es el mínimo común entre *sql.DB y *sql.Tx que usan los
// repos para compartir queries dentro y fuera de transacciones.
type execContext interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
