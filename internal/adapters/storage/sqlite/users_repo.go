package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"pet-care-tracker/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, avatar, preferences, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Avatar, string(prefs),
		encodeTime(u.CreatedAt), encodeTime(u.UpdatedAt),
	)
	return err
}

const userColumns = `id, name, email, password_hash, avatar, preferences, created_at, updated_at`

func scanUser(row *sql.Row) (users.User, error) {
	var u users.User
	var prefs, createdAt, updatedAt string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &prefs, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	if prefs != "" {
		// Preferencias ilegibles se tratan como no seteadas.
		_ = json.Unmarshal([]byte(prefs), &u.Preferences)
	}
	u.CreatedAt = decodeTime(createdAt)
	u.UpdatedAt = decodeTime(updatedAt)
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *UsersRepo) UpdateProfile(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = ?, email = ?, avatar = ?, updated_at = ?
		WHERE id = ?`,
		u.Name, u.Email, u.Avatar, encodeTime(u.UpdatedAt), u.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) UpdatePreferences(ctx context.Context, userID string, p users.Preferences, updatedAt time.Time) error {
	prefs, err := json.Marshal(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET preferences = ?, updated_at = ?
		WHERE id = ?`,
		string(prefs), encodeTime(updatedAt), userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}
