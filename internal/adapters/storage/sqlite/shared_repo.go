package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-care-tracker/internal/domain/sharedaccess"
)

type SharedAccessRepo struct {
	db *sql.DB
}

func NewSharedAccessRepo(db *sql.DB) *SharedAccessRepo {
	return &SharedAccessRepo{db: db}
}

func scanGrant(row rowScanner) (sharedaccess.Grant, error) {
	var g sharedaccess.Grant
	var createdAt, updatedAt string
	err := row.Scan(&g.ID, &g.PetID, &g.UserID, &g.Role, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sharedaccess.Grant{}, sharedaccess.ErrNotFound
	}
	if err != nil {
		return sharedaccess.Grant{}, err
	}
	g.CreatedAt = decodeTime(createdAt)
	g.UpdatedAt = decodeTime(updatedAt)
	return g, nil
}

func (r *SharedAccessRepo) Create(ctx context.Context, g sharedaccess.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shared_access (id, pet_id, user_id, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.PetID, g.UserID, string(g.Role),
		encodeTime(g.CreatedAt), encodeTime(g.UpdatedAt),
	)
	return err
}

func (r *SharedAccessRepo) UpdateRole(ctx context.Context, id string, role sharedaccess.Role, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shared_access SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), encodeTime(updatedAt), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sharedaccess.ErrNotFound
	}
	return nil
}

func (r *SharedAccessRepo) GetByID(ctx context.Context, id string) (sharedaccess.Grant, error) {
	return scanGrant(r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, user_id, role, created_at, updated_at
		FROM shared_access WHERE id = ?`, id))
}

func (r *SharedAccessRepo) GetByPetAndUser(ctx context.Context, petID, userID string) (sharedaccess.Grant, error) {
	return scanGrant(r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, user_id, role, created_at, updated_at
		FROM shared_access WHERE pet_id = ? AND user_id = ?`, petID, userID))
}

func (r *SharedAccessRepo) ListByPet(ctx context.Context, petID string) ([]sharedaccess.Grant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, user_id, role, created_at, updated_at
		FROM shared_access WHERE pet_id = ? ORDER BY created_at ASC`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sharedaccess.Grant
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SharedAccessRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shared_access WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sharedaccess.ErrNotFound
	}
	return nil
}
