package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-tracker/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `id, owner_user_id, name, type, breed, age, weight, avatar,
	favorite_toys, allergies, special_needs, adoption_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var age sql.NullInt64
	var weight sql.NullFloat64
	var adoption sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.OwnerUserID, &p.Name, &p.Type, &p.Breed,
		&age, &weight, &p.Avatar, &p.FavoriteToys, &p.Allergies,
		&p.SpecialNeeds, &adoption, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if weight.Valid {
		v := weight.Float64
		p.Weight = &v
	}
	p.AdoptionDate = decodeTimePtr(adoption)
	p.CreatedAt = decodeTime(createdAt)
	p.UpdatedAt = decodeTime(updatedAt)
	return p, nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	var age any
	if p.Age != nil {
		age = *p.Age
	}
	var weight any
	if p.Weight != nil {
		weight = *p.Weight
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, owner_user_id, name, type, breed, age, weight, avatar,
			favorite_toys, allergies, special_needs, adoption_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerUserID, p.Name, string(p.Type), p.Breed, age, weight, p.Avatar,
		p.FavoriteToys, p.Allergies, p.SpecialNeeds, encodeTimePtr(p.AdoptionDate),
		encodeTime(p.CreatedAt), encodeTime(p.UpdatedAt),
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return scanPet(r.db.QueryRowContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = ?`, id))
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE owner_user_id = ? ORDER BY created_at DESC`,
		ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pets.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update escribe solo si el editor es dueño o caregiver; el predicado va
// en el WHERE de la misma sentencia.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet, editorUserID string) error {
	var age any
	if p.Age != nil {
		age = *p.Age
	}
	var weight any
	if p.Weight != nil {
		weight = *p.Weight
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets SET name = ?, type = ?, breed = ?, age = ?, weight = ?, avatar = ?,
			favorite_toys = ?, allergies = ?, special_needs = ?, adoption_date = ?, updated_at = ?
		WHERE id = ? AND id IN (
			SELECT id FROM pets WHERE owner_user_id = ?
			UNION
			SELECT pet_id FROM shared_access WHERE user_id = ? AND role IN ('owner', 'caregiver')
		)`,
		p.Name, string(p.Type), p.Breed, age, weight, p.Avatar,
		p.FavoriteToys, p.Allergies, p.SpecialNeeds, encodeTimePtr(p.AdoptionDate),
		encodeTime(p.UpdatedAt),
		p.ID, editorUserID, editorUserID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// Delete cascadea logs, tasks, registros de extensión y grants antes de
// borrar la mascota, todo en una transacción y solo para el dueño.
func (r *PetsRepo) Delete(ctx context.Context, petID, ownerUserID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owner string
	err = tx.QueryRowContext(ctx,
		`SELECT owner_user_id FROM pets WHERE id = ?`, petID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != ownerUserID) {
		return pets.ErrNotFound
	}
	if err != nil {
		return err
	}

	cascade := []string{
		`DELETE FROM task_logs WHERE pet_id = ?`,
		`DELETE FROM tasks WHERE pet_id = ?`,
		`DELETE FROM pet_photos WHERE pet_id = ?`,
		`DELETE FROM pet_milestones WHERE pet_id = ?`,
		`DELETE FROM pet_weight_logs WHERE pet_id = ?`,
		`DELETE FROM pet_mood_logs WHERE pet_id = ?`,
		`DELETE FROM pet_achievements WHERE pet_id = ?`,
		`DELETE FROM shared_access WHERE pet_id = ?`,
	}
	for _, q := range cascade {
		if _, err := tx.ExecContext(ctx, q, petID); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM pets WHERE id = ? AND owner_user_id = ?`, petID, ownerUserID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pets.ErrNotFound
	}

	return tx.Commit()
}
