package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/sharedaccess"
	"pet-care-tracker/internal/domain/users"
)

var errDuplicate = errors.New("memory: duplicate key")

type UsersRepo struct {
	s *Store
}

func (r *UsersRepo) Create(_ context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return errDuplicate
		}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *UsersRepo) GetByID(_ context.Context, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *UsersRepo) UpdateProfile(_ context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[u.ID]
	if !ok {
		return users.ErrNotFound
	}
	current.Name = u.Name
	current.Email = u.Email
	current.Avatar = u.Avatar
	current.UpdatedAt = u.UpdatedAt
	r.s.users[u.ID] = current
	return nil
}

func (r *UsersRepo) UpdatePreferences(_ context.Context, userID string, p users.Preferences, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[userID]
	if !ok {
		return users.ErrNotFound
	}
	current.Preferences = p
	current.UpdatedAt = updatedAt
	r.s.users[userID] = current
	return nil
}

type PetsRepo struct {
	s *Store
}

func (r *PetsRepo) Create(_ context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.pets[p.ID] = p
	return nil
}

func (r *PetsRepo) GetByID(_ context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(_ context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []pets.Pet
	for _, p := range r.s.pets {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PetsRepo) Update(_ context.Context, p pets.Pet, editorUserID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.pets[p.ID]
	if !ok || !r.s.editable(p.ID, editorUserID) {
		return pets.ErrNotFound
	}
	p.OwnerUserID = current.OwnerUserID
	p.CreatedAt = current.CreatedAt
	r.s.pets[p.ID] = p
	return nil
}

func (r *PetsRepo) Delete(_ context.Context, petID, ownerUserID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[petID]
	if !ok || p.OwnerUserID != ownerUserID {
		return pets.ErrNotFound
	}

	for id, e := range r.s.logs {
		if e.PetID == petID {
			delete(r.s.logs, id)
		}
	}
	for id, t := range r.s.tasks {
		if t.PetID == petID {
			delete(r.s.tasks, id)
		}
	}
	for id, ph := range r.s.photos {
		if ph.PetID == petID {
			delete(r.s.photos, id)
		}
	}
	for id, m := range r.s.milestones {
		if m.PetID == petID {
			delete(r.s.milestones, id)
		}
	}
	for id, w := range r.s.weights {
		if w.PetID == petID {
			delete(r.s.weights, id)
		}
	}
	for id, m := range r.s.moods {
		if m.PetID == petID {
			delete(r.s.moods, id)
		}
	}
	for id, a := range r.s.achievements {
		if a.PetID == petID {
			delete(r.s.achievements, id)
		}
	}
	for id, g := range r.s.grants {
		if g.PetID == petID {
			delete(r.s.grants, id)
		}
	}
	delete(r.s.pets, petID)
	return nil
}

type SharedAccessRepo struct {
	s *Store
}

func (r *SharedAccessRepo) Create(_ context.Context, g sharedaccess.Grant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.grants {
		if existing.PetID == g.PetID && existing.UserID == g.UserID {
			return errDuplicate
		}
	}
	r.s.grants[g.ID] = g
	return nil
}

func (r *SharedAccessRepo) UpdateRole(_ context.Context, id string, role sharedaccess.Role, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.grants[id]
	if !ok {
		return sharedaccess.ErrNotFound
	}
	g.Role = role
	g.UpdatedAt = updatedAt
	r.s.grants[id] = g
	return nil
}

func (r *SharedAccessRepo) GetByID(_ context.Context, id string) (sharedaccess.Grant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.grants[id]
	if !ok {
		return sharedaccess.Grant{}, sharedaccess.ErrNotFound
	}
	return g, nil
}

func (r *SharedAccessRepo) GetByPetAndUser(_ context.Context, petID, userID string) (sharedaccess.Grant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.grants {
		if g.PetID == petID && g.UserID == userID {
			return g, nil
		}
	}
	return sharedaccess.Grant{}, sharedaccess.ErrNotFound
}

func (r *SharedAccessRepo) ListByPet(_ context.Context, petID string) ([]sharedaccess.Grant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []sharedaccess.Grant
	for _, g := range r.s.grants {
		if g.PetID == petID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SharedAccessRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.grants[id]; !ok {
		return sharedaccess.ErrNotFound
	}
	delete(r.s.grants, id)
	return nil
}
