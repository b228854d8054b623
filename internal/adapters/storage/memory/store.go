// Package memory implementa los repositorios sobre maps en memoria.
// Sirve para modo dev y tests; un solo mutex mantiene atómicas las
// operaciones que tocan varias entidades.
package memory

import (
	"sync"

	"pet-care-tracker/internal/domain/notifications"
	"pet-care-tracker/internal/domain/petrecords"
	"pet-care-tracker/internal/domain/sharedaccess"
	"pet-care-tracker/internal/domain/tasklogs"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/users"

	petsdomain "pet-care-tracker/internal/domain/pets"
)

type Store struct {
	mu sync.RWMutex

	users         map[string]users.User
	pets          map[string]petsdomain.Pet
	grants        map[string]sharedaccess.Grant
	tasks         map[string]tasks.Task
	logs          map[string]tasklogs.Entry
	notifications map[string]notifications.Notification

	photos       map[string]petrecords.Photo
	milestones   map[string]petrecords.Milestone
	weights      map[string]petrecords.WeightEntry
	moods        map[string]petrecords.MoodEntry
	achievements map[string]petrecords.Achievement
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]users.User),
		pets:          make(map[string]petsdomain.Pet),
		grants:        make(map[string]sharedaccess.Grant),
		tasks:         make(map[string]tasks.Task),
		logs:          make(map[string]tasklogs.Entry),
		notifications: make(map[string]notifications.Notification),
		photos:        make(map[string]petrecords.Photo),
		milestones:    make(map[string]petrecords.Milestone),
		weights:       make(map[string]petrecords.WeightEntry),
		moods:         make(map[string]petrecords.MoodEntry),
		achievements:  make(map[string]petrecords.Achievement),
	}
}

func (s *Store) Users() *UsersRepo                 { return &UsersRepo{s: s} }
func (s *Store) Pets() *PetsRepo                   { return &PetsRepo{s: s} }
func (s *Store) SharedAccess() *SharedAccessRepo   { return &SharedAccessRepo{s: s} }
func (s *Store) Tasks() *TasksRepo                 { return &TasksRepo{s: s} }
func (s *Store) TaskLogs() *TaskLogsRepo           { return &TaskLogsRepo{s: s} }
func (s *Store) Notifications() *NotificationsRepo { return &NotificationsRepo{s: s} }
func (s *Store) PetRecords() *PetRecordsRepo       { return &PetRecordsRepo{s: s} }
func (s *Store) Analytics() *AnalyticsRepo         { return &AnalyticsRepo{s: s} }

// readable y editable se llaman con el lock tomado.

func (s *Store) readable(petID, userID string) bool {
	p, ok := s.pets[petID]
	if !ok {
		return false
	}
	if p.OwnerUserID == userID {
		return true
	}
	for _, g := range s.grants {
		if g.PetID == petID && g.UserID == userID {
			return true
		}
	}
	return false
}

func (s *Store) editable(petID, userID string) bool {
	p, ok := s.pets[petID]
	if !ok {
		return false
	}
	if p.OwnerUserID == userID {
		return true
	}
	for _, g := range s.grants {
		if g.PetID == petID && g.UserID == userID &&
			(g.Role == sharedaccess.RoleOwner || g.Role == sharedaccess.RoleCaregiver) {
			return true
		}
	}
	return false
}
