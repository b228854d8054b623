package sharedaccess

import "time"

// Role define qué puede hacer un usuario sobre una mascota compartida.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleCaregiver Role = "caregiver"
	RoleViewer    Role = "viewer"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleOwner, RoleCaregiver, RoleViewer:
		return true
	default:
		return false
	}
}

// Grant asocia un usuario no-dueño a una mascota con un rol.
// El par (PetID, UserID) se deduplica en Grant(): re-otorgar actualiza el rol.
type Grant struct {
	ID     string
	PetID  string
	UserID string
	Role   Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
