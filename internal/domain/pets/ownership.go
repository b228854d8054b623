package pets

import "context"

// Access es el nivel de acceso efectivo de un usuario sobre una mascota.
type Access int

const (
	AccessNone Access = iota
	AccessView
	AccessEdit
	AccessOwner
)

// OwnerOf expone el ownerUserID de una mascota.
// Lo usan otros módulos vía interfaces locales para evitar ciclos.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// AccessFor resuelve owner directo primero y roles compartidos después:
// owner -> AccessOwner, caregiver -> AccessEdit, viewer -> AccessView.
func (s *Service) AccessFor(ctx context.Context, petID, userID string) (Access, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return AccessNone, ErrNotFound
	}

	if p.OwnerUserID == userID {
		return AccessOwner, nil
	}

	if s.grants == nil {
		return AccessNone, nil
	}

	role, err := s.grants.RoleFor(ctx, petID, userID)
	if err != nil {
		return AccessNone, err
	}

	switch role {
	case "owner":
		return AccessOwner, nil
	case "caregiver":
		return AccessEdit, nil
	case "viewer":
		return AccessView, nil
	default:
		return AccessNone, nil
	}
}
