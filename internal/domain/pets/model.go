package pets

import "time"

// PetType define los tipos soportados.
type PetType string

const (
	TypeDog   PetType = "dog"
	TypeCat   PetType = "cat"
	TypeBird  PetType = "bird"
	TypeFish  PetType = "fish"
	TypeOther PetType = "other"
)

func ValidType(t string) bool {
	switch PetType(t) {
	case TypeDog, TypeCat, TypeBird, TypeFish, TypeOther:
		return true
	default:
		return false
	}
}

// Pet representa una mascota registrada y su perfil completo.
// Age/Weight/AdoptionDate van como punteros: nil = sin dato.
type Pet struct {
	ID          string
	OwnerUserID string

	Name   string
	Type   PetType
	Breed  string
	Age    *int
	Weight *float64
	Avatar string

	FavoriteToys string
	Allergies    string
	SpecialNeeds string
	AdoptionDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
