package analytics

// TypeStats agrega las tasks de un tipo dentro del rango consultado.
type TypeStats struct {
	Type           string
	Total          int
	Completed      int
	CompletionRate int
}

// PetStats agrega las tasks de una mascota.
type PetStats struct {
	PetID          string
	PetName        string
	PetType        string
	Total          int
	Completed      int
	CompletionRate int
}

// Rate redondea completed/total a porcentaje entero. Con total cero
// devuelve cero, no NaN.
func Rate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(completed)/float64(total)*100 + 0.5)
}
