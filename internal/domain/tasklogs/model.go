package tasklogs

import "time"

// Mood registra cómo salió la actividad.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodBad   Mood = "bad"
)

func ValidMood(m string) bool {
	switch Mood(m) {
	case MoodGreat, MoodGood, MoodOkay, MoodBad:
		return true
	default:
		return false
	}
}

// Entry es el registro inmutable de una completación de task.
// Se crea exactamente una vez por completación y nunca se edita.
type Entry struct {
	ID     string
	TaskID string
	PetID  string // denormalizado para filtrar sin join extra

	CompletedAt time.Time

	Notes    string
	Duration *int // minutos
	Quantity *int
	Mood     Mood // vacío = no reportado
}

// EntryWithContext agrega los datos de task y mascota para listado.
type EntryWithContext struct {
	Entry

	TaskTitle string
	TaskType  string
	PetName   string
	PetType   string
}
