package tasks

import "time"

// TaskType define los tipos de cuidado soportados.
type TaskType string

const (
	TypeFeeding    TaskType = "feeding"
	TypeWalk       TaskType = "walk"
	TypePlay       TaskType = "play"
	TypeTreat      TaskType = "treat"
	TypeMedication TaskType = "medication"
	TypeGrooming   TaskType = "grooming"
	TypeVet        TaskType = "vet"
	TypeOther      TaskType = "other"
)

func ValidType(t string) bool {
	switch TaskType(t) {
	case TypeFeeding, TypeWalk, TypePlay, TypeTreat, TypeMedication, TypeGrooming, TypeVet, TypeOther:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ValidPriority(p string) bool {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Recurrence es solo metadata informativa: nada materializa
// ocurrencias futuras.
type Recurrence string

const (
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func ValidRecurrence(r string) bool {
	switch Recurrence(r) {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// Task es una actividad de cuidado agendada para una mascota.
// CompletedAt != nil significa completada; la transición es one-way.
type Task struct {
	ID    string
	PetID string

	Title       string
	Description string
	Type        TaskType
	Priority    Priority

	ScheduledTime time.Time
	CompletedAt   *time.Time

	IsRecurring       bool
	RecurrencePattern Recurrence

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overdue es estado derivado, nunca persistido.
func (t Task) Overdue(now time.Time) bool {
	return t.CompletedAt == nil && t.ScheduledTime.Before(now)
}

// TaskWithPet agrega los datos de la mascota para listado.
type TaskWithPet struct {
	Task

	PetName string
	PetType string
}
