package users

import "time"

// User representa una cuenta registrada.
// PasswordHash nunca sale por la API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Avatar       string

	Preferences Preferences

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PreferencesVersion es la versión vigente del esquema de preferencias.
// Antes esto era un blob JSON sin forma; ahora es una estructura tipada
// con defaults y validación en escritura.
const PreferencesVersion = 1

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type WeekStart string

const (
	WeekStartMonday WeekStart = "monday"
	WeekStartSunday WeekStart = "sunday"
)

type Preferences struct {
	Version              int       `json:"version"`
	Theme                Theme     `json:"theme"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	ReminderLeadMinutes  int       `json:"reminderLeadMinutes"`
	WeekStartsOn         WeekStart `json:"weekStartsOn"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Version:              PreferencesVersion,
		Theme:                ThemeSystem,
		NotificationsEnabled: true,
		ReminderLeadMinutes:  30,
		WeekStartsOn:         WeekStartMonday,
	}
}

func (p Preferences) Validate() error {
	switch p.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return ErrInvalidInput
	}
	switch p.WeekStartsOn {
	case WeekStartMonday, WeekStartSunday:
	default:
		return ErrInvalidInput
	}
	if p.ReminderLeadMinutes < 0 || p.ReminderLeadMinutes > 1440 {
		return ErrInvalidInput
	}
	return nil
}
