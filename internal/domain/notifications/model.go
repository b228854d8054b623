package notifications

import "time"

type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
