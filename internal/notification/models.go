package notification

import "time"

// Level classifies a notification for display.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one per-user message emitted by a lifecycle transition or
// seeded at startup.
type Notification struct {
	ID      string    `json:"id"`
	UserID  string    `json:"userId"`
	Message string    `json:"message"`
	Type    Level     `json:"type"`
	Read    bool      `json:"read"`
	Date    time.Time `json:"date"`
}
