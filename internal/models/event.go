package models

import "time"

// Event log levels.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Event is one row of the service activity log.
type Event struct {
	ID        int       `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
