package domain

import "time"

// SessionSnapshot es una foto del estado de una sesion de chat.
type SessionSnapshot struct {
	ID        string    `json:"session_id"`
	Draft     string    `json:"draft"`
	Messages  []Message `json:"messages"`
	Pending   int       `json:"pending"`
	ExpiresAt time.Time `json:"expires_at"`
}
