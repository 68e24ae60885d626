package models

import "time"

// ChatMessage is one persisted assistant turn. The log is append-only and
// cleared in bulk per conductor.
type ChatMessage struct {
	ID          int64     `db:"id" json:"id"`
	ConductorID int64     `db:"conductor_id" json:"conductor_id"`
	Role        string    `db:"role" json:"role"`
	Content     string    `db:"content" json:"content"`
	SessionID   string    `db:"session_id" json:"session_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Turn is a conversational message as the client sends it.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
