package chat

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session is one conversation thread. Title is empty until the service
// assigns one after the first exchange; the UI falls back to a placeholder.
type Session struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

// Message is a single transcript entry. IDs for locally authored messages
// are client-generated and unrelated to any server-side id.
type Message struct {
	ID        string
	SessionID string
	Role      Role
	Content   string
	SentAt    time.Time
}

// Turn is the service's answer to one chat exchange. SessionTitle is empty
// unless the service (re)assigned a title for the session.
type Turn struct {
	Reply        string
	SessionTitle string
}
