package chat

import "context"

// Gateway is the remote conversation service as the orchestrator sees it.
// Every call may block for a network round trip; failures surface as errors
// (the HTTP client wraps them, see internal/gateway).
type Gateway interface {
	CreateSession(ctx context.Context) (Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	DeleteSession(ctx context.Context, id string) error
	SessionMessages(ctx context.Context, id string) ([]Message, error)
	SendChat(ctx context.Context, sessionID, message string) (Turn, error)
}

// TurnRecorder receives completed exchanges for local archiving. Recording
// is best-effort: the orchestrator logs failures and moves on.
type TurnRecorder interface {
	RecordTurn(session Session, user, assistant Message) error
}
