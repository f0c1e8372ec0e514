package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindmate.app/client/internal/safety"
)

// State is the orchestrator's send gate. Only one send may be in flight;
// a send requested while Sending is refused, not queued.
type State int

const (
	StateIdle State = iota
	StateSending
)

// FailureReply is appended as an assistant message when the chat call
// fails. The failure is absorbed into the transcript rather than returned,
// so the conversation stays self-describing.
const FailureReply = "⚠️ Something went wrong. Please try again."

// Orchestrator coordinates sends, lazy session creation, optimistic
// appends, crisis flagging and session switching. Its methods block for the
// duration of their network calls and are safe to invoke from UI-spawned
// goroutines; shared state is guarded by a mutex and by a staleness check
// comparing a response's originating session against the one currently
// bound to the message store.
type Orchestrator struct {
	gateway  Gateway
	sessions *SessionStore
	messages *MessageStore
	recorder TurnRecorder
	detect   func(string) bool
	log      *zap.Logger

	mu       sync.Mutex
	state    State
	activeID string
	loadGen  uint64
	crisis   map[string]struct{}
}

func NewOrchestrator(gw Gateway, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		gateway:  gw,
		sessions: NewSessionStore(),
		messages: NewMessageStore(),
		detect:   safety.Detect,
		log:      log,
		crisis:   make(map[string]struct{}),
	}
}

// SetRecorder installs an optional local archive for completed turns.
func (o *Orchestrator) SetRecorder(r TurnRecorder) {
	o.recorder = r
}

// Bootstrap loads the session list from the service.
func (o *Orchestrator) Bootstrap(ctx context.Context) error {
	sessions, err := o.gateway.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	o.sessions.Replace(sessions)
	return nil
}

// Send runs one conversational turn. The crisis check and the optimistic
// user append happen before the network call; the assistant reply (or the
// fixed failure reply) is appended when the call resolves, unless the user
// has switched sessions in the meantime. A gateway failure during the chat
// call itself is absorbed into the transcript and not returned; a failure
// during lazy session creation is returned, since no message was recorded
// yet.
func (o *Orchestrator) Send(ctx context.Context, rawText string) error {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return ErrEmptyMessage
	}

	o.mu.Lock()
	if o.state == StateSending {
		o.mu.Unlock()
		return ErrSendInFlight
	}
	o.state = StateSending
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.state = StateIdle
		o.mu.Unlock()
	}()

	// Crisis detection runs synchronously on the exact text sent, once.
	flagged := o.detect(text)

	o.mu.Lock()
	sid := o.activeID
	o.mu.Unlock()

	// Every message is owned by a session, so a sessionless send first
	// creates one. Creation is awaited: the id is server-assigned.
	if sid == "" {
		sess, err := o.gateway.CreateSession(ctx)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		o.mu.Lock()
		o.sessions.InsertHead(sess)
		o.activeID = sess.ID
		o.loadGen++
		o.messages.Replace(sess.ID, nil)
		sid = sess.ID
		o.mu.Unlock()
	}

	userMsg := Message{
		ID:        uuid.NewString(),
		SessionID: sid,
		Role:      RoleUser,
		Content:   text,
		SentAt:    time.Now(),
	}

	o.mu.Lock()
	if flagged {
		o.crisis[userMsg.ID] = struct{}{}
	}
	o.messages.AppendIfCurrent(sid, userMsg)
	o.mu.Unlock()

	turn, err := o.gateway.SendChat(ctx, sid, text)
	if err != nil {
		o.log.Warn("chat call failed",
			zap.String("session_id", sid),
			zap.Error(err))
		o.messages.AppendIfCurrent(sid, Message{
			ID:        uuid.NewString(),
			SessionID: sid,
			Role:      RoleAssistant,
			Content:   FailureReply,
			SentAt:    time.Now(),
		})
		return nil
	}

	// Server value wins outright for the title.
	if turn.SessionTitle != "" {
		o.sessions.UpdateTitle(sid, turn.SessionTitle)
	}

	reply := Message{
		ID:        uuid.NewString(),
		SessionID: sid,
		Role:      RoleAssistant,
		Content:   turn.Reply,
		SentAt:    time.Now(),
	}
	o.messages.AppendIfCurrent(sid, reply)

	// The session may have been deleted while the turn was in flight; an
	// orphaned turn is not archived.
	if o.recorder != nil {
		if sess, ok := o.sessions.Get(sid); ok {
			if err := o.recorder.RecordTurn(sess, userMsg, reply); err != nil {
				o.log.Warn("failed to archive turn",
					zap.String("session_id", sid),
					zap.Error(err))
			}
		}
	}
	return nil
}

// SelectSession makes id the active session. The transcript is cleared
// immediately so a previous session's messages never linger on screen, then
// reloaded from the service. If the active session changes again before the
// load resolves, the stale result is discarded: last requested wins.
func (o *Orchestrator) SelectSession(ctx context.Context, id string) error {
	o.mu.Lock()
	o.activeID = id
	o.loadGen++
	gen := o.loadGen
	o.messages.Clear()
	o.mu.Unlock()

	messages, err := o.gateway.SessionMessages(ctx, id)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.loadGen != gen || o.activeID != id {
		return nil // superseded by a later switch
	}
	if err != nil {
		// Bind the store to the session anyway so a later optimistic
		// append is not mistaken for stale output.
		o.messages.Replace(id, nil)
		return fmt.Errorf("failed to load messages: %w", err)
	}
	o.messages.Replace(id, messages)
	return nil
}

// NewSession explicitly creates a conversation and makes it active.
func (o *Orchestrator) NewSession(ctx context.Context) (Session, error) {
	sess, err := o.gateway.CreateSession(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	o.mu.Lock()
	o.sessions.InsertHead(sess)
	o.activeID = sess.ID
	o.loadGen++
	o.messages.Replace(sess.ID, nil)
	o.mu.Unlock()
	return sess, nil
}

// DeleteSession removes a conversation. Deleting the active session clears
// the active pointer and the transcript. Deleting an id the service no
// longer knows succeeds: the desired end state already holds.
func (o *Orchestrator) DeleteSession(ctx context.Context, id string) error {
	if err := o.gateway.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.sessions.Remove(id)
	if o.activeID == id {
		o.activeID = ""
		o.loadGen++
		o.messages.Clear()
	}
	return nil
}

// Sessions returns the session list in display order.
func (o *Orchestrator) Sessions() []Session {
	return o.sessions.List()
}

// Messages returns the active session's transcript in append order.
func (o *Orchestrator) Messages() []Message {
	return o.messages.Messages()
}

func (o *Orchestrator) ActiveSessionID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeID
}

func (o *Orchestrator) ActiveSession() (Session, bool) {
	o.mu.Lock()
	id := o.activeID
	o.mu.Unlock()
	if id == "" {
		return Session{}, false
	}
	return o.sessions.Get(id)
}

// Sending reports whether a send is in flight.
func (o *Orchestrator) Sending() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state == StateSending
}

// IsCrisis reports whether the message with the given id was flagged by the
// crisis detector at send time. Flags are never recomputed.
func (o *Orchestrator) IsCrisis(messageID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.crisis[messageID]
	return ok
}
