package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindmate.app/client/internal/chat"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func turn(sessionID string, n int, at time.Time) (chat.Message, chat.Message) {
	user := chat.Message{
		ID:        sessionID + "-u" + string(rune('0'+n)),
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   "user says",
		SentAt:    at,
	}
	assistant := chat.Message{
		ID:        sessionID + "-a" + string(rune('0'+n)),
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Content:   "assistant says",
		SentAt:    at.Add(time.Second),
	}
	return user, assistant
}

func TestRecordTurnAndReadBack(t *testing.T) {
	s := openTestStore(t)

	sess := chat.Session{ID: "s1", Title: ""}
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	u1, a1 := turn("s1", 1, base)
	require.NoError(t, s.RecordTurn(sess, u1, a1))

	// Title arrives with the second turn; the session row is updated.
	sess.Title = "feeling anxious"
	u2, a2 := turn("s1", 2, base.Add(time.Minute))
	require.NoError(t, s.RecordTurn(sess, u2, a2))

	sessions, err := s.Sessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "feeling anxious", sessions[0].Title)

	msgs, err := s.Messages("s1")
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, u1.ID, msgs[0].ID)
	assert.Equal(t, chat.RoleUser, msgs[0].Role)
	assert.Equal(t, a1.ID, msgs[1].ID)
	assert.Equal(t, u2.ID, msgs[2].ID)
	assert.Equal(t, a2.ID, msgs[3].ID)
}

func TestRecordTurnIsIdempotentPerMessage(t *testing.T) {
	s := openTestStore(t)

	sess := chat.Session{ID: "s1"}
	u, a := turn("s1", 1, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, s.RecordTurn(sess, u, a))
	require.NoError(t, s.RecordTurn(sess, u, a))

	msgs, err := s.Messages("s1")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestMessagesForUnknownSessionIsEmpty(t *testing.T) {
	s := openTestStore(t)

	msgs, err := s.Messages("nope")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
