package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mindmate.app/client/internal/auth"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *auth.TokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens, err := auth.NewTokenStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	return New(srv.URL, 5*time.Second, tokens, zap.NewNop()), tokens
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	require.NoError(t, tokens.Save("tok-123"))

	_, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestCreateSessionDecodesNullTitle(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sessions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"s1","title":null,"created_at":"2025-06-01T10:30:00"}`))
	}))

	sess, err := c.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, "", sess.Title)
	assert.Equal(t, 2025, sess.CreatedAt.Year())
}

func TestSendChatRoundTrip(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s1", body["session_id"])
		assert.Equal(t, "hello", body["message"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"hi there","session_title":"hello"}`))
	}))

	turn, err := c.SendChat(context.Background(), "s1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", turn.Reply)
	assert.Equal(t, "hello", turn.SessionTitle)
}

func TestDeleteSessionTreats404AsSuccess(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Session not found"}`, http.StatusNotFound)
	}))

	assert.NoError(t, c.DeleteSession(context.Background(), "gone"))
}

func TestUnauthorizedClearsTokenAndWraps(t *testing.T) {
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid token"}`, http.StatusUnauthorized)
	}))
	require.NoError(t, tokens.Save("stale-token"))

	_, err := c.ListSessions(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnauthorized, remote.Status)
	assert.Equal(t, "", tokens.Token())
}

func TestServerErrorSurfacesDetail(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"model overloaded"}`, http.StatusInternalServerError)
	}))

	_, err := c.SendChat(context.Background(), "s1", "hello")
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusInternalServerError, remote.Status)
	assert.Contains(t, remote.Error(), "model overloaded")
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestLoginStoresToken(t *testing.T) {
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "me@example.com", body["email"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fresh-token"}`))
	}))

	require.NoError(t, c.Login(context.Background(), "me@example.com", "hunter2"))
	assert.Equal(t, "fresh-token", tokens.Token())
}

func TestSessionMessagesDecodeInOrder(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/s1/messages", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"m1","role":"user","content":"hello","created_at":"2025-06-01T10:30:00"},
			{"id":"m2","role":"assistant","content":"hi","created_at":"2025-06-01T10:30:05"}
		]`))
	}))

	msgs, err := c.SessionMessages(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, "s1", msgs[0].SessionID)
	assert.Equal(t, "assistant", string(msgs[1].Role))
}
