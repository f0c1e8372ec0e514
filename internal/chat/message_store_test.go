package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageStoreAppendOrder(t *testing.T) {
	s := NewMessageStore()
	s.Replace("sess-1", nil)

	assert.True(t, s.AppendIfCurrent("sess-1", Message{ID: "m1", Content: "first"}))
	assert.True(t, s.AppendIfCurrent("sess-1", Message{ID: "m2", Content: "second"}))

	msgs := s.Messages()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
}

func TestMessageStoreDiscardsStaleAppend(t *testing.T) {
	s := NewMessageStore()
	s.Replace("sess-1", nil)
	s.Replace("sess-2", nil)

	assert.False(t, s.AppendIfCurrent("sess-1", Message{ID: "late"}))
	assert.Equal(t, 0, s.Len())
}

func TestMessageStoreReplaceIsWholesale(t *testing.T) {
	s := NewMessageStore()
	s.Replace("sess-1", []Message{{ID: "old"}})

	s.Replace("sess-2", []Message{{ID: "a"}, {ID: "b"}})

	assert.Equal(t, "sess-2", s.SessionID())
	msgs := s.Messages()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].ID)
}

func TestMessageStoreClearUnbinds(t *testing.T) {
	s := NewMessageStore()
	s.Replace("sess-1", []Message{{ID: "m"}})

	s.Clear()

	assert.Equal(t, "", s.SessionID())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.AppendIfCurrent("sess-1", Message{ID: "late"}))
}
