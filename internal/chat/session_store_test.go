package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreOrdering(t *testing.T) {
	s := NewSessionStore()
	s.InsertHead(Session{ID: "a"})
	s.InsertHead(Session{ID: "b"})
	s.InsertHead(Session{ID: "c"})

	ids := make([]string, 0, 3)
	for _, sess := range s.List() {
		ids = append(ids, sess.ID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestSessionStoreUpdateTitleKeepsOrder(t *testing.T) {
	s := NewSessionStore()
	s.InsertHead(Session{ID: "a"})
	s.InsertHead(Session{ID: "b"})

	s.UpdateTitle("a", "Feeling anxious")

	list := s.List()
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "Feeling anxious", list[1].Title)
}

func TestSessionStoreRemoveMissingIsNoop(t *testing.T) {
	s := NewSessionStore()
	s.InsertHead(Session{ID: "a"})

	s.Remove("nope")
	assert.Equal(t, 1, s.Len())

	s.Remove("a")
	assert.Equal(t, 0, s.Len())
}

func TestSessionStoreListIsACopy(t *testing.T) {
	s := NewSessionStore()
	s.InsertHead(Session{ID: "a", Title: "original"})

	list := s.List()
	list[0].Title = "mutated"

	again := s.List()
	assert.Equal(t, "original", again[0].Title)
}
