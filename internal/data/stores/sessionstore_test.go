package stores

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinops/fleetcheck/internal/core/inspection"
)

func TestSessionStore_CreateGetDestroy(t *testing.T) {
	s := NewSessionStore()

	_, ok := s.Get(1)
	assert.False(t, ok)

	sess := s.Create(1, time.Now())
	assert.Equal(t, int64(1), sess.ChatID)
	assert.Equal(t, inspection.StateSelectingInspector, sess.State)

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, s.Len())

	s.Destroy(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	// Destroying again is harmless.
	s.Destroy(1)
}

func TestSessionStore_CreateReplacesExisting(t *testing.T) {
	s := NewSessionStore()

	first := s.Create(1, time.Now())
	first.AppendText("stale violation")

	second := s.Create(1, time.Now())
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Empty(t, got.Violations)
	assert.Equal(t, 1, s.Len())
}

func TestSessionStore_ConcurrentChatsAreIsolated(t *testing.T) {
	s := NewSessionStore()

	const chats = 8
	const appends = 50

	var wg sync.WaitGroup
	for c := int64(0); c < chats; c++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			sess := s.Create(chatID, time.Now())
			for i := 0; i < appends; i++ {
				sess.AppendText(fmt.Sprintf("chat %d violation %d", chatID, i))
				sess.AttachPhoto(fmt.Sprintf("chat-%d-photo-%d", chatID, i), "")
			}
		}(c)
	}
	wg.Wait()

	for c := int64(0); c < chats; c++ {
		sess, ok := s.Get(c)
		require.True(t, ok)
		require.Len(t, sess.Violations, appends)
		for i, v := range sess.Violations {
			assert.Equal(t, fmt.Sprintf("chat %d violation %d", c, i), v.Description)
			assert.Equal(t, fmt.Sprintf("chat-%d-photo-%d", c, i), v.PhotoRef)
		}
	}
}
