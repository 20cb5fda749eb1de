package bot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinops/fleetcheck/internal/core/dialogue"
)

func TestDispatcher_SerializesEventsPerChat(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int64][]string)

	handle := func(_ context.Context, chatID int64, ev dialogue.Event) []Output {
		txt := ev.(dialogue.Text)
		mu.Lock()
		seen[chatID] = append(seen[chatID], txt.Content)
		mu.Unlock()
		return nil
	}

	d := NewDispatcher(handle, func(int64, []Output) {}, zerolog.Nop())

	const events = 20
	for i := 0; i < events; i++ {
		d.Submit(context.Background(), 1, dialogue.Text{Content: fmt.Sprintf("a%d", i)})
		d.Submit(context.Background(), 2, dialogue.Text{Content: fmt.Sprintf("b%d", i)})
	}
	d.Close()

	require.Len(t, seen[1], events)
	require.Len(t, seen[2], events)
	for i := 0; i < events; i++ {
		assert.Equal(t, fmt.Sprintf("a%d", i), seen[1][i])
		assert.Equal(t, fmt.Sprintf("b%d", i), seen[2][i])
	}
}

func TestDispatcher_SlowChatDoesNotBlockOthers(t *testing.T) {
	slowRelease := make(chan struct{})
	fastDone := make(chan struct{})

	handle := func(_ context.Context, chatID int64, _ dialogue.Event) []Output {
		if chatID == 1 {
			<-slowRelease
			return nil
		}
		close(fastDone)
		return nil
	}

	d := NewDispatcher(handle, func(int64, []Output) {}, zerolog.Nop())

	d.Submit(context.Background(), 1, dialogue.Finalize{})
	d.Submit(context.Background(), 2, dialogue.Text{Content: "hi"})

	select {
	case <-fastDone:
	case <-time.After(2 * time.Second):
		t.Fatal("fast chat was blocked behind the slow chat's render")
	}

	close(slowRelease)
	d.Close()
}

func TestDispatcher_SendsOutputsToOwningChat(t *testing.T) {
	handle := func(_ context.Context, chatID int64, _ dialogue.Event) []Output {
		return []Output{{Text: fmt.Sprintf("reply for %d", chatID)}}
	}

	var mu sync.Mutex
	got := make(map[int64][]string)
	send := func(chatID int64, outs []Output) {
		mu.Lock()
		defer mu.Unlock()
		for _, o := range outs {
			got[chatID] = append(got[chatID], o.Text)
		}
	}

	d := NewDispatcher(handle, send, zerolog.Nop())
	d.Submit(context.Background(), 5, dialogue.Begin{})
	d.Submit(context.Background(), 6, dialogue.Begin{})
	d.Close()

	assert.Equal(t, []string{"reply for 5"}, got[5])
	assert.Equal(t, []string{"reply for 6"}, got[6])
}

func TestDispatcher_SubmitAfterCloseIsDropped(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	handle := func(_ context.Context, _ int64, _ dialogue.Event) []Output {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	}

	d := NewDispatcher(handle, func(int64, []Output) {}, zerolog.Nop())
	d.Submit(context.Background(), 1, dialogue.Begin{})
	d.Close()
	d.Submit(context.Background(), 1, dialogue.Begin{})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}
