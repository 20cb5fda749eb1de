package bot

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/marinops/fleetcheck/internal/core/dialogue"
)

// Handler processes one decoded event for a chat and returns the messages
// to deliver.
type Handler func(ctx context.Context, chatID int64, ev dialogue.Event) []Output

// SendFunc delivers outputs to a chat. Called from dispatch workers, so it
// must be safe for concurrent use across chats.
type SendFunc func(chatID int64, outs []Output)

const queueSize = 64

type submission struct {
	ctx context.Context
	ev  dialogue.Event
}

// Dispatcher serializes event handling per chat while letting different
// chats proceed in parallel. Each chat gets one worker goroutine and one
// queue; within a chat, events are handled strictly in arrival order, so a
// slow finalize render never stalls any other chat.
type Dispatcher struct {
	handle Handler
	send   SendFunc
	log    zerolog.Logger

	mu     sync.Mutex
	queues map[int64]chan submission
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates an idle dispatcher. Workers are spawned lazily on
// the first event for each chat.
func NewDispatcher(handle Handler, send SendFunc, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handle: handle,
		send:   send,
		log:    log,
		queues: make(map[int64]chan submission),
	}
}

// Submit enqueues an event for its chat's worker. Events are dropped (with
// a log line) if the chat's queue is full or the dispatcher is closed; the
// operator's next interaction re-prompts them anyway.
func (d *Dispatcher) Submit(ctx context.Context, chatID int64, ev dialogue.Event) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	q, ok := d.queues[chatID]
	if !ok {
		q = make(chan submission, queueSize)
		d.queues[chatID] = q
		d.wg.Add(1)
		go d.worker(chatID, q)
	}
	d.mu.Unlock()

	select {
	case q <- submission{ctx: ctx, ev: ev}:
	default:
		d.log.Warn().Int64("chat_id", chatID).Msg("event queue full, dropping event")
	}
}

// Close stops accepting events, drains all queues, and waits for workers to
// finish their in-flight work.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, q := range d.queues {
		close(q)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker(chatID int64, q chan submission) {
	defer d.wg.Done()
	for sub := range q {
		outs := d.handle(sub.ctx, chatID, sub.ev)
		if len(outs) > 0 {
			d.send(chatID, outs)
		}
	}
}
