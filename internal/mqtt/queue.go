package mqtt

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sweeney/countdown-timer/internal/logic"
)

// ErrQueueFull is returned when a message is dropped because the queue is full.
var ErrQueueFull = errors.New("publish queue full")

// ErrQueueClosed is returned for messages handed to a closed queue.
var ErrQueueClosed = errors.New("publish queue closed")

// drainTimeout bounds how long Close waits for pending messages.
const drainTimeout = 3 * time.Second

type queued struct {
	tr     logic.Transition
	event  SystemEvent
	system bool
}

// Queue hands messages to a Publisher on its own goroutine, so a slow
// broker never holds up the caller. Publish and PublishSystem never block;
// when the queue is full the new message is dropped.
type Queue struct {
	pub  Publisher
	msgs chan queued
	done chan struct{}

	drainTimeout time.Duration

	mu     sync.Mutex
	closed bool

	closeOnce sync.Once
	closeErr  error
}

// NewQueue starts a queue holding up to size messages in front of pub.
func NewQueue(pub Publisher, size int) *Queue {
	if size < 1 {
		size = 1
	}
	q := &Queue{
		pub:          pub,
		msgs:         make(chan queued, size),
		done:         make(chan struct{}),
		drainTimeout: drainTimeout,
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for m := range q.msgs {
		var err error
		if m.system {
			err = q.pub.PublishSystem(m.event)
		} else {
			err = q.pub.Publish(m.tr)
		}
		if err != nil {
			log.Printf("publish error: %v", err)
		}
	}
}

func (q *Queue) enqueue(m queued) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.msgs <- m:
		return nil
	default:
		return ErrQueueFull
	}
}

// Publish queues a mode change.
func (q *Queue) Publish(tr logic.Transition) error {
	return q.enqueue(queued{tr: tr})
}

// PublishSystem queues a lifecycle event.
func (q *Queue) PublishSystem(event SystemEvent) error {
	return q.enqueue(queued{event: event, system: true})
}

// Close stops accepting messages and waits for the pending ones to reach
// the wrapped publisher, which is left open. Later calls return the result
// of the first.
func (q *Queue) Close() error {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.msgs)
		q.mu.Unlock()

		select {
		case <-q.done:
		case <-time.After(q.drainTimeout):
			q.closeErr = fmt.Errorf("publish queue: %d messages not sent", len(q.msgs)+1)
		}
	})
	return q.closeErr
}
