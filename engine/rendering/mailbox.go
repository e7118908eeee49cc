package rendering

import (
	"context"
	"sync"
)

// Mailbox is an unbounded FIFO of messages. Push never blocks; Pop blocks until a message is
// available or the context ends.
type Mailbox struct {
	mu     sync.Mutex
	queue  []Message
	closed bool
	notify chan struct{}
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{notify: make(chan struct{}, 1)}
}

// Push appends msg. Pushing to a closed mailbox drops the message.
func (m *Mailbox) Push(msg Message) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.queue = append(m.queue, msg)
	// notify is only closed under mu, so the send cannot race Close.
	select {
	case m.notify <- struct{}{}:
	default:
	}
	m.mu.Unlock()
}

// Len returns the number of queued messages.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close wakes up any waiting Pop. Queued messages can still be drained.
func (m *Mailbox) Close() {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.notify)
	}
	m.mu.Unlock()
}

// TryPop returns the oldest message without blocking.
func (m *Mailbox) TryPop() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil, false
	}
	msg := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	return msg, true
}

// Pop returns the oldest message, waiting for one when the queue is empty.
//
// Parameters:
//   - ctx: cancels the wait
//
// Returns:
//   - Message: the oldest message
//   - bool: false when ctx ended or the mailbox is closed and drained
func (m *Mailbox) Pop(ctx context.Context) (Message, bool) {
	for {
		if msg, ok := m.TryPop(); ok {
			return msg, true
		}
		select {
		case <-ctx.Done():
			return nil, false
		case _, open := <-m.notify:
			if !open {
				return m.TryPop()
			}
		}
	}
}
