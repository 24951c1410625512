package presence

import (
	"errors"
	"sync"
)

// fakeConn records pushed events and implements the Conn contract for tests.
type fakeConn struct {
	mu       sync.Mutex
	pushes   []Event
	failPush bool
	closed   bool
}

func (c *fakeConn) Push(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failPush {
		return errors.New("outbound buffer full")
	}

	c.pushes = append(c.pushes, Event{Event: event, Payload: payload})
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}

func (c *fakeConn) events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Event, len(c.pushes))
	copy(out, c.pushes)
	return out
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}
