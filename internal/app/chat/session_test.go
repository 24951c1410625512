package chat

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"dmchat/internal/app/presence"
)

// fakeSessionConn implements presence.Conn for lifecycle tests.
type fakeSessionConn struct {
	mu       sync.Mutex
	pushes   []string
	failPush bool
	closed   bool
}

func (c *fakeSessionConn) Push(event string, _ any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failPush {
		return errors.New("outbound buffer full")
	}
	c.pushes = append(c.pushes, event)
	return nil
}

func (c *fakeSessionConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}

func (c *fakeSessionConn) pushCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pushes)
}

func (c *fakeSessionConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func newSessionFixture(closeUnidentified bool) (*presence.Registry, *fakeSessionConn, *Session) {
	registry := presence.NewRegistry()
	broadcaster := presence.NewBroadcaster(registry)
	conn := &fakeSessionConn{}
	return registry, conn, NewSession(registry, broadcaster, conn, closeUnidentified)
}

func TestSession_BindRegistersAndAnnounces(t *testing.T) {
	req := require.New(t)
	registry, conn, session := newSessionFixture(false)

	req.Equal(StateConnecting, session.State())

	session.Bind("alice")

	req.Equal(StateBound, session.State())
	req.Equal([]string{"alice"}, registry.Snapshot())

	// The binding connection itself receives the presence announcement
	req.Equal(1, conn.pushCount())
}

func TestSession_BindWithoutIdentity_KeepPolicy(t *testing.T) {
	req := require.New(t)
	registry, conn, session := newSessionFixture(false)

	session.Bind("")

	// Closed without registration, transport left open
	req.Equal(StateClosed, session.State())
	req.Empty(registry.Snapshot())
	req.False(conn.isClosed())
}

func TestSession_BindWithoutIdentity_ClosePolicy(t *testing.T) {
	req := require.New(t)
	registry, conn, session := newSessionFixture(true)

	session.Bind("")

	req.Equal(StateClosed, session.State())
	req.Empty(registry.Snapshot())
	req.True(conn.isClosed())
}

func TestSession_BindIgnoredAfterClose(t *testing.T) {
	req := require.New(t)
	registry, _, session := newSessionFixture(false)

	session.Disconnect()
	session.Bind("alice")

	req.Equal(StateClosed, session.State())
	req.Empty(registry.Snapshot())
}

func TestSession_DisconnectUnregistersAndAnnounces(t *testing.T) {
	req := require.New(t)
	registry := presence.NewRegistry()
	broadcaster := presence.NewBroadcaster(registry)

	aliceConn := &fakeSessionConn{}
	bobConn := &fakeSessionConn{}
	aliceSession := NewSession(registry, broadcaster, aliceConn, false)
	bobSession := NewSession(registry, broadcaster, bobConn, false)

	aliceSession.Bind("alice")
	bobSession.Bind("bob")
	req.Equal([]string{"alice", "bob"}, registry.Snapshot())

	bobBefore := bobConn.pushCount()
	aliceSession.Disconnect()

	req.Equal(StateClosed, aliceSession.State())
	req.Equal([]string{"bob"}, registry.Snapshot())

	// The survivor hears exactly one updated announcement
	req.Equal(bobBefore+1, bobConn.pushCount())
}

func TestSession_DisconnectIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := presence.NewRegistry()
	broadcaster := presence.NewBroadcaster(registry)

	aliceConn := &fakeSessionConn{}
	bobConn := &fakeSessionConn{}
	aliceSession := NewSession(registry, broadcaster, aliceConn, false)
	bobSession := NewSession(registry, broadcaster, bobConn, false)

	aliceSession.Bind("alice")
	bobSession.Bind("bob")

	bobBefore := bobConn.pushCount()
	aliceSession.Disconnect()
	aliceSession.Disconnect()

	// The second call produced no extra announcement
	req.Equal(bobBefore+1, bobConn.pushCount())
	req.Equal([]string{"bob"}, registry.Snapshot())
}

func TestSession_DisconnectFromConnectingHasNoSideEffects(t *testing.T) {
	req := require.New(t)
	registry, conn, session := newSessionFixture(false)

	session.Disconnect()

	req.Equal(StateClosed, session.State())
	req.Empty(registry.Snapshot())
	req.Equal(0, conn.pushCount())
}

func TestSession_StaleDisconnectKeepsReplacementOnline(t *testing.T) {
	req := require.New(t)
	registry := presence.NewRegistry()
	broadcaster := presence.NewBroadcaster(registry)

	// Given alice reconnected before her first session noticed the drop
	firstConn := &fakeSessionConn{}
	secondConn := &fakeSessionConn{}
	firstSession := NewSession(registry, broadcaster, firstConn, false)
	secondSession := NewSession(registry, broadcaster, secondConn, false)

	firstSession.Bind("alice")
	secondSession.Bind("alice")

	secondBefore := secondConn.pushCount()

	// When the superseded session runs its disconnect path
	firstSession.Disconnect()

	// Then alice stays online through the replacement connection, and no
	// misleading offline announcement went out
	req.Equal([]string{"alice"}, registry.Snapshot())
	req.Equal(secondBefore, secondConn.pushCount())

	conn, ok := registry.Lookup("alice")
	req.True(ok)
	req.Same(secondConn, conn.(*fakeSessionConn))
}
