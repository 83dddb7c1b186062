package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/ports"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []Message
	closed   bool
	failing  bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(Message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h
}

func event(userID uuid.UUID, eventType ports.TaskEventType) *ports.TaskEvent {
	return &ports.TaskEvent{
		Type:       eventType,
		UserID:     userID,
		Task:       dto.TaskResponse{ID: uuid.New(), Title: "Buy milk", UserID: userID},
		OccurredAt: time.Now().UTC(),
	}
}

func TestDeliverReachesOnlyTheOwner(t *testing.T) {
	h := startHub(t)
	alice, bob := uuid.New(), uuid.New()

	aliceTab1, aliceTab2, bobConn := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Register(aliceTab1, alice)
	h.Register(aliceTab2, alice)
	h.Register(bobConn, bob)

	require.Eventually(t, func() bool { return h.TotalClients() == 3 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, h.UserClients(alice))

	h.Deliver(event(alice, ports.TaskCreated))

	require.Eventually(t, func() bool {
		return len(aliceTab1.received()) == 1 && len(aliceTab2.received()) == 1
	}, time.Second, 10*time.Millisecond)

	msg := aliceTab1.received()[0]
	assert.Equal(t, string(ports.TaskCreated), msg.Type)

	// give the hub a moment to (wrongly) write to bob
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, bobConn.received())
}

func TestPublishDeliversLocally(t *testing.T) {
	h := startHub(t)
	alice := uuid.New()
	conn := &fakeConn{}
	h.Register(conn, alice)
	require.Eventually(t, func() bool { return h.UserClients(alice) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, h.Publish(context.Background(), event(alice, ports.TaskDeleted)))

	require.Eventually(t, func() bool { return len(conn.received()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, string(ports.TaskDeleted), conn.received()[0].Type)
}

func TestFailedWriteUnregisters(t *testing.T) {
	h := startHub(t)
	alice := uuid.New()
	conn := &fakeConn{failing: true}
	h.Register(conn, alice)
	require.Eventually(t, func() bool { return h.UserClients(alice) == 1 }, time.Second, 10*time.Millisecond)

	h.Deliver(event(alice, ports.TaskUpdated))

	require.Eventually(t, func() bool { return h.UserClients(alice) == 0 }, time.Second, 10*time.Millisecond)
	assert.True(t, conn.isClosed())
}

func TestUnregisterAndStop(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	first, second := &fakeConn{}, &fakeConn{}
	h.Register(first, uuid.New())
	h.Register(second, uuid.New())
	h.Unregister(first)

	require.Eventually(t, func() bool { return h.TotalClients() == 1 }, time.Second, 10*time.Millisecond)
	assert.True(t, first.isClosed())

	h.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	assert.True(t, second.isClosed())

	// calls after stop must not block
	h.Register(&fakeConn{}, uuid.New())
	h.Deliver(event(uuid.New(), ports.TaskCreated))
}

func TestHandleMessagePing(t *testing.T) {
	h := startHub(t)
	conn := &fakeConn{}
	h.Register(conn, uuid.New())

	frame, err := json.Marshal(Message{Type: "ping"})
	require.NoError(t, err)
	h.HandleMessage(conn, frame)
	h.HandleMessage(conn, []byte("not json"))
	h.HandleMessage(conn, []byte(`{"type":"subscribe"}`))

	require.Eventually(t, func() bool { return len(conn.received()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "pong", conn.received()[0].Type)

	// nothing is written to a connection the hub does not know
	stranger := &fakeConn{}
	h.HandleMessage(stranger, frame)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, stranger.received())
}

// exclusiveConn records whether two writes ever overlapped.
type exclusiveConn struct {
	writing  atomic.Int32
	overlaps atomic.Int32
	writes   atomic.Int32
}

func (c *exclusiveConn) WriteJSON(v interface{}) error {
	if !c.writing.CompareAndSwap(0, 1) {
		c.overlaps.Add(1)
	}
	time.Sleep(100 * time.Microsecond)
	c.writing.Store(0)
	c.writes.Add(1)
	return nil
}

func (c *exclusiveConn) Close() error { return nil }

func TestRepliesAndEventsNeverWriteConcurrently(t *testing.T) {
	h := startHub(t)
	alice := uuid.New()
	conn := &exclusiveConn{}
	h.Register(conn, alice)
	require.Eventually(t, func() bool { return h.UserClients(alice) == 1 }, time.Second, 10*time.Millisecond)

	frame, err := json.Marshal(Message{Type: "ping"})
	require.NoError(t, err)

	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			h.HandleMessage(conn, frame)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			h.Deliver(event(alice, ports.TaskUpdated))
		}
	}()
	wg.Wait()

	require.Eventually(t, func() bool { return conn.writes.Load() == 2*rounds }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, conn.overlaps.Load())
}
