package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startManager(t *testing.T) *Manager {
	t.Helper()

	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go m.Start(ctx)

	return m
}

func waitForConnections(t *testing.T, m *Manager, userID string, want int) {
	t.Helper()

	for i := 0; i < 200; i++ {
		m.mutex.RLock()
		got := len(m.clients[userID])
		m.mutex.RUnlock()
		if got == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("user %s never reached %d connections", userID, want)
}

func TestSendToUserDeliversToAllConnections(t *testing.T) {
	m := startManager(t)

	first := &Client{UserID: "u1", send: make(chan []byte, 1), manager: m}
	second := &Client{UserID: "u1", send: make(chan []byte, 1), manager: m}
	other := &Client{UserID: "u2", send: make(chan []byte, 1), manager: m}
	m.register <- first
	m.register <- second
	m.register <- other
	waitForConnections(t, m, "u1", 2)
	waitForConnections(t, m, "u2", 1)

	m.SendToUser("u1", []byte("hello"))

	for _, client := range []*Client{first, second} {
		select {
		case payload := <-client.send:
			assert.Equal(t, "hello", string(payload))
		case <-time.After(time.Second):
			t.Fatal("payload never delivered")
		}
	}

	select {
	case <-other.send:
		t.Fatal("payload delivered to the wrong user")
	default:
	}
}

func TestSendToUserSkipsUnknownUser(t *testing.T) {
	m := startManager(t)

	require.NotPanics(t, func() {
		m.SendToUser("nobody", []byte("hello"))
	})
}

// Fan-out must stay safe while connections for the same user churn.
func TestSendToUserDuringConnectionChurn(t *testing.T) {
	m := startManager(t)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			m.register <- &Client{UserID: "u1", send: make(chan []byte, 1), manager: m}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			m.SendToUser("u1", []byte("ping"))
		}
	}()

	wg.Wait()
}
