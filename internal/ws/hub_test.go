package ws

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(id string) CheckInEvent {
	return CheckInEvent{
		RegistrationID: id,
		Nombre:         "Juan",
		Apellido:       "Gomez",
		Categorias:     []string{"INFANTIL"},
		CheckInTime:    time.Date(2026, time.February, 21, 9, 0, 0, 0, time.UTC),
	}
}

func TestBroadcastDelivers(t *testing.T) {
	hub := NewCheckInHub()
	client := &Client{Send: make(chan []byte, 4)}
	hub.Register(client)
	defer client.Close()

	hub.Broadcast(testEvent("reg-1"))

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), `"reg-1"`)
		assert.Contains(t, string(msg), `"check_in"`)
	default:
		t.Fatal("expected a broadcast message")
	}
}

func TestCloseUnregisters(t *testing.T) {
	hub := NewCheckInHub()
	client := &Client{Send: make(chan []byte, 4)}
	hub.Register(client)
	require.Equal(t, 1, hub.ClientCount())

	client.Close()
	assert.Equal(t, 0, hub.ClientCount())
	// double close is a no-op
	client.Close()
}

func TestBroadcastAfterCloseDoesNotPanic(t *testing.T) {
	hub := NewCheckInHub()
	client := &Client{Send: make(chan []byte, 4)}
	hub.Register(client)
	client.Close()

	assert.NotPanics(t, func() {
		hub.Broadcast(testEvent("reg-2"))
	})
}

func TestConcurrentBroadcastAndClose(t *testing.T) {
	hub := NewCheckInHub()
	clients := make([]*Client, 32)
	for i := range clients {
		clients[i] = &Client{Send: make(chan []byte, 1)}
		hub.Register(clients[i])
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			hub.Broadcast(testEvent("reg-3"))
		}
	}()
	go func() {
		defer wg.Done()
		for _, c := range clients {
			c.Close()
		}
	}()
	wg.Wait()
	assert.Equal(t, 0, hub.ClientCount())
}
