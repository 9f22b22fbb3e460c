// Package ws pushes live check-in events to connected venue dashboards.
package ws

import (
	"encoding/json"
	"sync"
	"time"
)

// CheckInEvent is broadcast when a pilot is checked in at the gate.
type CheckInEvent struct {
	Type           string    `json:"type"`
	RegistrationID string    `json:"registration_id"`
	Nombre         string    `json:"nombre"`
	Apellido       string    `json:"apellido"`
	Categorias     []string  `json:"categorias"`
	CheckInTime    time.Time `json:"check_in_time"`
}

type Client struct {
	Send   chan []byte
	hub    *CheckInHub
	mu     sync.Mutex
	closed bool
}

func (c *Client) Close() {
	if c.hub != nil {
		c.hub.unregister(c)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// trySend drops the message when the client is closed or its buffer is full;
// a slow or disconnecting dashboard must never block or panic a broadcast.
func (c *Client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// CheckInHub maintains the set of dashboard connections and broadcasts
// check-in events to all of them.
type CheckInHub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewCheckInHub() *CheckInHub {
	return &CheckInHub{clients: make(map[*Client]struct{})}
}

func (h *CheckInHub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
}

func (h *CheckInHub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Broadcast fans the event out; slow consumers are skipped rather than
// blocking the check-in path.
func (h *CheckInHub) Broadcast(ev CheckInEvent) {
	if ev.Type == "" {
		ev.Type = "check_in"
	}
	data, _ := json.Marshal(ev)
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.trySend(data)
	}
}

func (h *CheckInHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
