// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/cinemora/internal/logging"
	"github.com/tomtom215/cinemora/internal/metrics"
)

// broadcastBuffer is the number of messages queued for fan-out.
const broadcastBuffer = 256

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients   map[*Client]bool
	broadcast chan Message
	mu        sync.RWMutex
}

// NewHub creates a hub. It does nothing until RunWithContext is called.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan Message, broadcastBuffer),
	}
}

// RunWithContext fans out broadcasts until ctx is done, then closes every
// client. Shutdown takes priority over queued broadcasts.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// Serve implements suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	return h.RunWithContext(ctx)
}

// String implements fmt.Stringer for supervisor logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

// Broadcast queues a message for every connected client. It never blocks.
// A nil hub ignores the call.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
		metrics.RecordWebSocketBroadcast(messageType, false)
	default:
		metrics.RecordWebSocketBroadcast(messageType, true)
		logging.Warn().Str("message_type", messageType).Msg("Broadcast channel full, dropping message")
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register adds a client to the broadcast set.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	n := len(h.clients)
	h.mu.Unlock()
	metrics.WebSocketClients.Set(float64(n))
	logging.Debug().Uint64("client_id", client.id).Int("total_clients", n).Msg("Websocket client connected")
}

// Unregister removes a client and closes its send channel. Removing a
// client twice is harmless.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.WebSocketClients.Set(float64(n))
	logging.Debug().Uint64("client_id", client.id).Int("total_clients", n).Msg("Websocket client disconnected")
}

// sortedClients must be called with mu held.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients delivers in client id order and disconnects clients
// whose send buffer is full.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	var dropped []*Client
	for _, client := range h.sortedClients() {
		select {
		case client.send <- message:
		default:
			dropped = append(dropped, client)
		}
	}
	for _, client := range dropped {
		close(client.send)
		delete(h.clients, client)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if len(dropped) > 0 {
		metrics.WebSocketClients.Set(float64(n))
		logging.Warn().Int("dropped_clients", len(dropped)).Msg("Disconnected slow websocket clients")
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	clients := h.sortedClients()
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()
	metrics.WebSocketClients.Set(0)

	reason := "context_canceled"
	if ctx.Err() == context.DeadlineExceeded {
		reason = "context_deadline"
	}
	logger := logging.WithComponent("websocket-hub")
	logger.Info().
		Str("reason", reason).
		Int("clients_closed", len(clients)).
		Msg("Websocket hub stopped")
}
