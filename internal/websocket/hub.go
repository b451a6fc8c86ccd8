package websocket

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Hub tracks which connections are subscribed to which room topic and
// fans broadcasts out to them. It knows nothing about room lifecycle
// rules; the room store owns those.
type Hub struct {
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex

	stats   HubStats
	statsMu sync.RWMutex
}

type HubStats struct {
	TotalRooms       int       `json:"total_rooms"`
	TotalClients     int       `json:"total_clients"`
	TotalConnections int64     `json:"total_connections"`
	MessagesSent     int64     `json:"messages_sent"`
	MessagesDropped  int64     `json:"messages_dropped"`
	LastReset        time.Time `json:"last_reset"`
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		stats: HubStats{
			LastReset: time.Now(),
		},
	}
}

// Subscribe adds a connection to a room topic.
func (h *Hub) Subscribe(roomToken string, client *Client) {
	h.mu.Lock()
	if h.rooms[roomToken] == nil {
		h.rooms[roomToken] = make(map[*Client]struct{})
	}
	h.rooms[roomToken][client] = struct{}{}
	size := len(h.rooms[roomToken])
	h.mu.Unlock()

	h.updateStats(func(stats *HubStats) {
		stats.TotalConnections++
	})

	log.Info().Str("roomToken", roomToken).Str("clientID", client.ID).Str("userID", client.UserID).Int("roomSize", size).Msg("ws: client subscribed to room")
}

// Unsubscribe removes a connection from a room topic.
func (h *Hub) Unsubscribe(roomToken string, client *Client) {
	h.mu.Lock()
	if clients, ok := h.rooms[roomToken]; ok {
		delete(clients, client)

		// Drop empty topics so the map does not grow forever.
		if len(clients) == 0 {
			delete(h.rooms, roomToken)
		}
	}
	h.mu.Unlock()

	log.Info().Str("roomToken", roomToken).Str("clientID", client.ID).Str("userID", client.UserID).Msg("ws: client unsubscribed from room")
}

// BroadcastToRoom delivers data to every connection currently subscribed
// to the room topic, including the sender's. The subscriber list is a
// snapshot taken before any send: no lock is held while writing, and a
// slow or dead peer costs only its own delivery.
func (h *Hub) BroadcastToRoom(roomToken string, data []byte) {
	h.mu.RLock()
	var targets []*Client
	if clients, ok := h.rooms[roomToken]; ok {
		targets = make([]*Client, 0, len(clients))
		for client := range clients {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	sent, dropped := 0, 0
	for _, client := range targets {
		if client.Deliver(data) {
			sent++
			continue
		}
		dropped++
		log.Warn().Str("roomToken", roomToken).Str("clientID", client.ID).Msg("ws: slow or closed consumer, dropping message")
	}

	h.updateStats(func(stats *HubStats) {
		stats.MessagesSent += int64(sent)
		stats.MessagesDropped += int64(dropped)
	})

	log.Debug().Str("roomToken", roomToken).Int("targets", len(targets)).Int("dropped", dropped).Msg("ws: broadcast completed")
}

// RoomClients returns a snapshot of the connections subscribed to a room.
func (h *Hub) RoomClients(roomToken string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var clients []*Client
	for client := range h.rooms[roomToken] {
		clients = append(clients, client)
	}
	return clients
}

func (h *Hub) RoomSize(roomToken string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomToken])
}

func (h *Hub) GetHubStats() HubStats {
	h.statsMu.RLock()
	stats := h.stats
	h.statsMu.RUnlock()

	h.mu.RLock()
	stats.TotalRooms = len(h.rooms)
	total := 0
	for _, clients := range h.rooms {
		total += len(clients)
	}
	stats.TotalClients = total
	h.mu.RUnlock()

	return stats
}

func (h *Hub) updateStats(fn func(*HubStats)) {
	h.statsMu.Lock()
	fn(&h.stats)
	h.statsMu.Unlock()
}

// Close shuts every connection down.
func (h *Hub) Close() {
	h.mu.RLock()
	var allClients []*Client
	for _, clients := range h.rooms {
		for client := range clients {
			allClients = append(allClients, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range allClients {
		client.Close()
	}

	log.Info().Int("clients", len(allClients)).Msg("ws: hub shutdown completed")
}
