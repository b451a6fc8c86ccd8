package websocket

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// SessionDirectory maps a participant identity to its single active
// connection, used for direct-addressed delivery. Reconnecting replaces
// the mapping; the superseded connection is not forcibly closed, it just
// stops receiving direct messages.
type SessionDirectory struct {
	mu       sync.RWMutex
	sessions map[string]*Client
}

func NewSessionDirectory() *SessionDirectory {
	return &SessionDirectory{
		sessions: make(map[string]*Client),
	}
}

func (d *SessionDirectory) Register(userID string, client *Client) {
	d.mu.Lock()
	prev := d.sessions[userID]
	d.sessions[userID] = client
	d.mu.Unlock()

	if prev != nil && prev != client {
		log.Info().Str("userID", userID).Str("clientID", client.ID).Msg("ws: session replaced by newer connection")
	}
}

func (d *SessionDirectory) Resolve(userID string) (*Client, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	client, ok := d.sessions[userID]
	return client, ok
}

// Unregister removes the mapping only if it still points at the handle
// being torn down. A close racing a reconnect must not clobber the newer
// registration.
func (d *SessionDirectory) Unregister(userID string, client *Client) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if current, ok := d.sessions[userID]; ok && current == client {
		delete(d.sessions, userID)
	}
}

func (d *SessionDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}
