package telegram

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// StateManager maps a chat to its active backend session. Entries expire
// after the configured TTL so abandoned chats do not pile up.
type StateManager struct {
	cache *gocache.Cache
}

// NewStateManager creates a chat state manager with the given session TTL
func NewStateManager(ttl time.Duration) *StateManager {
	return &StateManager{
		cache: gocache.New(ttl, ttl/2),
	}
}

// SessionID returns the active session for the chat, if any
func (m *StateManager) SessionID(chatID int64) (string, bool) {
	v, ok := m.cache.Get(chatKey(chatID))
	if !ok {
		return "", false
	}
	return v.(string), true
}

// SetSessionID binds the chat to a backend session and refreshes the TTL
func (m *StateManager) SetSessionID(chatID int64, sessionID string) {
	m.cache.SetDefault(chatKey(chatID), sessionID)
}

// ClearSession drops the chat's session binding
func (m *StateManager) ClearSession(chatID int64) {
	m.cache.Delete(chatKey(chatID))
}

func chatKey(chatID int64) string {
	return fmt.Sprintf("chat:%d", chatID)
}
