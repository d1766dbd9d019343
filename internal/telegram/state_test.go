package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateManager_Roundtrip(t *testing.T) {
	m := NewStateManager(time.Hour)

	_, ok := m.SessionID(1)
	assert.False(t, ok)

	m.SetSessionID(1, "session-a")
	m.SetSessionID(2, "session-b")

	id, ok := m.SessionID(1)
	assert.True(t, ok)
	assert.Equal(t, "session-a", id)

	m.ClearSession(1)
	_, ok = m.SessionID(1)
	assert.False(t, ok)

	id, ok = m.SessionID(2)
	assert.True(t, ok)
	assert.Equal(t, "session-b", id)
}

func TestStateManager_Expiry(t *testing.T) {
	m := NewStateManager(10 * time.Millisecond)
	m.SetSessionID(1, "session-a")

	time.Sleep(20 * time.Millisecond)

	_, ok := m.SessionID(1)
	assert.False(t, ok, "entries expire after the TTL")
}
