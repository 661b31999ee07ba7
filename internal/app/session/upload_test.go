package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagePromptStoreLifecycle(t *testing.T) {
	s := NewImagePromptStore(2 * time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Begin("u1", "g1", "c1")

	p, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "g1", p.GuildID)
	assert.Equal(t, "c1", p.ChannelID)

	now = now.Add(2*time.Minute - time.Second)
	_, ok = s.Get("u1")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = s.Get("u1")
	assert.False(t, ok, "expiracion absoluta, no se renueva con Get")
}

func TestImagePromptStoreBeginReplaces(t *testing.T) {
	s := NewImagePromptStore(2 * time.Minute)
	s.Begin("u1", "g1", "c1")
	s.Begin("u1", "g1", "c2")

	p, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "c2", p.ChannelID)
}

func TestImagePromptStoreClear(t *testing.T) {
	s := NewImagePromptStore(2 * time.Minute)
	s.Begin("u1", "g1", "c1")
	s.Clear("u1")
	_, ok := s.Get("u1")
	assert.False(t, ok)
}
