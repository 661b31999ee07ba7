package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoDraftStorePutGet(t *testing.T) {
	s := NewRoDraftStore(10 * time.Minute)

	s.Put(RoDraft{GuildID: "g1", UserID: "u1", OrgPM: "PM", Fac: "Lotus", Motivo: "invasion"})

	d, ok := s.Get("g1", "u1")
	require.True(t, ok)
	assert.Equal(t, "PM", d.OrgPM)
	assert.Equal(t, "Lotus", d.Fac)
	assert.False(t, d.CreatedAt.IsZero())

	// otra guild, mismo usuario: no cruza
	_, ok = s.Get("g2", "u1")
	assert.False(t, ok)
}

func TestRoDraftStoreOverwriteResetsTTL(t *testing.T) {
	s := NewRoDraftStore(10 * time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Put(RoDraft{GuildID: "g1", UserID: "u1", Motivo: "primero"})

	now = now.Add(9 * time.Minute)
	s.Put(RoDraft{GuildID: "g1", UserID: "u1", Motivo: "segundo"})

	// 9m + 5m > TTL original, pero el Put reseteo el reloj
	now = now.Add(5 * time.Minute)
	d, ok := s.Get("g1", "u1")
	require.True(t, ok)
	assert.Equal(t, "segundo", d.Motivo)
}

func TestRoDraftStoreExpiry(t *testing.T) {
	s := NewRoDraftStore(10 * time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Put(RoDraft{GuildID: "g1", UserID: "u1"})

	now = now.Add(10*time.Minute - time.Second)
	_, ok := s.Get("g1", "u1")
	assert.True(t, ok, "todavia dentro del TTL")

	now = now.Add(time.Second)
	_, ok = s.Get("g1", "u1")
	assert.False(t, ok, "edad == TTL ya expira")

	// y el sweep lo borro de verdad, no solo lo escondio
	s.mu.Lock()
	assert.Empty(t, s.drafts)
	s.mu.Unlock()
}

func TestRoDraftStoreDelete(t *testing.T) {
	s := NewRoDraftStore(10 * time.Minute)
	s.Put(RoDraft{GuildID: "g1", UserID: "u1"})
	s.Delete("g1", "u1")
	_, ok := s.Get("g1", "u1")
	assert.False(t, ok)
}
