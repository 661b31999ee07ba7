package session

import (
	"sync"
	"time"
)

// RoDraft es lo que el usuario lleno en el primer modal, esperando el link
// de la prueba. Vive solo en memoria; si el proceso muere, el usuario
// reinicia desde el panel.
type RoDraft struct {
	GuildID   string
	UserID    string
	OrgPM     string
	Fac       string
	Motivo    string
	CreatedAt time.Time
}

// RoDraftStore guarda borradores por guild+usuario con TTL. No hay goroutine
// de limpieza: barremos expirados en cada acceso.
type RoDraftStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	drafts map[string]RoDraft
	now    func() time.Time
}

func NewRoDraftStore(ttl time.Duration) *RoDraftStore {
	return &RoDraftStore{
		ttl:    ttl,
		drafts: make(map[string]RoDraft),
		now:    time.Now,
	}
}

func draftKey(guildID, userID string) string { return guildID + ":" + userID }

// Put registra (o reemplaza) el borrador del usuario y resetea su TTL.
func (s *RoDraftStore) Put(d RoDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	d.CreatedAt = s.now()
	s.drafts[draftKey(d.GuildID, d.UserID)] = d
}

// Get devuelve el borrador vigente. Un borrador con edad >= TTL ya no existe.
func (s *RoDraftStore) Get(guildID, userID string) (RoDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	d, ok := s.drafts[draftKey(guildID, userID)]
	return d, ok
}

func (s *RoDraftStore) Delete(guildID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftKey(guildID, userID))
}

// sweep corre con el lock tomado.
func (s *RoDraftStore) sweep() {
	now := s.now()
	for k, d := range s.drafts {
		if now.Sub(d.CreatedAt) >= s.ttl {
			delete(s.drafts, k)
		}
	}
}
