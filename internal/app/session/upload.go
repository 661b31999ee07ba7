package session

import (
	"sync"
	"time"
)

// ImagePrompt: el bot pidio "manda la imagen del panel en este canal" y
// espera el proximo mensaje con imagen del usuario.
type ImagePrompt struct {
	GuildID   string
	ChannelID string
	ExpiresAt time.Time
}

// ImagePromptStore guarda prompts por usuario con expiracion absoluta
// (2 minutos en produccion). Expirado => no existe.
type ImagePromptStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	prompts map[string]ImagePrompt
	now     func() time.Time
}

func NewImagePromptStore(ttl time.Duration) *ImagePromptStore {
	return &ImagePromptStore{
		ttl:     ttl,
		prompts: make(map[string]ImagePrompt),
		now:     time.Now,
	}
}

// Begin abre (o reemplaza) el prompt del usuario.
func (s *ImagePromptStore) Begin(userID, guildID, channelID string) ImagePrompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := ImagePrompt{
		GuildID:   guildID,
		ChannelID: channelID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.prompts[userID] = p
	return p
}

func (s *ImagePromptStore) Get(userID string) (ImagePrompt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prompts[userID]
	if !ok {
		return ImagePrompt{}, false
	}
	if !s.now().Before(p.ExpiresAt) {
		delete(s.prompts, userID)
		return ImagePrompt{}, false
	}
	return p, true
}

func (s *ImagePromptStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prompts, userID)
}
