package discord

import (
	"sync"
	"time"
)

// userLimiter frena el doble click en botones y selects: una interaccion
// por usuario por ventana, el resto se ignora en silencio.
type userLimiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	win  time.Duration
}

func newUserLimiter(window time.Duration) *userLimiter {
	return &userLimiter{next: map[string]time.Time{}, win: window}
}

func (l *userLimiter) Allow(userID string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if until, ok := l.next[userID]; ok && now.Before(until) {
		return false
	}
	// aprovechamos el paso para soltar entradas vencidas, el mapa no
	// deberia crecer con la cantidad de clicks historicos
	if len(l.next) > 1024 {
		for id, until := range l.next {
			if now.After(until) {
				delete(l.next, id)
			}
		}
	}
	l.next[userID] = now.Add(l.win)
	return true
}
