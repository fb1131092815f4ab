// Package ratelimit limita envíos repetidos de formularios públicos.
package ratelimit

import (
	"sync"
	"time"
)

// DefaultInterval tiempo mínimo entre dos envíos de la misma clave.
const DefaultInterval = 30 * time.Second

// SubmitLimiter permite un envío por clave (IP o email) cada interval.
// El estado vive en memoria; se inyecta para poder reiniciarlo en tests.
type SubmitLimiter struct {
	mu         sync.Mutex
	lastSubmit map[string]time.Time
	interval   time.Duration
	now        func() time.Time
}

// NewSubmitLimiter interval <= 0 usa DefaultInterval.
func NewSubmitLimiter(interval time.Duration) *SubmitLimiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &SubmitLimiter{
		lastSubmit: make(map[string]time.Time),
		interval:   interval,
		now:        time.Now,
	}
}

// Allow registra el envío si la clave no envió nada en el último intervalo.
func (l *SubmitLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.lastSubmit[key]; ok && now.Sub(last) < l.interval {
		return false
	}
	l.lastSubmit[key] = now
	l.prune(now)
	return true
}

// prune descarta claves vencidas para que el mapa no crezca sin límite.
func (l *SubmitLimiter) prune(now time.Time) {
	if len(l.lastSubmit) < 1024 {
		return
	}
	for k, t := range l.lastSubmit {
		if now.Sub(t) >= l.interval {
			delete(l.lastSubmit, k)
		}
	}
}

// Reset olvida todos los envíos.
func (l *SubmitLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSubmit = make(map[string]time.Time)
}
