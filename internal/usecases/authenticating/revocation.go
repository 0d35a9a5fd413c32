package authenticating

import (
	"sync"
	"time"
)

// revocationList guarda os jti dos tokens encerrados por logout até a expiração deles
type revocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newRevocationList() *revocationList {
	return &revocationList{revoked: make(map[string]time.Time)}
}

func (l *revocationList) revoke(jti string, expiresAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[jti] = expiresAt
}

func (l *revocationList) isRevoked(jti string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiresAt, ok := l.revoked[jti]
	if !ok {
		return false
	}
	if now.After(expiresAt) {
		delete(l.revoked, jti)
		return false
	}
	return true
}

// purge remove os jti já expirados
func (l *revocationList) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for jti, expiresAt := range l.revoked {
		if now.After(expiresAt) {
			delete(l.revoked, jti)
			removed++
		}
	}
	return removed
}
