package homework

import (
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("player session not found")

// Sessions is an in-process registry of open player sessions, keyed by the
// session id handed to the client.
type Sessions struct {
	mu      sync.RWMutex
	players map[string]*Player
}

func NewSessions() *Sessions {
	return &Sessions{players: map[string]*Player{}}
}

func (s *Sessions) Put(p *Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = p
}

func (s *Sessions) Get(id string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return p, nil
}

// Close drops a session; closing an unknown id is harmless.
func (s *Sessions) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
}
