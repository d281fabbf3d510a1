package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Mem es el backend in-process. go-cache es un map guardado por RWMutex
// con expiración por entrada; el janitor interno queda deshabilitado y el
// barrido lo dispara SweepExpired (el sweeper del server).
type Mem struct {
	c          *gocache.Cache
	defaultTTL time.Duration
}

func NewMemory(defaultTTL time.Duration) *Mem {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	// cleanupInterval 0: sin janitor propio, barremos nosotros.
	return &Mem{c: gocache.New(defaultTTL, 0), defaultTTL: defaultTTL}
}

func (m *Mem) Get(_ context.Context, id string) (*Session, error) {
	v, ok := m.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	s, ok := v.(*Session)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Mem) Set(_ context.Context, s *Session, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	m.c.Set(s.ID, s, ttl)
	return nil
}

func (m *Mem) Delete(_ context.Context, id string) error {
	m.c.Delete(id)
	return nil
}

func (m *Mem) SweepExpired(_ context.Context) (int, error) {
	before := m.c.ItemCount()
	m.c.DeleteExpired()
	swept := before - m.c.ItemCount()
	if swept < 0 {
		swept = 0
	}
	return swept, nil
}

func (m *Mem) Close() error { return nil }
