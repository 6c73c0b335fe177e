package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sweepInterval separa dos barridos de entradas expiradas.
const sweepInterval = time.Minute

var (
	_ Store  = (*MemoryStore)(nil)
	_ Pruner = (*MemoryStore)(nil)
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // cero = sin expiración
}

// MemoryStore Store en memoria del proceso. Se usa cuando no hay Redis configurado y en tests.
type MemoryStore struct {
	mu        sync.Mutex
	items     map[string]memoryEntry
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) get(key string) (string, bool) {
	e, ok := s.items[key]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.items, key)
		return "", false
	}
	return e.value, true
}

// Get implementa Store.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.get(key)
	return v, ok, nil
}

// sweep elimina las entradas expiradas, como mucho una vez por sweepInterval.
func (s *MemoryStore) sweep() {
	now := s.now()
	if now.Before(s.nextSweep) {
		return
	}
	s.nextSweep = now.Add(sweepInterval)
	for k, e := range s.items {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.items, k)
		}
	}
}

// Set implementa Store.
func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.items[key] = e
	return nil
}

// Incr implementa Store. Los contadores no expiran.
func (s *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	var n int64
	if v, ok := s.get(key); ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	s.items[key] = memoryEntry{value: strconv.FormatInt(n, 10)}
	return n, nil
}

// GetInt implementa Store.
func (s *MemoryStore) GetInt(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.get(key)
	if !ok {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// DeletePrefix implementa Pruner.
func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string, keep func(key string) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.items {
		if strings.HasPrefix(k, prefix) && (keep == nil || !keep(k)) {
			delete(s.items, k)
			n++
		}
	}
	return n, nil
}

// Len número de claves guardadas, expiradas o no.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
