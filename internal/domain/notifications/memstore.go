package notifications

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore backs tests and local runs without a database.
type MemStore struct {
	mu    sync.RWMutex
	items map[string]Notificacion
}

func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string]Notificacion)}
}

func (s *MemStore) Crear(_ context.Context, n Notificacion) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()
	s.items[n.ID] = n
	return n.ID, nil
}

func (s *MemStore) Lista(_ context.Context, empleadoID string, limit, offset int) ([]Notificacion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notificacion, 0)
	for _, n := range s.items {
		if n.EmpleadoID == empleadoID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if offset >= len(out) {
		return []Notificacion{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) NoLeidas(_ context.Context, empleadoID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, n := range s.items {
		if n.EmpleadoID == empleadoID && !n.Leida {
			total++
		}
	}
	return total, nil
}

func (s *MemStore) MarcarLeida(_ context.Context, empleadoID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.items[id]; ok && n.EmpleadoID == empleadoID {
		n.Leida = true
		s.items[id] = n
	}
	return nil
}

func (s *MemStore) MarcarTodasLeidas(_ context.Context, empleadoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.items {
		if n.EmpleadoID == empleadoID && !n.Leida {
			n.Leida = true
			s.items[id] = n
		}
	}
	return nil
}
