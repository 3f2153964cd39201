package requests

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type contadoresKey struct {
	empleadoID string
	anio       int
}

// MemStore is an in-memory StoreAPI used by tests and local development.
// Commits for the same (empleado, año) serialize on a per-key mutex, the
// same guarantee the SQL store gets from row locking.
type MemStore struct {
	mu            sync.RWMutex
	justificantes map[string]Justificante
	prestaciones  map[string]Prestacion
	contadores    map[contadoresKey]Contadores

	locksMu sync.Mutex
	locks   map[contadoresKey]*sync.Mutex
}

func NewMemStore() *MemStore {
	return &MemStore{
		justificantes: make(map[string]Justificante),
		prestaciones:  make(map[string]Prestacion),
		contadores:    make(map[contadoresKey]Contadores),
		locks:         make(map[contadoresKey]*sync.Mutex),
	}
}

func (s *MemStore) keyLock(key contadoresKey) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

func (s *MemStore) Contadores(_ context.Context, empleadoID string, anio int) (Contadores, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := contadoresKey{empleadoID: empleadoID, anio: anio}
	if c, ok := s.contadores[key]; ok {
		return c, nil
	}
	return Contadores{EmpleadoID: empleadoID, Anio: anio}, nil
}

func (s *MemStore) conAplicar(empleadoID string, anio int, aplicar func(cont *Contadores) error, commit func(cont Contadores)) error {
	key := contadoresKey{empleadoID: empleadoID, anio: anio}
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	cont, ok := s.contadores[key]
	s.mu.RUnlock()
	if !ok {
		cont = Contadores{EmpleadoID: empleadoID, Anio: anio}
	}

	if err := aplicar(&cont); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contadores[key] = cont
	commit(cont)
	return nil
}

func (s *MemStore) CrearJustificante(_ context.Context, j *Justificante, aplicar func(cont *Contadores) error) error {
	return s.conAplicar(j.EmpleadoID, j.FechaInicio.Year(), aplicar, func(Contadores) {
		j.CreatedAt = time.Now()
		s.justificantes[j.ID] = *j
	})
}

func (s *MemStore) CrearPrestacion(_ context.Context, p *Prestacion, aplicar func(cont *Contadores) error) error {
	return s.conAplicar(p.EmpleadoID, p.FechaInicio.Year(), aplicar, func(Contadores) {
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
		s.prestaciones[p.ID] = *p
	})
}

func (s *MemStore) JustificantePorID(_ context.Context, id string) (Justificante, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if j, ok := s.justificantes[id]; ok {
		return j, nil
	}
	return Justificante{}, ErrNoEncontrado
}

func (s *MemStore) PrestacionPorID(_ context.Context, id string) (Prestacion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.prestaciones[id]; ok {
		return p, nil
	}
	return Prestacion{}, ErrNoEncontrado
}

func (s *MemStore) Justificantes(_ context.Context, filtro Filtro) ([]Justificante, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Justificante, 0)
	for _, j := range s.justificantes {
		if filtro.EmpleadoID != "" && j.EmpleadoID != filtro.EmpleadoID {
			continue
		}
		if filtro.Tipo != "" && j.Tipo != filtro.Tipo {
			continue
		}
		if filtro.Estado != "" && j.Estado != filtro.Estado {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].CreatedAt.After(out[k].CreatedAt)
		}
		return strings.Compare(out[i].ID, out[k].ID) < 0
	})
	return out, nil
}

func (s *MemStore) Prestaciones(_ context.Context, filtro Filtro) ([]Prestacion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Prestacion, 0)
	for _, p := range s.prestaciones {
		if filtro.EmpleadoID != "" && p.EmpleadoID != filtro.EmpleadoID {
			continue
		}
		if filtro.Tipo != "" && p.Tipo != filtro.Tipo {
			continue
		}
		if filtro.Estado != "" && p.Estado != filtro.Estado {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].CreatedAt.After(out[k].CreatedAt)
		}
		return strings.Compare(out[i].ID, out[k].ID) < 0
	})
	return out, nil
}

func (s *MemStore) ActualizarJustificante(_ context.Context, j Justificante, estadoPrevio string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	actual, ok := s.justificantes[j.ID]
	if !ok {
		return ErrNoEncontrado
	}
	if actual.Estado != estadoPrevio {
		return ErrEstadoInvalido
	}
	s.justificantes[j.ID] = j
	return nil
}

func (s *MemStore) ResolverPrestacion(_ context.Context, p Prestacion, aplicar func(cont *Contadores) error) error {
	if aplicar == nil {
		aplicar = func(*Contadores) error { return nil }
	}
	// Re-check the stored state once the key lock is held; the loser of two
	// concurrent resolutions must not consume counters a second time.
	verificado := func(cont *Contadores) error {
		s.mu.RLock()
		actual, ok := s.prestaciones[p.ID]
		s.mu.RUnlock()
		if !ok {
			return ErrNoEncontrado
		}
		if actual.Estado != EstadoPendiente {
			return ErrEstadoInvalido
		}
		return aplicar(cont)
	}
	return s.conAplicar(p.EmpleadoID, p.FechaInicio.Year(), verificado, func(Contadores) {
		p.UpdatedAt = time.Now()
		s.prestaciones[p.ID] = p
	})
}

func (s *MemStore) PrestacionTraslapada(_ context.Context, empleadoID, tipo string, inicio, fin time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.prestaciones {
		if p.EmpleadoID != empleadoID || p.Tipo != tipo || p.Estado == EstadoRechazada {
			continue
		}
		if !p.FechaInicio.After(fin) && !p.FechaFin.Before(inicio) {
			return true, nil
		}
	}
	return false, nil
}
