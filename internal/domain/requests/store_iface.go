package requests

import (
	"context"
	"time"
)

// StoreAPI persists requests and the per-employee usage ledger.
//
// The Crear* methods take an aplicar callback that runs while the store
// holds the (empleado, año) counters row exclusively. The callback
// re-evaluates the rules against the fresh counters and mutates them;
// returning an error aborts the whole commit and nothing is written.
// This is what makes commits serializable per employee and year.
type StoreAPI interface {
	Contadores(ctx context.Context, empleadoID string, anio int) (Contadores, error)

	CrearJustificante(ctx context.Context, j *Justificante, aplicar func(cont *Contadores) error) error
	CrearPrestacion(ctx context.Context, p *Prestacion, aplicar func(cont *Contadores) error) error

	JustificantePorID(ctx context.Context, id string) (Justificante, error)
	PrestacionPorID(ctx context.Context, id string) (Prestacion, error)

	Justificantes(ctx context.Context, filtro Filtro) ([]Justificante, error)
	Prestaciones(ctx context.Context, filtro Filtro) ([]Prestacion, error)

	// ActualizarJustificante persists a state transition as a compare-and-set:
	// the row must still be in estadoPrevio or ErrEstadoInvalido is returned.
	ActualizarJustificante(ctx context.Context, j Justificante, estadoPrevio string) error

	// ResolverPrestacion transitions a benefit out of Pendiente and applies
	// the counter consumption atomically with the state change. The Pendiente
	// check happens under the store's lock; a request already resolved yields
	// ErrEstadoInvalido and leaves the counters untouched.
	ResolverPrestacion(ctx context.Context, p Prestacion, aplicar func(cont *Contadores) error) error

	// PrestacionTraslapada reports whether an active (non-rejected) benefit
	// of the same type overlaps [inicio, fin] for the employee.
	PrestacionTraslapada(ctx context.Context, empleadoID, tipo string, inicio, fin time.Time) (bool, error)
}
