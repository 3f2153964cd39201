package requests

import (
	"errors"
	"fmt"
)

var (
	// ErrEstadoInvalido: transition attempted from a non-matching lifecycle
	// state; nothing is mutated.
	ErrEstadoInvalido = errors.New("estado inválido para la transición")

	// ErrNoAutorizado: the acting role may not perform the transition.
	ErrNoAutorizado = errors.New("rol no autorizado")

	// ErrNoEncontrado: unknown request id.
	ErrNoEncontrado = errors.New("solicitud no encontrada")

	// ErrMotivoRequerido: a rejection needs a non-empty reason.
	ErrMotivoRequerido = errors.New("el motivo de rechazo es requerido")
)

// RechazoError carries the full evaluation of a commit that failed
// re-validation, so callers get every broken rule, not a bare error string.
type RechazoError struct {
	Eval Evaluation
}

func (e *RechazoError) Error() string {
	return fmt.Sprintf("solicitud rechazada: %d reglas violadas", len(e.Eval.Errores))
}
