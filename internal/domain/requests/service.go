package requests

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sirh/internal/domain/auth"
	"sirh/internal/domain/calendar"
	"sirh/internal/domain/catalog"
	"sirh/internal/domain/empleados"
)

// Actor is the authenticated principal driving an operation.
type Actor struct {
	UserID     string
	EmpleadoID string
	Rol        string
}

// EmpleadoDirectory resolves the employee profile needed for eligibility
// checks.
type EmpleadoDirectory interface {
	PorID(ctx context.Context, id string) (empleados.Empleado, error)
}

// Service is the workflow controller. Validation is read-only and can be
// called any number of times; Crear* re-runs the same rules against fresh
// counters inside the store's lock, so a stale validation can never commit.
type Service struct {
	Store     StoreAPI
	Empleados EmpleadoDirectory
	Eval      *Evaluator
	Emitter   Emitter
	Logger    *slog.Logger
}

func NewService(store StoreAPI, dir EmpleadoDirectory, eval *Evaluator, emitter Emitter, logger *slog.Logger) *Service {
	return &Service{Store: store, Empleados: dir, Eval: eval, Emitter: emitter, Logger: logger}
}

// ValidarJustificante evaluates a draft without committing anything.
func (s *Service) ValidarJustificante(ctx context.Context, empleadoID string, draft Draft) (Evaluation, error) {
	if draft.FechaInicio.IsZero() {
		return s.Eval.EvaluarJustificante(draft, Contadores{}), nil
	}
	cont, err := s.Store.Contadores(ctx, empleadoID, draft.FechaInicio.Year())
	if err != nil {
		return Evaluation{}, fmt.Errorf("leyendo contadores: %w", err)
	}
	return s.Eval.EvaluarJustificante(draft, cont), nil
}

// CrearJustificante commits a draft. The rules run again inside the
// counters lock; if any fail there the commit aborts with a RechazoError
// carrying every violation.
func (s *Service) CrearJustificante(ctx context.Context, actor Actor, empleadoID string, draft Draft) (Justificante, error) {
	if !auth.PuedeVerTodo(actor.Rol) && actor.EmpleadoID != empleadoID {
		return Justificante{}, ErrNoAutorizado
	}
	if draft.FechaInicio.IsZero() {
		return Justificante{}, &RechazoError{Eval: s.Eval.EvaluarJustificante(draft, Contadores{})}
	}

	// FechaInicio keys the counters row the store locks; it must be set
	// before the commit callback runs.
	j := Justificante{
		ID:          uuid.NewString(),
		EmpleadoID:  empleadoID,
		Tipo:        draft.Tipo,
		FechaInicio: calendar.DateOnly(draft.FechaInicio),
		Motivo:      draft.Motivo,
		Lugar:       draft.Lugar,
		Estado:      EstadoGenerado,
		CreadoPor:   actor.UserID,
	}

	err := s.Store.CrearJustificante(ctx, &j, func(cont *Contadores) error {
		eval := s.Eval.EvaluarJustificante(draft, *cont)
		if !eval.Valido {
			return &RechazoError{Eval: eval}
		}
		j.FechaInicio = eval.FechaInicioCalculada
		j.FechaFin = eval.FechaFinCalculada
		j.DiasSolicitados = eval.DiasSolicitados

		switch draft.Tipo {
		case catalog.JustificanteDiaEconomico:
			cont.SolicitudesEconomicos++
			cont.DiasEconomicosUsados += eval.DiasSolicitados
			inicio := eval.FechaInicioCalculada
			cont.FechaUltimaSolicitudEconomico = &inicio
		case catalog.JustificantePermisoHoras:
			s.aplicarPermisoHoras(cont, eval.FechaInicioCalculada)
		}
		return nil
	})
	if err != nil {
		return Justificante{}, err
	}

	s.emit(ctx, Event{
		Tipo:       EventoSolicitudCreada,
		EmpleadoID: empleadoID,
		RequestID:  j.ID,
		Familia:    FamiliaJustificante,
		Solicitud:  j.Tipo,
	})
	s.Logger.InfoContext(ctx, "justificante creado",
		slog.String("id", j.ID),
		slog.String("empleadoId", empleadoID),
		slog.String("tipo", j.Tipo),
	)
	return j, nil
}

// aplicarPermisoHoras rolls the quincena counters forward when the month
// changes, then consumes one permit.
func (s *Service) aplicarPermisoHoras(cont *Contadores, fecha time.Time) {
	mes := int(fecha.Month())
	if cont.PermisosMes != mes {
		cont.PermisosMes = mes
		cont.PermisosHorasQ1 = 0
		cont.PermisosHorasQ2 = 0
	}
	if fecha.Day() <= 15 {
		cont.PermisosHorasQ1++
	} else {
		cont.PermisosHorasQ2++
	}
}

// ValidarPrestacion evaluates a benefit draft without committing.
func (s *Service) ValidarPrestacion(ctx context.Context, empleadoID string, draft Draft) (Evaluation, error) {
	emp, err := s.Empleados.PorID(ctx, empleadoID)
	if err != nil {
		return Evaluation{}, fmt.Errorf("leyendo empleado: %w", err)
	}
	if draft.FechaInicio.IsZero() {
		return s.Eval.EvaluarPrestacion(draft, emp, Contadores{}, false), nil
	}
	cont, err := s.Store.Contadores(ctx, empleadoID, draft.FechaInicio.Year())
	if err != nil {
		return Evaluation{}, fmt.Errorf("leyendo contadores: %w", err)
	}
	traslape, err := s.traslape(ctx, empleadoID, draft)
	if err != nil {
		return Evaluation{}, err
	}
	return s.Eval.EvaluarPrestacion(draft, emp, cont, traslape), nil
}

func (s *Service) traslape(ctx context.Context, empleadoID string, draft Draft) (bool, error) {
	fin := draft.FechaInicio
	if draft.FechaFin != nil {
		fin = *draft.FechaFin
	}
	return s.Store.PrestacionTraslapada(ctx, empleadoID, draft.Tipo, draft.FechaInicio, fin)
}

// CrearPrestacion commits a benefit request in Pendiente. Counters are not
// consumed yet; that happens on approval.
func (s *Service) CrearPrestacion(ctx context.Context, actor Actor, empleadoID string, draft Draft) (Prestacion, error) {
	if !auth.PuedeVerTodo(actor.Rol) && actor.EmpleadoID != empleadoID {
		return Prestacion{}, ErrNoAutorizado
	}
	emp, err := s.Empleados.PorID(ctx, empleadoID)
	if err != nil {
		return Prestacion{}, fmt.Errorf("leyendo empleado: %w", err)
	}
	if draft.FechaInicio.IsZero() {
		return Prestacion{}, &RechazoError{Eval: s.Eval.EvaluarPrestacion(draft, emp, Contadores{}, false)}
	}
	traslape, err := s.traslape(ctx, empleadoID, draft)
	if err != nil {
		return Prestacion{}, err
	}

	p := Prestacion{
		ID:          uuid.NewString(),
		EmpleadoID:  empleadoID,
		Tipo:        draft.Tipo,
		FechaInicio: calendar.DateOnly(draft.FechaInicio),
		Motivo:      draft.Motivo,
		Estado:      EstadoPendiente,
		CreadoPor:   actor.UserID,
	}

	err = s.Store.CrearPrestacion(ctx, &p, func(cont *Contadores) error {
		eval := s.Eval.EvaluarPrestacion(draft, emp, *cont, traslape)
		if !eval.Valido {
			return &RechazoError{Eval: eval}
		}
		p.FechaInicio = eval.FechaInicioCalculada
		p.FechaFin = eval.FechaFinCalculada
		p.DiasSolicitados = eval.DiasSolicitados
		return nil
	})
	if err != nil {
		return Prestacion{}, err
	}

	s.emit(ctx, Event{
		Tipo:       EventoSolicitudCreada,
		EmpleadoID: empleadoID,
		RequestID:  p.ID,
		Familia:    FamiliaPrestacion,
		Solicitud:  p.Tipo,
	})
	s.Logger.InfoContext(ctx, "prestación creada",
		slog.String("id", p.ID),
		slog.String("empleadoId", empleadoID),
		slog.String("tipo", p.Tipo),
	)
	return p, nil
}

// AprobarPrestacion transitions Pendiente to Aprobada and consumes the
// benefit's annual counter, both under the counters lock.
func (s *Service) AprobarPrestacion(ctx context.Context, actor Actor, id string) (Prestacion, error) {
	if !auth.PuedeAprobar(actor.Rol) {
		return Prestacion{}, ErrNoAutorizado
	}
	p, err := s.Store.PrestacionPorID(ctx, id)
	if err != nil {
		return Prestacion{}, err
	}
	if p.Estado != EstadoPendiente {
		return Prestacion{}, ErrEstadoInvalido
	}

	tipo, err := s.Eval.Catalogo.Prestacion(p.Tipo)
	if err != nil {
		return Prestacion{}, err
	}

	p.Estado = EstadoAprobada
	p.AprobadaPor = actor.UserID
	err = s.Store.ResolverPrestacion(ctx, p, func(cont *Contadores) error {
		switch tipo.CampoContador {
		case catalog.ContadorCuidadosMaternos:
			cont.CuidadosMaternosUsados += p.DiasSolicitados
		case catalog.ContadorCuidadosMedicos:
			cont.CuidadosMedicosUsados += p.DiasSolicitados
		}
		return nil
	})
	if err != nil {
		return Prestacion{}, err
	}

	s.emit(ctx, Event{
		Tipo:       EventoSolicitudAprobada,
		EmpleadoID: p.EmpleadoID,
		RequestID:  p.ID,
		Familia:    FamiliaPrestacion,
		Solicitud:  p.Tipo,
	})
	s.Logger.InfoContext(ctx, "prestación aprobada",
		slog.String("id", p.ID),
		slog.String("aprobadaPor", actor.UserID),
	)
	return p, nil
}

// RechazarPrestacion transitions Pendiente to Rechazada. A reason is
// mandatory and is checked before anything changes.
func (s *Service) RechazarPrestacion(ctx context.Context, actor Actor, id, motivo string) (Prestacion, error) {
	if !auth.PuedeAprobar(actor.Rol) {
		return Prestacion{}, ErrNoAutorizado
	}
	if motivo == "" {
		return Prestacion{}, ErrMotivoRequerido
	}
	p, err := s.Store.PrestacionPorID(ctx, id)
	if err != nil {
		return Prestacion{}, err
	}
	if p.Estado != EstadoPendiente {
		return Prestacion{}, ErrEstadoInvalido
	}

	p.Estado = EstadoRechazada
	p.AprobadaPor = actor.UserID
	p.MotivoRechazo = motivo
	if err := s.Store.ResolverPrestacion(ctx, p, nil); err != nil {
		return Prestacion{}, err
	}

	s.emit(ctx, Event{
		Tipo:       EventoSolicitudRechazada,
		EmpleadoID: p.EmpleadoID,
		RequestID:  p.ID,
		Familia:    FamiliaPrestacion,
		Solicitud:  p.Tipo,
		Detalle:    motivo,
	})
	s.Logger.InfoContext(ctx, "prestación rechazada",
		slog.String("id", p.ID),
		slog.String("rechazadaPor", actor.UserID),
	)
	return p, nil
}

// EntregarJustificante marks a generated slip as delivered to the office.
func (s *Service) EntregarJustificante(ctx context.Context, actor Actor, id string) (Justificante, error) {
	j, err := s.Store.JustificantePorID(ctx, id)
	if err != nil {
		return Justificante{}, err
	}
	if !auth.PuedeVerTodo(actor.Rol) && actor.EmpleadoID != j.EmpleadoID {
		return Justificante{}, ErrNoAutorizado
	}
	if j.Estado != EstadoGenerado {
		return Justificante{}, ErrEstadoInvalido
	}
	j.Estado = EstadoEntregado
	if err := s.Store.ActualizarJustificante(ctx, j, EstadoGenerado); err != nil {
		return Justificante{}, err
	}
	return j, nil
}

func (s *Service) Justificante(ctx context.Context, actor Actor, id string) (Justificante, error) {
	j, err := s.Store.JustificantePorID(ctx, id)
	if err != nil {
		return Justificante{}, err
	}
	if !auth.PuedeVerTodo(actor.Rol) && actor.EmpleadoID != j.EmpleadoID {
		return Justificante{}, ErrNoAutorizado
	}
	return j, nil
}

func (s *Service) Prestacion(ctx context.Context, actor Actor, id string) (Prestacion, error) {
	p, err := s.Store.PrestacionPorID(ctx, id)
	if err != nil {
		return Prestacion{}, err
	}
	if !auth.PuedeVerTodo(actor.Rol) && actor.EmpleadoID != p.EmpleadoID {
		return Prestacion{}, ErrNoAutorizado
	}
	return p, nil
}

// Justificantes lists slips, scoped to the actor's own employee unless the
// role can see everything.
func (s *Service) Justificantes(ctx context.Context, actor Actor, filtro Filtro) ([]Justificante, error) {
	if !auth.PuedeVerTodo(actor.Rol) {
		filtro.EmpleadoID = actor.EmpleadoID
	}
	return s.Store.Justificantes(ctx, filtro)
}

func (s *Service) Prestaciones(ctx context.Context, actor Actor, filtro Filtro) ([]Prestacion, error) {
	if !auth.PuedeVerTodo(actor.Rol) {
		filtro.EmpleadoID = actor.EmpleadoID
	}
	return s.Store.Prestaciones(ctx, filtro)
}

// Contadores exposes the ledger snapshot for an employee and year.
func (s *Service) Contadores(ctx context.Context, actor Actor, empleadoID string, anio int) (Contadores, error) {
	if !auth.PuedeVerTodo(actor.Rol) && actor.EmpleadoID != empleadoID {
		return Contadores{}, ErrNoAutorizado
	}
	return s.Store.Contadores(ctx, empleadoID, anio)
}

func (s *Service) emit(ctx context.Context, event Event) {
	if s.Emitter == nil {
		return
	}
	s.Emitter.Emit(ctx, event)
}
