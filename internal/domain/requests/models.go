package requests

import (
	"context"
	"time"
)

type Familia string

const (
	FamiliaJustificante Familia = "justificante"
	FamiliaPrestacion   Familia = "prestacion"
)

// Justificante lifecycle. A committed justificante is auto-approved.
const (
	EstadoGenerado     = "Generado"
	EstadoEntregado    = "Entregado"
	EstadoExtemporaneo = "Extemporaneo"
)

// Prestación lifecycle. Commits land in Pendiente awaiting admin sign-off.
const (
	EstadoPendiente = "Pendiente"
	EstadoAprobada  = "Aprobada"
	EstadoRechazada = "Rechazada"
)

// Draft is the client-submitted request before validation. FechaFin is
// advisory: single-day types ignore it and fixed-span types derive it.
type Draft struct {
	Tipo        string     `json:"tipo"`
	FechaInicio time.Time  `json:"fechaInicio"`
	FechaFin    *time.Time `json:"fechaFin,omitempty"`
	Motivo      string     `json:"motivo,omitempty"`
	Lugar       string     `json:"lugar,omitempty"`
}

// Contadores is the usage ledger record for one employee and year. A zero
// value (with key fields set) stands in for an absent row.
type Contadores struct {
	EmpleadoID string `json:"empleadoId"`
	Anio       int    `json:"anio"`

	SolicitudesEconomicos         int        `json:"solicitudesEconomicos"`
	DiasEconomicosUsados          int        `json:"diasEconomicosUsados"`
	FechaUltimaSolicitudEconomico *time.Time `json:"fechaUltimaSolicitudEconomico,omitempty"`

	// Permisos por horas se acumulan por quincena; PermisosMes indica a qué
	// mes corresponden los acumulados Q1/Q2.
	PermisosMes     int `json:"permisosMes"`
	PermisosHorasQ1 int `json:"permisosHorasQ1"`
	PermisosHorasQ2 int `json:"permisosHorasQ2"`

	CuidadosMaternosUsados int `json:"cuidadosMaternosUsados"`
	CuidadosMedicosUsados  int `json:"cuidadosMedicosUsados"`
}

// PermisosEnQuincena returns the accumulated hourly permits for the
// quincena containing fecha, treating counters from another month as stale.
func (c Contadores) PermisosEnQuincena(fecha time.Time, quincena int) int {
	if c.PermisosMes != int(fecha.Month()) {
		return 0
	}
	if quincena == 1 {
		return c.PermisosHorasQ1
	}
	return c.PermisosHorasQ2
}

// Violation is a single broken business rule. Uso and Limite are set for
// quota violations so callers can show current consumption.
type Violation struct {
	Codigo  string `json:"codigo"`
	Mensaje string `json:"mensaje"`
	Uso     *int   `json:"uso,omitempty"`
	Limite  *int   `json:"limite,omitempty"`
}

const (
	CodigoFechaInvalida    = "fecha_invalida"
	CodigoTipoDesconocido  = "tipo_desconocido"
	CodigoCupoExcedido     = "cupo_excedido"
	CodigoLugarRequerido   = "lugar_requerido"
	CodigoDiaNoLaboral     = "dia_no_laboral"
	CodigoPeriodoBloqueado = "periodo_bloqueado"
	CodigoSinDiasLaborales = "sin_dias_laborales"
	CodigoNoElegible       = "no_elegible"
	CodigoTraslape         = "traslape"
)

// Evaluation is the outcome of running the rule evaluator over a draft.
// When Valido is false, Errores carries every broken rule at once.
type Evaluation struct {
	Valido               bool        `json:"valido"`
	Errores              []Violation `json:"errores"`
	Advertencias         []string    `json:"advertencias,omitempty"`
	FechaInicioCalculada time.Time   `json:"fechaInicioCalculada"`
	FechaFinCalculada    time.Time   `json:"fechaFinCalculada"`
	DiasSolicitados      int         `json:"diasSolicitados"`
	DocumentosRequeridos []string    `json:"documentosRequeridos,omitempty"`
	DiasMaximos          *int        `json:"diasMaximos,omitempty"`
}

func (e Evaluation) Mensajes() []string {
	out := make([]string, 0, len(e.Errores))
	for _, v := range e.Errores {
		out = append(out, v.Mensaje)
	}
	return out
}

type Justificante struct {
	ID              string    `json:"id"`
	EmpleadoID      string    `json:"empleadoId"`
	Tipo            string    `json:"tipo"`
	FechaInicio     time.Time `json:"fechaInicio"`
	FechaFin        time.Time `json:"fechaFin"`
	DiasSolicitados int       `json:"diasSolicitados"`
	Motivo          string    `json:"motivo,omitempty"`
	Lugar           string    `json:"lugar,omitempty"`
	Estado          string    `json:"estado"`
	CreadoPor       string    `json:"creadoPor"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Prestacion struct {
	ID              string    `json:"id"`
	EmpleadoID      string    `json:"empleadoId"`
	Tipo            string    `json:"tipo"`
	FechaInicio     time.Time `json:"fechaInicio"`
	FechaFin        time.Time `json:"fechaFin"`
	DiasSolicitados int       `json:"diasSolicitados"`
	Motivo          string    `json:"motivo,omitempty"`
	Estado          string    `json:"estado"`
	AprobadaPor     string    `json:"aprobadaPor,omitempty"`
	MotivoRechazo   string    `json:"motivoRechazo,omitempty"`
	CreadoPor       string    `json:"creadoPor"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Event is the domain event contract consumed by the notification emitter.
type Event struct {
	Tipo       string  `json:"tipo"`
	EmpleadoID string  `json:"empleadoId"`
	RequestID  string  `json:"requestId"`
	Familia    Familia `json:"familia"`
	Solicitud  string  `json:"solicitud"`
	Detalle    string  `json:"detalle,omitempty"`
}

const (
	EventoSolicitudCreada    = "request_created"
	EventoSolicitudAprobada  = "request_approved"
	EventoSolicitudRechazada = "request_rejected"
)

type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// Filtro narrows list queries; empty fields match everything.
type Filtro struct {
	EmpleadoID string
	Tipo       string
	Estado     string
}
