package catalog

import (
	"errors"

	"sirh/internal/domain/empleados"
)

// ErrTipoDesconocido marks a lookup for a type key the catalog does not
// define. Callers surface it as a validation rejection, never a crash.
var ErrTipoDesconocido = errors.New("tipo no definido en el catálogo")

// DatePolicy describes how the engine derives the effective date range of
// a request from its draft.
type DatePolicy string

const (
	// PolicyDiaUnico: single-day request, any supplied end date is ignored.
	PolicyDiaUnico DatePolicy = "dia_unico"
	// PolicySpanFijo: fixed span of N consecutive working days from the
	// start date; the end date is always derived.
	PolicySpanFijo DatePolicy = "span_fijo"
	// PolicyRango: explicit start/end range, working days counted.
	PolicyRango DatePolicy = "rango"
)

type JustificationType struct {
	Clave         string     `json:"clave"`
	Nombre        string     `json:"nombre"`
	DatePolicy    DatePolicy `json:"-"`
	RequiereLugar bool       `json:"requiereLugar"`
}

type BenefitType struct {
	Clave                string   `json:"clave"`
	Nombre               string   `json:"nombre"`
	Descripcion          string   `json:"descripcion"`
	DiasMaximos          *int     `json:"diasMaximos"`
	DocumentosRequeridos []string `json:"documentosRequeridos"`
	Requisitos           []string `json:"requisitos"`
	// CampoContador names the yearly usage counter this benefit consumes;
	// empty for benefits without an annual accumulator.
	CampoContador string `json:"-"`
}

// DiasMaximosPara resolves the per-type day cap, which depends on the
// employee population for some benefits (Apoyo y Asistencia has the lower
// cap).
func (b BenefitType) DiasMaximosPara(tipo empleados.Tipo) *int {
	if b.DiasMaximos == nil {
		return nil
	}
	limite := *b.DiasMaximos
	switch b.Clave {
	case PrestacionCuidadosMedicos:
		if tipo == empleados.TipoApoyo {
			limite = 12
		}
	case PrestacionFallecimiento:
		if tipo == empleados.TipoApoyo {
			limite = 5
		}
	}
	return &limite
}

const (
	JustificanteDiaEconomico    = "Dia Economico"
	JustificantePermisoHoras    = "Permiso por Horas"
	JustificanteISSTEP          = "ISSTEP"
	JustificanteComisionDia     = "Comision Todo el Dia"
	JustificanteComisionEntrada = "Comision Entrada"
	JustificanteComisionSalida  = "Comision Salida"

	PrestacionLicenciaMedica   = "Licencia Medica"
	PrestacionCuidadosMaternos = "Cuidados Maternos/Paternos"
	PrestacionCuidadosMedicos  = "Cuidados Medicos Familiares"
	PrestacionFallecimiento    = "Fallecimiento de Familiar"
	PrestacionMediaHora        = "Media Hora de Tolerancia"
	PrestacionNupcias          = "Licencia por Nupcias"
	PrestacionPaternidad       = "Licencia por Paternidad"
)

// Counter field names shared with the usage ledger.
const (
	ContadorCuidadosMaternos = "cuidados_maternos_usados"
	ContadorCuidadosMedicos  = "cuidados_medicos_usados"
)

func dias(n int) *int { return &n }

var justificantes = map[string]JustificationType{
	JustificanteDiaEconomico: {
		Clave:      JustificanteDiaEconomico,
		Nombre:     "Día Económico",
		DatePolicy: PolicySpanFijo,
	},
	JustificantePermisoHoras: {
		Clave:      JustificantePermisoHoras,
		Nombre:     "Permiso por Horas",
		DatePolicy: PolicyDiaUnico,
	},
	JustificanteISSTEP: {
		Clave:      JustificanteISSTEP,
		Nombre:     "ISSTEP",
		DatePolicy: PolicyRango,
	},
	JustificanteComisionDia: {
		Clave:         JustificanteComisionDia,
		Nombre:        "Comisión Todo el Día",
		DatePolicy:    PolicyRango,
		RequiereLugar: true,
	},
	JustificanteComisionEntrada: {
		Clave:         JustificanteComisionEntrada,
		Nombre:        "Comisión Entrada",
		DatePolicy:    PolicyDiaUnico,
		RequiereLugar: true,
	},
	JustificanteComisionSalida: {
		Clave:         JustificanteComisionSalida,
		Nombre:        "Comisión Salida",
		DatePolicy:    PolicyDiaUnico,
		RequiereLugar: true,
	},
}

var prestaciones = map[string]BenefitType{
	PrestacionLicenciaMedica: {
		Clave:                PrestacionLicenciaMedica,
		Nombre:               "Licencia Médica",
		Descripcion:          "Licencia por enfermedad con dictamen médico del ISSTEP",
		DocumentosRequeridos: []string{"Dictamen médico ISSTEP"},
		Requisitos:           []string{"Antigüedad mínima de 6 meses + 1 día"},
	},
	PrestacionCuidadosMaternos: {
		Clave:       PrestacionCuidadosMaternos,
		Nombre:      "Cuidados Maternos/Paternos",
		Descripcion: "Para hijos de hasta 8 años 11 meses",
		DiasMaximos: dias(7),
		DocumentosRequeridos: []string{
			"Dictamen médico ISSTEP",
			"Acta de nacimiento del hijo",
			"Carnet ISSTEP",
		},
		Requisitos: []string{
			"Antigüedad mínima de 6 meses + 1 día",
			"Hijos hasta 8 años 11 meses",
			"Máximo 7 días hábiles por año natural",
		},
		CampoContador: ContadorCuidadosMaternos,
	},
	PrestacionCuidadosMedicos: {
		Clave:       PrestacionCuidadosMedicos,
		Nombre:      "Cuidados Médicos Familiares",
		Descripcion: "Para cónyuge, padres o hijos dependientes económicamente",
		DiasMaximos: dias(14),
		DocumentosRequeridos: []string{
			"Dictamen médico ISSTEP",
			"Comprobante de parentesco",
		},
		Requisitos: []string{
			"Antigüedad mínima de 6 meses + 1 día",
			"Apoyo/Asistencia: máx 12 días hábiles/año",
			"Docente: máx 14 días hábiles/año",
		},
		CampoContador: ContadorCuidadosMedicos,
	},
	PrestacionFallecimiento: {
		Clave:                PrestacionFallecimiento,
		Nombre:               "Permiso por Fallecimiento de Familiar",
		Descripcion:          "Para hijos, cónyuge, padres o hermanos",
		DiasMaximos:          dias(6),
		DocumentosRequeridos: []string{"Acta de defunción"},
		Requisitos: []string{
			"Familiar: hijos, cónyuge, padres, hermanos",
			"Apoyo: hasta 5 días hábiles",
			"Docente: hasta 6 días hábiles",
		},
	},
	PrestacionMediaHora: {
		Clave:       PrestacionMediaHora,
		Nombre:      "Media Hora de Tolerancia",
		Descripcion: "Para padres con hijos en lactantes, maternal, preescolar o primaria",
		DocumentosRequeridos: []string{
			"Constancia de estudios",
			"Acta de nacimiento del hijo",
			"Boucher de inscripción",
		},
		Requisitos: []string{
			"Diferencia de traslado > 10 minutos",
			"Entrada escuela = entrada trabajo (8:00 AM)",
			"Suspendido en periodos vacacionales y receso escolar",
		},
	},
	PrestacionNupcias: {
		Clave:                PrestacionNupcias,
		Nombre:               "Licencia por Nupcias",
		Descripcion:          "5 días hábiles con goce de sueldo",
		DiasMaximos:          dias(5),
		DocumentosRequeridos: []string{"Acta de matrimonio"},
		Requisitos:           []string{"Antigüedad mínima de 6 meses + 1 día"},
	},
	PrestacionPaternidad: {
		Clave:       PrestacionPaternidad,
		Nombre:      "Licencia por Paternidad",
		Descripcion: "6 días con goce de sueldo por nacimiento o adopción",
		DiasMaximos: dias(6),
		DocumentosRequeridos: []string{
			"Constancia de concubinato o alumbramiento",
			"Acta de nacimiento o adopción",
		},
		Requisitos: []string{"Antigüedad mínima de 6 meses + 1 día"},
	},
}

// Store is the read-only catalog of request types. Reference data is
// administrative and compiled in; request-time access is lookup only.
type Store struct{}

func NewStore() *Store { return &Store{} }

func (s *Store) Justificante(clave string) (JustificationType, error) {
	if t, ok := justificantes[clave]; ok {
		return t, nil
	}
	return JustificationType{}, ErrTipoDesconocido
}

func (s *Store) Prestacion(clave string) (BenefitType, error) {
	if t, ok := prestaciones[clave]; ok {
		return t, nil
	}
	return BenefitType{}, ErrTipoDesconocido
}

func (s *Store) Justificantes() []JustificationType {
	out := make([]JustificationType, 0, len(justificantes))
	for _, clave := range []string{
		JustificanteDiaEconomico,
		JustificantePermisoHoras,
		JustificanteISSTEP,
		JustificanteComisionDia,
		JustificanteComisionEntrada,
		JustificanteComisionSalida,
	} {
		out = append(out, justificantes[clave])
	}
	return out
}

func (s *Store) Prestaciones() []BenefitType {
	out := make([]BenefitType, 0, len(prestaciones))
	for _, clave := range []string{
		PrestacionLicenciaMedica,
		PrestacionCuidadosMaternos,
		PrestacionCuidadosMedicos,
		PrestacionFallecimiento,
		PrestacionMediaHora,
		PrestacionNupcias,
		PrestacionPaternidad,
	} {
		out = append(out, prestaciones[clave])
	}
	return out
}
