package empleados

import "time"

type Tipo string

const (
	TipoDocente Tipo = "Docente"
	TipoApoyo   Tipo = "Apoyo y Asistencia"
)

type Nombramiento string

const (
	NombramientoBase           Nombramiento = "Base"
	NombramientoInterino       Nombramiento = "Interino"
	NombramientoLimitado       Nombramiento = "Limitado"
	NombramientoGravidez       Nombramiento = "Gravidez"
	NombramientoPrejubilatorio Nombramiento = "Prejubilatorio"
	NombramientoHonorarios     Nombramiento = "Honorarios"
)

type Empleado struct {
	ID                   string       `json:"id"`
	NombreCompleto       string       `json:"nombreCompleto"`
	ClavesPresupuestales string       `json:"clavesPresupuestales"`
	Horario              string       `json:"horario"`
	Adscripcion          string       `json:"adscripcion"`
	NumeroAsistencia     string       `json:"numeroAsistencia"`
	Tipo                 Tipo         `json:"tipo"`
	Nombramiento         Nombramiento `json:"nombramiento"`
	FechaIngreso         time.Time    `json:"fechaIngreso"`
	Activo               bool         `json:"activo"`
	Email                string       `json:"email,omitempty"`
	Telefono             string       `json:"telefono,omitempty"`
}

// AntiguedadMeses returns whole months of service as of the given date.
func (e Empleado) AntiguedadMeses(asOf time.Time) int {
	meses := (asOf.Year()-e.FechaIngreso.Year())*12 + int(asOf.Month()) - int(e.FechaIngreso.Month())
	if asOf.Day() < e.FechaIngreso.Day() {
		meses--
	}
	if meses < 0 {
		return 0
	}
	return meses
}

// CumpleAntiguedadMinima checks the 6 months + 1 day seniority requirement.
func (e Empleado) CumpleAntiguedadMinima(asOf time.Time) bool {
	return e.AntiguedadMeses(asOf) >= 6
}
