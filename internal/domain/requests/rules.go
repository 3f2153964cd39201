package requests

import (
	"fmt"
	"time"

	"sirh/internal/domain/calendar"
	"sirh/internal/domain/catalog"
	"sirh/internal/domain/empleados"
)

// Reglas are the tunable quota parameters, loaded from configuration.
type Reglas struct {
	EconomicosMaxSolicitudes    int
	EconomicosDiasPorSolicitud  int
	EconomicosSeparacionDias    int
	EconomicosBloqueoVacaciones int
	PermisosHorasMaxQuincena    int
}

func ReglasPorDefecto() Reglas {
	return Reglas{
		EconomicosMaxSolicitudes:    3,
		EconomicosDiasPorSolicitud:  3,
		EconomicosSeparacionDias:    30,
		EconomicosBloqueoVacaciones: 15,
		PermisosHorasMaxQuincena:    2,
	}
}

// Nombramientos sin acceso a prestaciones.
var nombramientosExcluidos = map[empleados.Nombramiento]bool{
	empleados.NombramientoInterino:       true,
	empleados.NombramientoLimitado:       true,
	empleados.NombramientoGravidez:       true,
	empleados.NombramientoPrejubilatorio: true,
	empleados.NombramientoHonorarios:     true,
}

// Evaluator applies the business rules to a draft against a ledger
// snapshot. It never mutates state; the workflow service decides what to
// do with the result.
type Evaluator struct {
	Cal      *calendar.Calendar
	Catalogo *catalog.Store
	Reglas   Reglas
}

func NewEvaluator(cal *calendar.Calendar, cat *catalog.Store, reglas Reglas) *Evaluator {
	return &Evaluator{Cal: cal, Catalogo: cat, Reglas: reglas}
}

type violaciones struct {
	items []Violation
}

func (v *violaciones) add(codigo, mensaje string) {
	v.items = append(v.items, Violation{Codigo: codigo, Mensaje: mensaje})
}

func (v *violaciones) addCupo(mensaje string, uso, limite int) {
	v.items = append(v.items, Violation{Codigo: CodigoCupoExcedido, Mensaje: mensaje, Uso: &uso, Limite: &limite})
}

// EvaluarJustificante validates a justification draft. The evaluation year
// is derived from the draft's start date, never from the process clock.
func (e *Evaluator) EvaluarJustificante(draft Draft, cont Contadores) Evaluation {
	var v violaciones

	if draft.FechaInicio.IsZero() {
		v.add(CodigoFechaInvalida, "la fecha de inicio es requerida")
		return invalid(v)
	}
	inicio := calendar.DateOnly(draft.FechaInicio)

	tipo, err := e.Catalogo.Justificante(draft.Tipo)
	if err != nil {
		v.add(CodigoTipoDesconocido, fmt.Sprintf("tipo de justificante desconocido: %q", draft.Tipo))
		return invalid(v)
	}

	switch draft.Tipo {
	case catalog.JustificanteDiaEconomico:
		return conFinAjustado(e.evaluarDiaEconomico(inicio, cont, v), draft)
	case catalog.JustificantePermisoHoras:
		return conFinAjustado(e.evaluarPermisoHoras(inicio, cont, v), draft)
	}

	if tipo.RequiereLugar && draft.Lugar == "" {
		v.add(CodigoLugarRequerido, "el campo lugar es requerido para comisiones")
	}

	fin := inicio
	dias := 1
	if tipo.DatePolicy == catalog.PolicyRango {
		if draft.FechaFin != nil {
			fin = calendar.DateOnly(*draft.FechaFin)
		}
		if fin.Before(inicio) {
			v.add(CodigoFechaInvalida, "la fecha de fin debe ser igual o posterior a la de inicio")
			return invalid(v)
		}
		dias = e.Cal.DiasLaborales(inicio, fin)
		if dias == 0 {
			v.add(CodigoSinDiasLaborales, "el rango no contiene días laborales")
		}
	}

	if len(v.items) > 0 {
		return invalid(v)
	}
	return Evaluation{
		Valido:               true,
		Errores:              []Violation{},
		FechaInicioCalculada: inicio,
		FechaFinCalculada:    fin,
		DiasSolicitados:      dias,
	}
}

func (e *Evaluator) evaluarDiaEconomico(inicio time.Time, cont Contadores, v violaciones) Evaluation {
	if !e.Cal.EsDiaLaboral(inicio) {
		v.add(CodigoDiaNoLaboral, "la fecha de inicio debe ser un día laboral")
	}

	// Solo puede iniciar lunes, martes o miércoles.
	switch inicio.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday:
	default:
		v.add(CodigoFechaInvalida, "el día económico solo puede iniciar en lunes, martes o miércoles")
	}

	if cont.SolicitudesEconomicos >= e.Reglas.EconomicosMaxSolicitudes {
		v.addCupo(
			fmt.Sprintf("ya se usaron las %d solicitudes del año", e.Reglas.EconomicosMaxSolicitudes),
			cont.SolicitudesEconomicos, e.Reglas.EconomicosMaxSolicitudes,
		)
	}

	if cont.FechaUltimaSolicitudEconomico != nil {
		transcurridos := e.Cal.DiasLaborales(*cont.FechaUltimaSolicitudEconomico, inicio)
		if transcurridos < e.Reglas.EconomicosSeparacionDias {
			proxima := e.Cal.AgregarDiasLaborales(*cont.FechaUltimaSolicitudEconomico, e.Reglas.EconomicosSeparacionDias)
			v.add(CodigoPeriodoBloqueado, fmt.Sprintf(
				"deben pasar %d días laborales desde la última solicitud; próxima fecha disponible: %s",
				e.Reglas.EconomicosSeparacionDias, proxima.Format("2006-01-02"),
			))
		}
	}

	if bloqueado, msg := e.Cal.BloqueoVacaciones(inicio, e.Reglas.EconomicosBloqueoVacaciones, e.Reglas.EconomicosBloqueoVacaciones); bloqueado {
		v.add(CodigoPeriodoBloqueado, msg)
	}
	if cerca, msg := e.Cal.CercaDeFestivo(inicio); cerca {
		v.add(CodigoPeriodoBloqueado, msg)
	}

	// El día económico siempre abarca N días laborales consecutivos.
	fin := e.Cal.AgregarDiasLaborales(inicio, e.Reglas.EconomicosDiasPorSolicitud-1)

	eval := Evaluation{
		Valido:               len(v.items) == 0,
		Errores:              v.items,
		FechaInicioCalculada: inicio,
		FechaFinCalculada:    fin,
		DiasSolicitados:      e.Reglas.EconomicosDiasPorSolicitud,
	}
	if eval.Errores == nil {
		eval.Errores = []Violation{}
	}
	return eval
}

func (e *Evaluator) evaluarPermisoHoras(fecha time.Time, cont Contadores, v violaciones) Evaluation {
	if !e.Cal.EsDiaLaboral(fecha) {
		v.add(CodigoDiaNoLaboral, "la fecha debe ser un día laboral")
	}

	quincena := calendar.Quincena(fecha)
	usados := cont.PermisosEnQuincena(fecha, quincena)
	if usados >= e.Reglas.PermisosHorasMaxQuincena {
		v.addCupo(
			fmt.Sprintf("límite de permisos Q%d alcanzado", quincena),
			usados, e.Reglas.PermisosHorasMaxQuincena,
		)
	}

	eval := Evaluation{
		Valido:               len(v.items) == 0,
		Errores:              v.items,
		FechaInicioCalculada: fecha,
		FechaFinCalculada:    fecha,
		DiasSolicitados:      1,
	}
	if eval.Errores == nil {
		eval.Errores = []Violation{}
	}
	return eval
}

// EvaluarPrestacion validates a benefit draft. traslape is the store's
// answer to "does an active benefit of this type overlap the range";
// passing it in keeps the evaluator free of I/O.
func (e *Evaluator) EvaluarPrestacion(draft Draft, emp empleados.Empleado, cont Contadores, traslape bool) Evaluation {
	var v violaciones

	if draft.FechaInicio.IsZero() {
		v.add(CodigoFechaInvalida, "la fecha de inicio es requerida")
		return invalid(v)
	}
	inicio := calendar.DateOnly(draft.FechaInicio)

	tipo, err := e.Catalogo.Prestacion(draft.Tipo)
	if err != nil {
		v.add(CodigoTipoDesconocido, fmt.Sprintf("tipo de prestación desconocido: %q", draft.Tipo))
		return invalid(v)
	}

	if nombramientosExcluidos[emp.Nombramiento] {
		v.add(CodigoNoElegible, fmt.Sprintf("no aplica para empleados con nombramiento: %s", emp.Nombramiento))
	}
	if !emp.CumpleAntiguedadMinima(inicio) {
		v.add(CodigoNoElegible, fmt.Sprintf(
			"antigüedad insuficiente (%d meses); se requieren 6 meses + 1 día",
			emp.AntiguedadMeses(inicio),
		))
	}

	fin := inicio
	if draft.FechaFin != nil {
		fin = calendar.DateOnly(*draft.FechaFin)
	}
	if fin.Before(inicio) {
		v.add(CodigoFechaInvalida, "la fecha de inicio debe ser anterior a la fecha de fin")
		return invalid(v)
	}

	diasLab := e.Cal.DiasLaborales(inicio, fin)
	if diasLab == 0 {
		v.add(CodigoSinDiasLaborales, "el rango no contiene días laborales")
	}

	diasMax := tipo.DiasMaximosPara(emp.Tipo)
	if diasMax != nil && diasLab > *diasMax {
		v.add(CodigoCupoExcedido, fmt.Sprintf("excede el máximo de %d días hábiles para este tipo de prestación", *diasMax))
	}

	switch tipo.CampoContador {
	case catalog.ContadorCuidadosMaternos:
		if diasMax != nil && cont.CuidadosMaternosUsados+diasLab > *diasMax {
			v.addCupo(fmt.Sprintf(
				"excede el límite anual; usado: %d días, solicitando: %d, máximo: %d",
				cont.CuidadosMaternosUsados, diasLab, *diasMax,
			), cont.CuidadosMaternosUsados, *diasMax)
		}
	case catalog.ContadorCuidadosMedicos:
		if diasMax != nil && cont.CuidadosMedicosUsados+diasLab > *diasMax {
			v.addCupo(fmt.Sprintf(
				"excede el límite anual; usado: %d días, solicitando: %d, máximo: %d",
				cont.CuidadosMedicosUsados, diasLab, *diasMax,
			), cont.CuidadosMedicosUsados, *diasMax)
		}
	}

	if traslape {
		v.add(CodigoTraslape, "ya existe una prestación del mismo tipo en este periodo")
	}

	eval := Evaluation{
		Valido:               len(v.items) == 0,
		Errores:              v.items,
		FechaInicioCalculada: inicio,
		FechaFinCalculada:    fin,
		DiasSolicitados:      diasLab,
		DocumentosRequeridos: tipo.DocumentosRequeridos,
		DiasMaximos:          diasMax,
	}
	if eval.Errores == nil {
		eval.Errores = []Violation{}
	}
	return eval
}

// conFinAjustado warns when the caller supplied an end date for a type
// whose span is derived, not chosen. The request stays valid; the caller
// learns the dates it will actually get.
func conFinAjustado(eval Evaluation, draft Draft) Evaluation {
	if draft.FechaFin == nil {
		return eval
	}
	if fin := calendar.DateOnly(*draft.FechaFin); !fin.Equal(eval.FechaFinCalculada) {
		eval.Advertencias = append(eval.Advertencias, fmt.Sprintf(
			"la fecha de fin solicitada difiere de la calculada; se usará %s",
			eval.FechaFinCalculada.Format("2006-01-02"),
		))
	}
	return eval
}

func invalid(v violaciones) Evaluation {
	return Evaluation{Valido: false, Errores: v.items}
}
