package requests

import (
	"reflect"
	"testing"
	"time"

	"sirh/internal/domain/calendar"
	"sirh/internal/domain/catalog"
	"sirh/internal/domain/empleados"
)

func fecha(anio int, mes time.Month, dia int) time.Time {
	return time.Date(anio, mes, dia, 0, 0, 0, 0, time.UTC)
}

func testEvaluator(vacaciones []calendar.Periodo) *Evaluator {
	return NewEvaluator(calendar.New(nil, vacaciones), catalog.NewStore(), ReglasPorDefecto())
}

func tieneCodigo(t *testing.T, eval Evaluation, codigo string) Violation {
	t.Helper()
	for _, v := range eval.Errores {
		if v.Codigo == codigo {
			return v
		}
	}
	t.Fatalf("expected violation %q, got %+v", codigo, eval.Errores)
	return Violation{}
}

func TestDiaEconomicoHappyPath(t *testing.T) {
	e := testEvaluator(nil)

	// Monday, no holidays nearby.
	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteDiaEconomico,
		FechaInicio: fecha(2026, time.June, 1),
	}, Contadores{})

	if !eval.Valido {
		t.Fatalf("expected valid, got %+v", eval.Errores)
	}
	if eval.DiasSolicitados != 3 {
		t.Fatalf("expected 3 days, got %d", eval.DiasSolicitados)
	}
	if want := fecha(2026, time.June, 3); !eval.FechaFinCalculada.Equal(want) {
		t.Fatalf("expected end %v, got %v", want, eval.FechaFinCalculada)
	}
}

func TestDiaEconomicoAdvierteFinAjustado(t *testing.T) {
	e := testEvaluator(nil)
	fin := fecha(2026, time.June, 5)

	// The span is fixed; a different requested end date stays valid but
	// gets flagged.
	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteDiaEconomico,
		FechaInicio: fecha(2026, time.June, 1),
		FechaFin:    &fin,
	}, Contadores{})
	if !eval.Valido {
		t.Fatalf("expected valid, got %+v", eval.Errores)
	}
	if len(eval.Advertencias) != 1 {
		t.Fatalf("expected one warning, got %+v", eval.Advertencias)
	}
	if want := fecha(2026, time.June, 3); !eval.FechaFinCalculada.Equal(want) {
		t.Fatalf("expected end %v, got %v", want, eval.FechaFinCalculada)
	}

	// A matching end date raises nothing.
	fin = fecha(2026, time.June, 3)
	eval = e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteDiaEconomico,
		FechaInicio: fecha(2026, time.June, 1),
		FechaFin:    &fin,
	}, Contadores{})
	if len(eval.Advertencias) != 0 {
		t.Fatalf("expected no warnings, got %+v", eval.Advertencias)
	}
}

func TestDiaEconomicoStartDayRestriction(t *testing.T) {
	e := testEvaluator(nil)

	// Thursday.
	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteDiaEconomico,
		FechaInicio: fecha(2026, time.June, 4),
	}, Contadores{})
	if eval.Valido {
		t.Fatal("expected invalid for Thursday start")
	}
	tieneCodigo(t, eval, CodigoFechaInvalida)

	// Saturday breaks two rules at once.
	eval = e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteDiaEconomico,
		FechaInicio: fecha(2026, time.June, 6),
	}, Contadores{})
	tieneCodigo(t, eval, CodigoDiaNoLaboral)
	tieneCodigo(t, eval, CodigoFechaInvalida)
}

func TestDiaEconomicoCollectsAllViolations(t *testing.T) {
	e := testEvaluator(nil)
	ultima := fecha(2026, time.June, 1)

	// Thursday start, quota spent, separation not elapsed: three rules
	// broken, all three reported.
	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteDiaEconomico,
		FechaInicio: fecha(2026, time.June, 4),
	}, Contadores{
		SolicitudesEconomicos:         3,
		FechaUltimaSolicitudEconomico: &ultima,
	})

	if eval.Valido {
		t.Fatal("expected invalid")
	}
	if len(eval.Errores) != 3 {
		t.Fatalf("expected 3 violations, got %d: %+v", len(eval.Errores), eval.Errores)
	}
	cupo := tieneCodigo(t, eval, CodigoCupoExcedido)
	if cupo.Uso == nil || *cupo.Uso != 3 || cupo.Limite == nil || *cupo.Limite != 3 {
		t.Fatalf("expected uso=3 limite=3, got %+v", cupo)
	}
	tieneCodigo(t, eval, CodigoFechaInvalida)
	tieneCodigo(t, eval, CodigoPeriodoBloqueado)
}

func TestDiaEconomicoSeparation(t *testing.T) {
	e := testEvaluator(nil)
	ultima := fecha(2026, time.June, 1)

	// Two weeks later is only 11 working days, well short of 30.
	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteDiaEconomico,
		FechaInicio: fecha(2026, time.June, 15),
	}, Contadores{
		SolicitudesEconomicos:         1,
		FechaUltimaSolicitudEconomico: &ultima,
	})
	if eval.Valido {
		t.Fatal("expected separation violation")
	}
	tieneCodigo(t, eval, CodigoPeriodoBloqueado)
}

func TestDiaEconomicoHolidayAdjacency(t *testing.T) {
	e := testEvaluator(nil)

	// Tuesday Sep 15 2026, the working day before the Sep 16 holiday.
	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteDiaEconomico,
		FechaInicio: fecha(2026, time.September, 15),
	}, Contadores{})
	if eval.Valido {
		t.Fatal("expected holiday adjacency violation")
	}
	tieneCodigo(t, eval, CodigoPeriodoBloqueado)
}

func TestDiaEconomicoVacationBlackout(t *testing.T) {
	e := testEvaluator([]calendar.Periodo{
		{Inicio: fecha(2026, time.July, 20), Fin: fecha(2026, time.July, 31)},
	})

	// Monday Jul 6, ten working days before vacations start.
	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteDiaEconomico,
		FechaInicio: fecha(2026, time.July, 6),
	}, Contadores{})
	if eval.Valido {
		t.Fatal("expected vacation blackout violation")
	}
	tieneCodigo(t, eval, CodigoPeriodoBloqueado)
}

func TestPermisoHorasQuincenaQuota(t *testing.T) {
	e := testEvaluator(nil)

	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificantePermisoHoras,
		FechaInicio: fecha(2026, time.June, 1),
	}, Contadores{PermisosMes: 6, PermisosHorasQ1: 2})
	if eval.Valido {
		t.Fatal("expected Q1 quota violation")
	}
	v := tieneCodigo(t, eval, CodigoCupoExcedido)
	if v.Mensaje != "límite de permisos Q1 alcanzado" {
		t.Fatalf("unexpected message %q", v.Mensaje)
	}

	// Q2 has its own counter.
	eval = e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificantePermisoHoras,
		FechaInicio: fecha(2026, time.June, 16),
	}, Contadores{PermisosMes: 6, PermisosHorasQ1: 2})
	if !eval.Valido {
		t.Fatalf("expected Q2 valid, got %+v", eval.Errores)
	}
	if eval.DiasSolicitados != 1 {
		t.Fatalf("expected 1 day, got %d", eval.DiasSolicitados)
	}
}

func TestPermisoHorasStaleMonthCountersIgnored(t *testing.T) {
	e := testEvaluator(nil)

	// Counters accumulated in May do not block a June request.
	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificantePermisoHoras,
		FechaInicio: fecha(2026, time.June, 1),
	}, Contadores{PermisosMes: 5, PermisosHorasQ1: 2, PermisosHorasQ2: 2})
	if !eval.Valido {
		t.Fatalf("expected valid, got %+v", eval.Errores)
	}
}

func TestRangoSinDiasLaborales(t *testing.T) {
	e := testEvaluator(nil)
	finSemana := fecha(2026, time.June, 7)

	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteISSTEP,
		FechaInicio: fecha(2026, time.June, 6),
		FechaFin:    &finSemana,
	}, Contadores{})
	if eval.Valido {
		t.Fatal("expected weekend-only range to be rejected")
	}
	tieneCodigo(t, eval, CodigoSinDiasLaborales)
}

func TestRangoInvertido(t *testing.T) {
	e := testEvaluator(nil)
	fin := fecha(2026, time.June, 1)

	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteISSTEP,
		FechaInicio: fecha(2026, time.June, 5),
		FechaFin:    &fin,
	}, Contadores{})
	if eval.Valido {
		t.Fatal("expected inverted range to be rejected")
	}
	tieneCodigo(t, eval, CodigoFechaInvalida)
}

func TestComisionRequiereLugar(t *testing.T) {
	e := testEvaluator(nil)
	fin := fecha(2026, time.June, 2)

	eval := e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteComisionDia,
		FechaInicio: fecha(2026, time.June, 1),
		FechaFin:    &fin,
	}, Contadores{})
	if eval.Valido {
		t.Fatal("expected missing lugar to be rejected")
	}
	tieneCodigo(t, eval, CodigoLugarRequerido)

	eval = e.EvaluarJustificante(Draft{
		Tipo:        catalog.JustificanteComisionDia,
		FechaInicio: fecha(2026, time.June, 1),
		FechaFin:    &fin,
		Lugar:       "CORDE Puebla Norte",
	}, Contadores{})
	if !eval.Valido {
		t.Fatalf("expected valid, got %+v", eval.Errores)
	}
	if eval.DiasSolicitados != 2 {
		t.Fatalf("expected 2 days, got %d", eval.DiasSolicitados)
	}
}

func TestTipoDesconocido(t *testing.T) {
	e := testEvaluator(nil)
	eval := e.EvaluarJustificante(Draft{
		Tipo:        "Permiso Sabatico",
		FechaInicio: fecha(2026, time.June, 1),
	}, Contadores{})
	if eval.Valido {
		t.Fatal("expected unknown type to be rejected")
	}
	tieneCodigo(t, eval, CodigoTipoDesconocido)
}

func TestEvaluacionEsIdempotente(t *testing.T) {
	e := testEvaluator(nil)
	draft := Draft{Tipo: catalog.JustificanteDiaEconomico, FechaInicio: fecha(2026, time.June, 1)}
	cont := Contadores{SolicitudesEconomicos: 1}

	primera := e.EvaluarJustificante(draft, cont)
	segunda := e.EvaluarJustificante(draft, cont)
	if !reflect.DeepEqual(primera, segunda) {
		t.Fatalf("evaluations differ: %+v vs %+v", primera, segunda)
	}
}

func empleadoBase() empleados.Empleado {
	return empleados.Empleado{
		ID:           "emp-1",
		Tipo:         empleados.TipoDocente,
		Nombramiento: empleados.NombramientoBase,
		FechaIngreso: fecha(2020, time.January, 15),
		Activo:       true,
	}
}

func TestPrestacionNupcias(t *testing.T) {
	e := testEvaluator(nil)
	fin := fecha(2026, time.June, 5)

	eval := e.EvaluarPrestacion(Draft{
		Tipo:        catalog.PrestacionNupcias,
		FechaInicio: fecha(2026, time.June, 1),
		FechaFin:    &fin,
	}, empleadoBase(), Contadores{}, false)

	if !eval.Valido {
		t.Fatalf("expected valid, got %+v", eval.Errores)
	}
	if eval.DiasSolicitados != 5 {
		t.Fatalf("expected 5 working days, got %d", eval.DiasSolicitados)
	}
	if len(eval.DocumentosRequeridos) == 0 {
		t.Fatal("expected required documents to be surfaced")
	}
	if eval.DiasMaximos == nil || *eval.DiasMaximos != 5 {
		t.Fatalf("expected cap 5, got %v", eval.DiasMaximos)
	}
}

func TestPrestacionExcedeDias(t *testing.T) {
	e := testEvaluator(nil)
	fin := fecha(2026, time.June, 8)

	eval := e.EvaluarPrestacion(Draft{
		Tipo:        catalog.PrestacionNupcias,
		FechaInicio: fecha(2026, time.June, 1),
		FechaFin:    &fin,
	}, empleadoBase(), Contadores{}, false)
	if eval.Valido {
		t.Fatal("expected 6 working days to exceed the 5 day cap")
	}
	tieneCodigo(t, eval, CodigoCupoExcedido)
}

func TestPrestacionNombramientoExcluido(t *testing.T) {
	e := testEvaluator(nil)
	emp := empleadoBase()
	emp.Nombramiento = empleados.NombramientoInterino

	eval := e.EvaluarPrestacion(Draft{
		Tipo:        catalog.PrestacionLicenciaMedica,
		FechaInicio: fecha(2026, time.June, 1),
	}, emp, Contadores{}, false)
	if eval.Valido {
		t.Fatal("expected interino to be ineligible")
	}
	tieneCodigo(t, eval, CodigoNoElegible)
}

func TestPrestacionAntiguedadInsuficiente(t *testing.T) {
	e := testEvaluator(nil)
	emp := empleadoBase()
	emp.FechaIngreso = fecha(2026, time.January, 2)

	eval := e.EvaluarPrestacion(Draft{
		Tipo:        catalog.PrestacionLicenciaMedica,
		FechaInicio: fecha(2026, time.June, 1),
	}, emp, Contadores{}, false)
	if eval.Valido {
		t.Fatal("expected insufficient seniority")
	}
	tieneCodigo(t, eval, CodigoNoElegible)
}

func TestPrestacionContadorAnual(t *testing.T) {
	e := testEvaluator(nil)
	fin := fecha(2026, time.June, 3)

	// 5 used + 3 requested exceeds the 7 day annual cap.
	eval := e.EvaluarPrestacion(Draft{
		Tipo:        catalog.PrestacionCuidadosMaternos,
		FechaInicio: fecha(2026, time.June, 1),
		FechaFin:    &fin,
	}, empleadoBase(), Contadores{CuidadosMaternosUsados: 5}, false)
	if eval.Valido {
		t.Fatal("expected annual counter violation")
	}
	v := tieneCodigo(t, eval, CodigoCupoExcedido)
	if v.Uso == nil || *v.Uso != 5 || v.Limite == nil || *v.Limite != 7 {
		t.Fatalf("expected uso=5 limite=7, got %+v", v)
	}
}

func TestPrestacionCapPorTipoEmpleado(t *testing.T) {
	e := testEvaluator(nil)
	fin := fecha(2026, time.June, 17)

	// Jun 1 to Jun 17 spans 13 working days: under the Docente cap of 14,
	// over the Apoyo cap of 12.
	draft := Draft{
		Tipo:        catalog.PrestacionCuidadosMedicos,
		FechaInicio: fecha(2026, time.June, 1),
		FechaFin:    &fin,
	}

	eval := e.EvaluarPrestacion(draft, empleadoBase(), Contadores{}, false)
	if !eval.Valido {
		t.Fatalf("expected valid for docente, got %+v", eval.Errores)
	}

	apoyo := empleadoBase()
	apoyo.Tipo = empleados.TipoApoyo
	eval = e.EvaluarPrestacion(draft, apoyo, Contadores{}, false)
	if eval.Valido {
		t.Fatal("expected apoyo cap to be exceeded")
	}
	tieneCodigo(t, eval, CodigoCupoExcedido)
}

func TestPrestacionTraslape(t *testing.T) {
	e := testEvaluator(nil)
	fin := fecha(2026, time.June, 3)

	eval := e.EvaluarPrestacion(Draft{
		Tipo:        catalog.PrestacionLicenciaMedica,
		FechaInicio: fecha(2026, time.June, 1),
		FechaFin:    &fin,
	}, empleadoBase(), Contadores{}, true)
	if eval.Valido {
		t.Fatal("expected overlap violation")
	}
	tieneCodigo(t, eval, CodigoTraslape)
}
