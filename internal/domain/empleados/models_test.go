package empleados

import (
	"testing"
	"time"
)

func fecha(anio int, mes time.Month, dia int) time.Time {
	return time.Date(anio, mes, dia, 0, 0, 0, 0, time.UTC)
}

func TestAntiguedadMeses(t *testing.T) {
	emp := Empleado{FechaIngreso: fecha(2020, time.January, 15)}

	casos := []struct {
		asOf time.Time
		want int
	}{
		{fecha(2020, time.July, 15), 6},
		{fecha(2020, time.July, 14), 5},
		{fecha(2020, time.July, 16), 6},
		{fecha(2021, time.January, 15), 12},
		{fecha(2020, time.February, 1), 0},
		{fecha(2019, time.December, 1), 0},
	}
	for _, c := range casos {
		if got := emp.AntiguedadMeses(c.asOf); got != c.want {
			t.Fatalf("AntiguedadMeses(%s) = %d, want %d", c.asOf.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestCumpleAntiguedadMinima(t *testing.T) {
	emp := Empleado{FechaIngreso: fecha(2026, time.January, 15)}

	if emp.CumpleAntiguedadMinima(fecha(2026, time.July, 14)) {
		t.Fatalf("un día antes de los 6 meses no debe cumplir")
	}
	if !emp.CumpleAntiguedadMinima(fecha(2026, time.July, 15)) {
		t.Fatalf("a los 6 meses exactos debe cumplir")
	}
	if !emp.CumpleAntiguedadMinima(fecha(2027, time.March, 1)) {
		t.Fatalf("más de un año debe cumplir")
	}
}
