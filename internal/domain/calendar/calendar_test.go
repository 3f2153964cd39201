package calendar

import (
	"testing"
	"time"
)

func fecha(anio int, mes time.Month, dia int) time.Time {
	return time.Date(anio, mes, dia, 0, 0, 0, 0, time.UTC)
}

func TestDiasLaboralesMismoDia(t *testing.T) {
	c := New(nil, nil)
	martes := fecha(2026, time.March, 3)
	if got := c.DiasLaborales(martes, martes); got != 1 {
		t.Fatalf("expected 1 working day, got %d", got)
	}
}

func TestDiasLaboralesCruzaFinDeSemana(t *testing.T) {
	c := New(nil, nil)
	viernes := fecha(2026, time.March, 6)
	lunes := fecha(2026, time.March, 9)
	if got := c.DiasLaborales(viernes, lunes); got != 2 {
		t.Fatalf("expected 2 working days across weekend, got %d", got)
	}
}

func TestDiasLaboralesSoloFinDeSemana(t *testing.T) {
	c := New(nil, nil)
	sabado := fecha(2026, time.March, 7)
	domingo := fecha(2026, time.March, 8)
	if got := c.DiasLaborales(sabado, domingo); got != 0 {
		t.Fatalf("expected 0 working days, got %d", got)
	}
}

func TestDiasLaboralesCruzaFestivo(t *testing.T) {
	c := New(nil, nil)
	// 16 de septiembre cae en miércoles en 2026.
	lunes := fecha(2026, time.September, 14)
	viernes := fecha(2026, time.September, 18)
	if got := c.DiasLaborales(lunes, viernes); got != 4 {
		t.Fatalf("expected 4 working days skipping the holiday, got %d", got)
	}
}

func TestDiasLaboralesRangoInvertido(t *testing.T) {
	c := New(nil, nil)
	if got := c.DiasLaborales(fecha(2026, time.March, 9), fecha(2026, time.March, 6)); got != 0 {
		t.Fatalf("expected 0 for inverted range, got %d", got)
	}
}

func TestFestivosLunesMoviles(t *testing.T) {
	c := New(nil, nil)
	esperados := []time.Time{
		fecha(2026, time.February, 2),
		fecha(2026, time.March, 16),
		fecha(2026, time.November, 16),
	}
	for _, esperado := range esperados {
		if !c.EsFestivo(esperado) {
			t.Fatalf("expected %s to be a holiday", esperado.Format("2006-01-02"))
		}
	}
	if c.EsFestivo(fecha(2026, time.February, 9)) {
		t.Fatal("second Monday of February must not be a holiday")
	}
}

func TestAgregarRestarDiasLaborales(t *testing.T) {
	c := New(nil, nil)
	viernes := fecha(2026, time.March, 6)
	if got := c.AgregarDiasLaborales(viernes, 2); !got.Equal(fecha(2026, time.March, 10)) {
		t.Fatalf("expected 2026-03-10, got %s", got.Format("2006-01-02"))
	}
	if got := c.RestarDiasLaborales(fecha(2026, time.March, 10), 2); !got.Equal(viernes) {
		t.Fatalf("expected 2026-03-06, got %s", got.Format("2006-01-02"))
	}
}

func TestCercaDeFestivo(t *testing.T) {
	c := New(nil, nil)
	// 1 de mayo de 2026 cae en viernes.
	if cerca, _ := c.CercaDeFestivo(fecha(2026, time.April, 30)); !cerca {
		t.Fatal("day before a holiday should be flagged")
	}
	if cerca, _ := c.CercaDeFestivo(fecha(2026, time.May, 4)); !cerca {
		t.Fatal("working day after a holiday should be flagged")
	}
	if cerca, _ := c.CercaDeFestivo(fecha(2026, time.May, 12)); cerca {
		t.Fatal("unrelated day should not be flagged")
	}
}

func TestBloqueoVacaciones(t *testing.T) {
	vac := []Periodo{{Inicio: fecha(2026, time.July, 20), Fin: fecha(2026, time.August, 7)}}
	c := New(nil, vac)

	if bloqueado, _ := c.BloqueoVacaciones(fecha(2026, time.July, 15), 15, 15); !bloqueado {
		t.Fatal("date shortly before vacation start should be blocked")
	}
	if bloqueado, _ := c.BloqueoVacaciones(fecha(2026, time.August, 10), 15, 15); !bloqueado {
		t.Fatal("date shortly after vacation end should be blocked")
	}
	if bloqueado, _ := c.BloqueoVacaciones(fecha(2026, time.March, 3), 15, 15); bloqueado {
		t.Fatal("date far from vacations should not be blocked")
	}
	if !c.EstaEnVacaciones(fecha(2026, time.July, 27)) {
		t.Fatal("date inside vacation period should be non-working")
	}
}

func TestQuincena(t *testing.T) {
	if got := Quincena(fecha(2026, time.March, 15)); got != 1 {
		t.Fatalf("expected quincena 1, got %d", got)
	}
	if got := Quincena(fecha(2026, time.March, 16)); got != 2 {
		t.Fatalf("expected quincena 2, got %d", got)
	}

	inicio, fin := LimitesQuincena(fecha(2026, time.February, 20))
	if !inicio.Equal(fecha(2026, time.February, 16)) || !fin.Equal(fecha(2026, time.February, 28)) {
		t.Fatalf("unexpected quincena bounds: %s - %s", inicio.Format("2006-01-02"), fin.Format("2006-01-02"))
	}
	inicio, fin = LimitesQuincena(fecha(2026, time.December, 20))
	if !inicio.Equal(fecha(2026, time.December, 16)) || !fin.Equal(fecha(2026, time.December, 31)) {
		t.Fatalf("unexpected December bounds: %s - %s", inicio.Format("2006-01-02"), fin.Format("2006-01-02"))
	}
}

func TestParseVacaciones(t *testing.T) {
	periodos, err := ParseVacaciones("2026-07-20:2026-08-07; 2026-12-21:2027-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(periodos) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periodos))
	}

	if _, err := ParseVacaciones("2026-07-20"); err == nil {
		t.Fatal("expected error for malformed period")
	}
	if _, err := ParseVacaciones("2026-08-07:2026-07-20"); err == nil {
		t.Fatal("expected error for inverted period")
	}
}
