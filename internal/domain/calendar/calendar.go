package calendar

import (
	"fmt"
	"sync"
	"time"
)

// Periodo is an inclusive date range, used for vacation blocks.
type Periodo struct {
	Inicio time.Time
	Fin    time.Time
}

// Calendar answers working-day questions for the institution: weekends,
// official holidays and vacation periods are non-working.
type Calendar struct {
	festivosExtra map[int][]time.Time
	vacaciones    []Periodo

	mu            sync.Mutex
	festivosCache map[int][]time.Time
}

func New(festivosExtra []time.Time, vacaciones []Periodo) *Calendar {
	extra := make(map[int][]time.Time)
	for _, f := range festivosExtra {
		f = DateOnly(f)
		extra[f.Year()] = append(extra[f.Year()], f)
	}
	normalized := make([]Periodo, 0, len(vacaciones))
	for _, v := range vacaciones {
		normalized = append(normalized, Periodo{Inicio: DateOnly(v.Inicio), Fin: DateOnly(v.Fin)})
	}
	return &Calendar{
		festivosExtra: extra,
		vacaciones:    normalized,
		festivosCache: make(map[int][]time.Time),
	}
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *Calendar) EsFinDeSemana(fecha time.Time) bool {
	wd := fecha.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (c *Calendar) EsFestivo(fecha time.Time) bool {
	fecha = DateOnly(fecha)
	for _, f := range c.Festivos(fecha.Year()) {
		if f.Equal(fecha) {
			return true
		}
	}
	return false
}

func (c *Calendar) EstaEnVacaciones(fecha time.Time) bool {
	fecha = DateOnly(fecha)
	for _, v := range c.vacaciones {
		if !fecha.Before(v.Inicio) && !fecha.After(v.Fin) {
			return true
		}
	}
	return false
}

func (c *Calendar) EsDiaLaboral(fecha time.Time) bool {
	return !c.EsFinDeSemana(fecha) && !c.EsFestivo(fecha) && !c.EstaEnVacaciones(fecha)
}

// Festivos returns the official holidays for a year: the fixed dates plus
// the movable Monday observances (first Monday of February, third Monday of
// March and November), plus any configured extras.
func (c *Calendar) Festivos(anio int) []time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.festivosCache[anio]; ok {
		return cached
	}

	festivos := []time.Time{
		time.Date(anio, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(anio, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(anio, time.September, 16, 0, 0, 0, 0, time.UTC),
		time.Date(anio, time.December, 25, 0, 0, 0, 0, time.UTC),
	}
	festivos = append(festivos,
		nthMonday(anio, time.February, 1),
		nthMonday(anio, time.March, 3),
		nthMonday(anio, time.November, 3),
	)
	festivos = append(festivos, c.festivosExtra[anio]...)

	c.festivosCache[anio] = festivos
	return festivos
}

func nthMonday(anio int, mes time.Month, n int) time.Time {
	d := time.Date(anio, mes, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 7*(n-1))
}

// DiasLaborales counts working days between inicio and fin, inclusive.
// Returns 0 when fin precedes inicio.
func (c *Calendar) DiasLaborales(inicio, fin time.Time) int {
	inicio, fin = DateOnly(inicio), DateOnly(fin)
	if inicio.After(fin) {
		return 0
	}
	dias := 0
	for d := inicio; !d.After(fin); d = d.AddDate(0, 0, 1) {
		if c.EsDiaLaboral(d) {
			dias++
		}
	}
	return dias
}

// AgregarDiasLaborales advances fecha by n working days.
func (c *Calendar) AgregarDiasLaborales(fecha time.Time, n int) time.Time {
	d := DateOnly(fecha)
	for contados := 0; contados < n; {
		d = d.AddDate(0, 0, 1)
		if c.EsDiaLaboral(d) {
			contados++
		}
	}
	return d
}

// RestarDiasLaborales moves fecha back by n working days.
func (c *Calendar) RestarDiasLaborales(fecha time.Time, n int) time.Time {
	d := DateOnly(fecha)
	for contados := 0; contados < n; {
		d = d.AddDate(0, 0, -1)
		if c.EsDiaLaboral(d) {
			contados++
		}
	}
	return d
}

func (c *Calendar) SiguienteDiaLaboral(fecha time.Time) time.Time {
	d := DateOnly(fecha).AddDate(0, 0, 1)
	for !c.EsDiaLaboral(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// BloqueoVacaciones reports whether fecha falls inside the blackout window
// of diasAntes working days before or diasDespues after a vacation period.
func (c *Calendar) BloqueoVacaciones(fecha time.Time, diasAntes, diasDespues int) (bool, string) {
	fecha = DateOnly(fecha)
	for _, v := range c.vacaciones {
		bloqueoInicio := c.RestarDiasLaborales(v.Inicio, diasAntes)
		bloqueoFin := c.AgregarDiasLaborales(v.Fin, diasDespues)

		if !fecha.Before(bloqueoInicio) && !fecha.After(v.Inicio) {
			return true, fmt.Sprintf("bloqueado: %d días laborales antes de vacaciones (%s)", diasAntes, v.Inicio.Format("2006-01-02"))
		}
		if !fecha.Before(v.Fin) && !fecha.After(bloqueoFin) {
			return true, fmt.Sprintf("bloqueado: %d días laborales después de vacaciones (%s)", diasDespues, v.Fin.Format("2006-01-02"))
		}
	}
	return false, ""
}

// CercaDeFestivo reports whether fecha is exactly one working day before or
// after an official holiday.
func (c *Calendar) CercaDeFestivo(fecha time.Time) (bool, string) {
	fecha = DateOnly(fecha)
	for _, festivo := range c.Festivos(fecha.Year()) {
		if fecha.Equal(c.RestarDiasLaborales(festivo, 1)) {
			return true, fmt.Sprintf("bloqueado: 1 día laboral antes de festivo (%s)", festivo.Format("2006-01-02"))
		}
		if fecha.Equal(c.AgregarDiasLaborales(festivo, 1)) {
			return true, fmt.Sprintf("bloqueado: 1 día laboral después de festivo (%s)", festivo.Format("2006-01-02"))
		}
	}
	return false, ""
}

func (c *Calendar) Vacaciones() []Periodo {
	out := make([]Periodo, len(c.vacaciones))
	copy(out, c.vacaciones)
	return out
}

// Quincena returns 1 for days 1-15 and 2 for the rest of the month.
func Quincena(fecha time.Time) int {
	if fecha.Day() <= 15 {
		return 1
	}
	return 2
}

// LimitesQuincena returns the inclusive bounds of the half-month that
// contains fecha.
func LimitesQuincena(fecha time.Time) (time.Time, time.Time) {
	anio, mes := fecha.Year(), fecha.Month()
	if Quincena(fecha) == 1 {
		return time.Date(anio, mes, 1, 0, 0, 0, 0, time.UTC), time.Date(anio, mes, 15, 0, 0, 0, 0, time.UTC)
	}
	inicio := time.Date(anio, mes, 16, 0, 0, 0, 0, time.UTC)
	fin := time.Date(anio, mes, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	return inicio, fin
}
