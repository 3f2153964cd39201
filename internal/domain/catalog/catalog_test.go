package catalog

import (
	"errors"
	"testing"

	"sirh/internal/domain/empleados"
)

func TestJustificanteLookup(t *testing.T) {
	s := NewStore()

	tipo, err := s.Justificante(JustificanteDiaEconomico)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tipo.DatePolicy != PolicySpanFijo {
		t.Fatalf("expected span fijo, got %q", tipo.DatePolicy)
	}
	if tipo.RequiereLugar {
		t.Fatalf("día económico must not require lugar")
	}

	comision, err := s.Justificante(JustificanteComisionDia)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !comision.RequiereLugar {
		t.Fatalf("comisión must require lugar")
	}
}

func TestJustificanteDesconocido(t *testing.T) {
	s := NewStore()
	if _, err := s.Justificante("Permiso Sindical"); !errors.Is(err, ErrTipoDesconocido) {
		t.Fatalf("expected ErrTipoDesconocido, got %v", err)
	}
}

func TestPrestacionLookup(t *testing.T) {
	s := NewStore()

	nupcias, err := s.Prestacion(PrestacionNupcias)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nupcias.DiasMaximos == nil || *nupcias.DiasMaximos != 5 {
		t.Fatalf("nupcias cap = %v, want 5", nupcias.DiasMaximos)
	}
	if len(nupcias.DocumentosRequeridos) == 0 {
		t.Fatalf("nupcias must list required documents")
	}

	if _, err := s.Prestacion("Beca Comisión"); !errors.Is(err, ErrTipoDesconocido) {
		t.Fatalf("expected ErrTipoDesconocido, got %v", err)
	}
}

func TestDiasMaximosPorTipoEmpleado(t *testing.T) {
	s := NewStore()

	medicos, err := s.Prestacion(PrestacionCuidadosMedicos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := medicos.DiasMaximosPara(empleados.TipoDocente); got == nil || *got != 14 {
		t.Fatalf("cuidados médicos docente = %v, want 14", got)
	}
	if got := medicos.DiasMaximosPara(empleados.TipoApoyo); got == nil || *got != 12 {
		t.Fatalf("cuidados médicos apoyo = %v, want 12", got)
	}

	fallecimiento, err := s.Prestacion(PrestacionFallecimiento)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fallecimiento.DiasMaximosPara(empleados.TipoDocente); got == nil || *got != 6 {
		t.Fatalf("fallecimiento docente = %v, want 6", got)
	}
	if got := fallecimiento.DiasMaximosPara(empleados.TipoApoyo); got == nil || *got != 5 {
		t.Fatalf("fallecimiento apoyo = %v, want 5", got)
	}

	// Nupcias has no per-population override.
	nupcias, _ := s.Prestacion(PrestacionNupcias)
	if got := nupcias.DiasMaximosPara(empleados.TipoApoyo); got == nil || *got != 5 {
		t.Fatalf("nupcias apoyo = %v, want 5", got)
	}

	// Licencia médica carries no day cap at all.
	licencia, _ := s.Prestacion(PrestacionLicenciaMedica)
	if got := licencia.DiasMaximosPara(empleados.TipoDocente); got != nil {
		t.Fatalf("licencia médica cap = %v, want nil", got)
	}
}

func TestListasEstables(t *testing.T) {
	s := NewStore()

	justs := s.Justificantes()
	if len(justs) != 6 {
		t.Fatalf("justificantes = %d, want 6", len(justs))
	}
	if justs[0].Clave != JustificanteDiaEconomico {
		t.Fatalf("first justificante = %q", justs[0].Clave)
	}

	prests := s.Prestaciones()
	if len(prests) != 7 {
		t.Fatalf("prestaciones = %d, want 7", len(prests))
	}
	if prests[0].Clave != PrestacionLicenciaMedica {
		t.Fatalf("first prestación = %q", prests[0].Clave)
	}
}
