package justificanteshandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"sirh/internal/domain/auth"
	"sirh/internal/domain/calendar"
	"sirh/internal/domain/catalog"
	"sirh/internal/domain/empleados"
	"sirh/internal/domain/requests"
	"sirh/internal/transport/http/api"
	justificanteshandler "sirh/internal/transport/http/handlers/justificantes"
	"sirh/internal/transport/http/middleware"
)

type dirStub struct{}

func (dirStub) PorID(_ context.Context, id string) (empleados.Empleado, error) {
	return empleados.Empleado{
		ID:             id,
		NombreCompleto: "María Pérez",
		Tipo:           empleados.TipoDocente,
		Nombramiento:   empleados.NombramientoBase,
		FechaIngreso:   time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC),
		Activo:         true,
	}, nil
}

func testRouter(reglas requests.Reglas) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := requests.NewService(
		requests.NewMemStore(),
		dirStub{},
		requests.NewEvaluator(calendar.New(nil, nil), catalog.NewStore(), reglas),
		nil,
		logger,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
		justificanteshandler.NewHandler(svc, dirStub{}, nil).RegisterRoutes(r)
	})
	return r
}

func doAs(t *testing.T, router http.Handler, actor requests.Actor, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if actor.UserID != "" {
		req = req.WithContext(middleware.WithActor(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Envelope {
	t.Helper()
	var env api.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	return env
}

func TestJustificanteJourney(t *testing.T) {
	reglas := requests.ReglasPorDefecto()
	reglas.EconomicosSeparacionDias = 0
	router := testRouter(reglas)
	actor := requests.Actor{UserID: "user-1", EmpleadoID: "emp-1", Rol: auth.RoleUsuario}

	// Anonymous requests are rejected.
	rec := doAs(t, router, requests.Actor{}, http.MethodGet, "/api/v1/justificantes", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %d", rec.Code)
	}

	// Three commits within the annual quota.
	for _, dia := range []int{1, 8, 15} {
		rec = doAs(t, router, actor, http.MethodPost, "/api/v1/justificantes", map[string]string{
			"tipo":        catalog.JustificanteDiaEconomico,
			"fechaInicio": fmt.Sprintf("2026-06-%02d", dia),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("day %d: expected 201, got %d: %s", dia, rec.Code, rec.Body.String())
		}
		env := decodeEnvelope(t, rec)
		if !env.Success {
			t.Fatalf("day %d: expected success envelope, got %+v", dia, env)
		}
	}

	// The fourth exceeds the quota and surfaces the violations.
	rec = doAs(t, router, actor, http.MethodPost, "/api/v1/justificantes", map[string]string{
		"tipo":        catalog.JustificanteDiaEconomico,
		"fechaInicio": "2026-06-22",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "reglas_violadas" {
		t.Fatalf("expected reglas_violadas, got %+v", env.Error)
	}

	// The list shows the three committed slips.
	rec = doAs(t, router, actor, http.MethodGet, "/api/v1/justificantes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env = decodeEnvelope(t, rec)
	raw, err := json.Marshal(env.Data)
	if err != nil {
		t.Fatalf("re-encoding data: %v", err)
	}
	var lista []requests.Justificante
	if err := json.Unmarshal(raw, &lista); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(lista) != 3 {
		t.Fatalf("expected 3 justificantes, got %d", len(lista))
	}

	// Deliver one and verify the transition is one-shot.
	id := lista[0].ID
	rec = doAs(t, router, actor, http.MethodPost, "/api/v1/justificantes/"+id+"/entregar", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on deliver, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doAs(t, router, actor, http.MethodPost, "/api/v1/justificantes/"+id+"/entregar", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second deliver, got %d", rec.Code)
	}
}

func TestContadoresEndpoint(t *testing.T) {
	router := testRouter(requests.ReglasPorDefecto())
	actor := requests.Actor{UserID: "user-1", EmpleadoID: "emp-1", Rol: auth.RoleUsuario}

	rec := doAs(t, router, actor, http.MethodPost, "/api/v1/justificantes", map[string]string{
		"tipo":        catalog.JustificanteDiaEconomico,
		"fechaInicio": "2026-06-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doAs(t, router, actor, http.MethodGet, "/api/v1/contadores/emp-1?anio=2026", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	raw, _ := json.Marshal(env.Data)
	var cont requests.Contadores
	if err := json.Unmarshal(raw, &cont); err != nil {
		t.Fatalf("decoding counters: %v", err)
	}
	if cont.SolicitudesEconomicos != 1 || cont.DiasEconomicosUsados != 3 {
		t.Fatalf("unexpected counters %+v", cont)
	}

	// Another plain user cannot read somebody else's ledger.
	otro := requests.Actor{UserID: "user-2", EmpleadoID: "emp-2", Rol: auth.RoleUsuario}
	rec = doAs(t, router, otro, http.MethodGet, "/api/v1/contadores/emp-1", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
