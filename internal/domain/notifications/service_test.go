package notifications

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"sirh/internal/domain/requests"
)

func testNotifications() *Service {
	return New(NewMemStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEmitCreaNotificacion(t *testing.T) {
	svc := testNotifications()
	ctx := context.Background()

	svc.Emit(ctx, requests.Event{
		Tipo:       requests.EventoSolicitudRechazada,
		EmpleadoID: "emp-1",
		RequestID:  "req-1",
		Familia:    requests.FamiliaPrestacion,
		Solicitud:  "Licencia por Nupcias",
		Detalle:    "documentación incompleta",
	})

	items, err := svc.Lista(ctx, "emp-1", 10, 0)
	if err != nil {
		t.Fatalf("Lista: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	if items[0].Titulo != "Solicitud rechazada" {
		t.Fatalf("unexpected title %q", items[0].Titulo)
	}
	if items[0].Leida {
		t.Fatal("new notification must start unread")
	}

	noLeidas, err := svc.NoLeidas(ctx, "emp-1")
	if err != nil || noLeidas != 1 {
		t.Fatalf("expected 1 unread, got %d (err=%v)", noLeidas, err)
	}
}

func TestMarcarLeidaSoloPropias(t *testing.T) {
	svc := testNotifications()
	ctx := context.Background()

	svc.Emit(ctx, requests.Event{
		Tipo:       requests.EventoSolicitudCreada,
		EmpleadoID: "emp-1",
		Solicitud:  "Dia Economico",
	})
	items, _ := svc.Lista(ctx, "emp-1", 10, 0)
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}

	// Another employee's mark is a no-op.
	if err := svc.MarcarLeida(ctx, "emp-2", items[0].ID); err != nil {
		t.Fatalf("MarcarLeida: %v", err)
	}
	if noLeidas, _ := svc.NoLeidas(ctx, "emp-1"); noLeidas != 1 {
		t.Fatalf("foreign mark must not apply, unread = %d", noLeidas)
	}

	if err := svc.MarcarLeida(ctx, "emp-1", items[0].ID); err != nil {
		t.Fatalf("MarcarLeida: %v", err)
	}
	if noLeidas, _ := svc.NoLeidas(ctx, "emp-1"); noLeidas != 0 {
		t.Fatalf("expected 0 unread after marking, got %d", noLeidas)
	}
}
