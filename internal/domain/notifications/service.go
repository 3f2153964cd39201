package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"sirh/internal/domain/requests"
)

// Service persists and serves in-app notifications. It is the engine's
// event emitter: workflow events become notifications for the employee
// involved.
type Service struct {
	store  StoreAPI
	logger *slog.Logger
}

func New(store StoreAPI, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Emit implements requests.Emitter. Failures are logged, never propagated:
// a notification must not roll back a committed request.
func (s *Service) Emit(ctx context.Context, event requests.Event) {
	titulo, cuerpo := redactar(event)
	if _, err := s.store.Crear(ctx, Notificacion{
		EmpleadoID: event.EmpleadoID,
		Tipo:       event.Tipo,
		Titulo:     titulo,
		Cuerpo:     cuerpo,
	}); err != nil {
		s.logger.WarnContext(ctx, "no se pudo crear la notificación",
			slog.String("requestId", event.RequestID),
			slog.String("err", err.Error()),
		)
	}
}

func redactar(event requests.Event) (string, string) {
	switch event.Tipo {
	case requests.EventoSolicitudCreada:
		return "Solicitud registrada",
			fmt.Sprintf("Tu solicitud de %s fue registrada.", event.Solicitud)
	case requests.EventoSolicitudAprobada:
		return "Solicitud aprobada",
			fmt.Sprintf("Tu solicitud de %s fue aprobada.", event.Solicitud)
	case requests.EventoSolicitudRechazada:
		return "Solicitud rechazada",
			fmt.Sprintf("Tu solicitud de %s fue rechazada: %s", event.Solicitud, event.Detalle)
	}
	return event.Tipo, event.Solicitud
}

func (s *Service) Lista(ctx context.Context, empleadoID string, limit, offset int) ([]Notificacion, error) {
	return s.store.Lista(ctx, empleadoID, limit, offset)
}

func (s *Service) NoLeidas(ctx context.Context, empleadoID string) (int, error) {
	return s.store.NoLeidas(ctx, empleadoID)
}

func (s *Service) MarcarLeida(ctx context.Context, empleadoID, id string) error {
	return s.store.MarcarLeida(ctx, empleadoID, id)
}

func (s *Service) MarcarTodasLeidas(ctx context.Context, empleadoID string) error {
	return s.store.MarcarTodasLeidas(ctx, empleadoID)
}
