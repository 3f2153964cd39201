package notifications

import "context"

type StoreAPI interface {
	Crear(ctx context.Context, n Notificacion) (string, error)
	Lista(ctx context.Context, empleadoID string, limit, offset int) ([]Notificacion, error)
	NoLeidas(ctx context.Context, empleadoID string) (int, error)
	MarcarLeida(ctx context.Context, empleadoID, id string) error
	MarcarTodasLeidas(ctx context.Context, empleadoID string) error
}
