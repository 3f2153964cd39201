package notifications

import (
	"context"

	"sirh/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Crear(ctx context.Context, n Notificacion) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO notificaciones (empleado_id, tipo, titulo, cuerpo)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, n.EmpleadoID, n.Tipo, n.Titulo, n.Cuerpo).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Lista(ctx context.Context, empleadoID string, limit, offset int) ([]Notificacion, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, empleado_id, tipo, titulo, cuerpo, leida, created_at
    FROM notificaciones
    WHERE empleado_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, empleadoID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Notificacion, 0)
	for rows.Next() {
		var n Notificacion
		if err := rows.Scan(&n.ID, &n.EmpleadoID, &n.Tipo, &n.Titulo, &n.Cuerpo, &n.Leida, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) NoLeidas(ctx context.Context, empleadoID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM notificaciones WHERE empleado_id = $1 AND leida = false
  `, empleadoID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) MarcarLeida(ctx context.Context, empleadoID, id string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notificaciones SET leida = true WHERE id = $1 AND empleado_id = $2
  `, id, empleadoID)
	return err
}

func (s *Store) MarcarTodasLeidas(ctx context.Context, empleadoID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notificaciones SET leida = true WHERE empleado_id = $1 AND leida = false
  `, empleadoID)
	return err
}
