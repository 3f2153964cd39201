package adeudos

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"sirh/internal/platform/querier"
)

var (
	ErrNoEncontrado   = errors.New("adeudo no encontrado")
	ErrEstadoInvalido = errors.New("el adeudo ya fue resuelto")
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Crear(ctx context.Context, a Adeudo) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO adeudos (empleado_id, concepto, monto, fecha, estado)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, a.EmpleadoID, a.Concepto, a.Monto, a.Fecha, EstadoPendiente).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) PorID(ctx context.Context, id string) (Adeudo, error) {
	var a Adeudo
	err := s.DB.QueryRow(ctx, `
    SELECT id, empleado_id, concepto, monto, fecha, estado, COALESCE(resuelto_por, ''), created_at
    FROM adeudos
    WHERE id = $1
  `, id).Scan(&a.ID, &a.EmpleadoID, &a.Concepto, &a.Monto, &a.Fecha, &a.Estado, &a.ResueltoPor, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Adeudo{}, ErrNoEncontrado
	}
	if err != nil {
		return Adeudo{}, err
	}
	return a, nil
}

func (s *Store) Lista(ctx context.Context, empleadoID, estado string) ([]Adeudo, error) {
	query := `
    SELECT id, empleado_id, concepto, monto, fecha, estado, COALESCE(resuelto_por, ''), created_at
    FROM adeudos
    WHERE 1=1
  `
	args := []any{}
	if empleadoID != "" {
		args = append(args, empleadoID)
		query += " AND empleado_id = $1"
	}
	if estado != "" {
		args = append(args, estado)
		if len(args) == 1 {
			query += " AND estado = $1"
		} else {
			query += " AND estado = $2"
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Adeudo, 0)
	for rows.Next() {
		var a Adeudo
		if err := rows.Scan(&a.ID, &a.EmpleadoID, &a.Concepto, &a.Monto, &a.Fecha, &a.Estado, &a.ResueltoPor, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Resolver marks a pending debt as settled. The estado guard lives in the
// UPDATE itself so two admins cannot both resolve it.
func (s *Store) Resolver(ctx context.Context, id, resueltoPor string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE adeudos SET estado = $2, resuelto_por = $3 WHERE id = $1 AND estado = $4
  `, id, EstadoResuelto, resueltoPor, EstadoPendiente)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.PorID(ctx, id); err != nil {
			return err
		}
		return ErrEstadoInvalido
	}
	return nil
}

// TotalPendiente sums the outstanding amount for one employee.
func (s *Store) TotalPendiente(ctx context.Context, empleadoID string) (string, error) {
	var total string
	if err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(monto), 0)::text
    FROM adeudos
    WHERE empleado_id = $1 AND estado = $2
  `, empleadoID, EstadoPendiente).Scan(&total); err != nil {
		return "", err
	}
	return total, nil
}
