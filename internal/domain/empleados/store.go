package empleados

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sirh/internal/platform/querier"
)

var ErrNoEncontrado = errors.New("empleado no encontrado")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const columnas = `
    id, nombre_completo, claves_presupuestales, horario, adscripcion,
    numero_asistencia, tipo, nombramiento, fecha_ingreso, activo,
    COALESCE(email, ''), COALESCE(telefono, '')
`

func (s *Store) PorID(ctx context.Context, id string) (Empleado, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+columnas+`
    FROM empleados
    WHERE id = $1
  `, id)
	return scanEmpleado(row)
}

func (s *Store) Lista(ctx context.Context, soloActivos bool, limit, offset int) ([]Empleado, error) {
	query := `
    SELECT ` + columnas + `
    FROM empleados
  `
	args := []any{}
	if soloActivos {
		query += " WHERE activo = true"
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY nombre_completo LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Empleado, 0)
	for rows.Next() {
		e, err := scanEmpleado(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Crear(ctx context.Context, e Empleado) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO empleados (nombre_completo, claves_presupuestales, horario, adscripcion,
                           numero_asistencia, tipo, nombramiento, fecha_ingreso, activo,
                           email, telefono)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NULLIF($10,''),NULLIF($11,''))
    RETURNING id
  `, e.NombreCompleto, e.ClavesPresupuestales, e.Horario, e.Adscripcion,
		e.NumeroAsistencia, e.Tipo, e.Nombramiento, e.FechaIngreso, e.Activo,
		e.Email, e.Telefono).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Actualizar(ctx context.Context, e Empleado) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE empleados
    SET nombre_completo = $2, claves_presupuestales = $3, horario = $4,
        adscripcion = $5, numero_asistencia = $6, tipo = $7, nombramiento = $8,
        fecha_ingreso = $9, activo = $10, email = NULLIF($11,''), telefono = NULLIF($12,'')
    WHERE id = $1
  `, e.ID, e.NombreCompleto, e.ClavesPresupuestales, e.Horario, e.Adscripcion,
		e.NumeroAsistencia, e.Tipo, e.Nombramiento, e.FechaIngreso, e.Activo,
		e.Email, e.Telefono)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEncontrado
	}
	return nil
}

func (s *Store) Desactivar(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE empleados SET activo = false WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEncontrado
	}
	return nil
}

func scanEmpleado(row pgx.Row) (Empleado, error) {
	var e Empleado
	err := row.Scan(&e.ID, &e.NombreCompleto, &e.ClavesPresupuestales, &e.Horario,
		&e.Adscripcion, &e.NumeroAsistencia, &e.Tipo, &e.Nombramiento,
		&e.FechaIngreso, &e.Activo, &e.Email, &e.Telefono)
	if errors.Is(err, pgx.ErrNoRows) {
		return Empleado{}, ErrNoEncontrado
	}
	if err != nil {
		return Empleado{}, err
	}
	return e, nil
}
