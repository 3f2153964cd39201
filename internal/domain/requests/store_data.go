package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) Contadores(ctx context.Context, empleadoID string, anio int) (Contadores, error) {
	return scanContadores(s.DB.QueryRow(ctx, `
    SELECT empleado_id, anio, solicitudes_economicos, dias_economicos_usados,
           fecha_ultima_solicitud_economico, permisos_mes, permisos_horas_q1,
           permisos_horas_q2, cuidados_maternos_usados, cuidados_medicos_usados
    FROM contadores_uso
    WHERE empleado_id = $1 AND anio = $2
  `, empleadoID, anio), empleadoID, anio)
}

// contadoresForUpdate locks the counters row for the rest of the
// transaction, inserting the zero row first so there is always something
// to lock. Concurrent commits for the same employee and year queue here.
func (s *Store) contadoresForUpdate(ctx context.Context, tx pgx.Tx, empleadoID string, anio int) (Contadores, error) {
	if _, err := tx.Exec(ctx, `
    INSERT INTO contadores_uso (empleado_id, anio)
    VALUES ($1, $2)
    ON CONFLICT (empleado_id, anio) DO NOTHING
  `, empleadoID, anio); err != nil {
		return Contadores{}, fmt.Errorf("insertando fila de contadores: %w", err)
	}

	return scanContadores(tx.QueryRow(ctx, `
    SELECT empleado_id, anio, solicitudes_economicos, dias_economicos_usados,
           fecha_ultima_solicitud_economico, permisos_mes, permisos_horas_q1,
           permisos_horas_q2, cuidados_maternos_usados, cuidados_medicos_usados
    FROM contadores_uso
    WHERE empleado_id = $1 AND anio = $2
    FOR UPDATE
  `, empleadoID, anio), empleadoID, anio)
}

func scanContadores(row pgx.Row, empleadoID string, anio int) (Contadores, error) {
	var c Contadores
	err := row.Scan(
		&c.EmpleadoID,
		&c.Anio,
		&c.SolicitudesEconomicos,
		&c.DiasEconomicosUsados,
		&c.FechaUltimaSolicitudEconomico,
		&c.PermisosMes,
		&c.PermisosHorasQ1,
		&c.PermisosHorasQ2,
		&c.CuidadosMaternosUsados,
		&c.CuidadosMedicosUsados,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contadores{EmpleadoID: empleadoID, Anio: anio}, nil
	}
	if err != nil {
		return Contadores{}, err
	}
	return c, nil
}

func (s *Store) guardarContadores(ctx context.Context, tx pgx.Tx, c Contadores) error {
	_, err := tx.Exec(ctx, `
    UPDATE contadores_uso
    SET solicitudes_economicos = $3,
        dias_economicos_usados = $4,
        fecha_ultima_solicitud_economico = $5,
        permisos_mes = $6,
        permisos_horas_q1 = $7,
        permisos_horas_q2 = $8,
        cuidados_maternos_usados = $9,
        cuidados_medicos_usados = $10,
        updated_at = now()
    WHERE empleado_id = $1 AND anio = $2
  `, c.EmpleadoID, c.Anio, c.SolicitudesEconomicos, c.DiasEconomicosUsados,
		c.FechaUltimaSolicitudEconomico, c.PermisosMes, c.PermisosHorasQ1,
		c.PermisosHorasQ2, c.CuidadosMaternosUsados, c.CuidadosMedicosUsados)
	return err
}

func (s *Store) conAplicar(ctx context.Context, empleadoID string, anio int, aplicar func(cont *Contadores) error, escribir func(tx pgx.Tx) error) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cont, err := s.contadoresForUpdate(ctx, tx, empleadoID, anio)
	if err != nil {
		return err
	}
	if err := aplicar(&cont); err != nil {
		return err
	}
	if err := s.guardarContadores(ctx, tx, cont); err != nil {
		return err
	}
	if err := escribir(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) CrearJustificante(ctx context.Context, j *Justificante, aplicar func(cont *Contadores) error) error {
	return s.conAplicar(ctx, j.EmpleadoID, j.FechaInicio.Year(), aplicar, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
      INSERT INTO justificantes (id, empleado_id, tipo, fecha_inicio, fecha_fin,
                                 dias_solicitados, motivo, lugar, estado, creado_por)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
      RETURNING created_at
    `, j.ID, j.EmpleadoID, j.Tipo, j.FechaInicio, j.FechaFin,
			j.DiasSolicitados, j.Motivo, j.Lugar, j.Estado, j.CreadoPor).Scan(&j.CreatedAt)
	})
}

func (s *Store) CrearPrestacion(ctx context.Context, p *Prestacion, aplicar func(cont *Contadores) error) error {
	return s.conAplicar(ctx, p.EmpleadoID, p.FechaInicio.Year(), aplicar, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
      INSERT INTO prestaciones (id, empleado_id, tipo, fecha_inicio, fecha_fin,
                                dias_solicitados, motivo, estado, creado_por)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
      RETURNING created_at, updated_at
    `, p.ID, p.EmpleadoID, p.Tipo, p.FechaInicio, p.FechaFin,
			p.DiasSolicitados, p.Motivo, p.Estado, p.CreadoPor).Scan(&p.CreatedAt, &p.UpdatedAt)
	})
}

func (s *Store) JustificantePorID(ctx context.Context, id string) (Justificante, error) {
	var j Justificante
	err := s.DB.QueryRow(ctx, `
    SELECT id, empleado_id, tipo, fecha_inicio, fecha_fin, dias_solicitados,
           motivo, lugar, estado, creado_por, created_at
    FROM justificantes
    WHERE id = $1
  `, id).Scan(&j.ID, &j.EmpleadoID, &j.Tipo, &j.FechaInicio, &j.FechaFin,
		&j.DiasSolicitados, &j.Motivo, &j.Lugar, &j.Estado, &j.CreadoPor, &j.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Justificante{}, ErrNoEncontrado
	}
	if err != nil {
		return Justificante{}, err
	}
	return j, nil
}

func (s *Store) PrestacionPorID(ctx context.Context, id string) (Prestacion, error) {
	var p Prestacion
	err := s.DB.QueryRow(ctx, `
    SELECT id, empleado_id, tipo, fecha_inicio, fecha_fin, dias_solicitados,
           motivo, estado, COALESCE(aprobada_por, ''), COALESCE(motivo_rechazo, ''),
           creado_por, created_at, updated_at
    FROM prestaciones
    WHERE id = $1
  `, id).Scan(&p.ID, &p.EmpleadoID, &p.Tipo, &p.FechaInicio, &p.FechaFin,
		&p.DiasSolicitados, &p.Motivo, &p.Estado, &p.AprobadaPor, &p.MotivoRechazo,
		&p.CreadoPor, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Prestacion{}, ErrNoEncontrado
	}
	if err != nil {
		return Prestacion{}, err
	}
	return p, nil
}

func (s *Store) Justificantes(ctx context.Context, filtro Filtro) ([]Justificante, error) {
	query := `
    SELECT id, empleado_id, tipo, fecha_inicio, fecha_fin, dias_solicitados,
           motivo, lugar, estado, creado_por, created_at
    FROM justificantes
    WHERE 1=1
  `
	query, args := aplicarFiltro(query, filtro)
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Justificante, 0)
	for rows.Next() {
		var j Justificante
		if err := rows.Scan(&j.ID, &j.EmpleadoID, &j.Tipo, &j.FechaInicio, &j.FechaFin,
			&j.DiasSolicitados, &j.Motivo, &j.Lugar, &j.Estado, &j.CreadoPor, &j.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) Prestaciones(ctx context.Context, filtro Filtro) ([]Prestacion, error) {
	query := `
    SELECT id, empleado_id, tipo, fecha_inicio, fecha_fin, dias_solicitados,
           motivo, estado, COALESCE(aprobada_por, ''), COALESCE(motivo_rechazo, ''),
           creado_por, created_at, updated_at
    FROM prestaciones
    WHERE 1=1
  `
	query, args := aplicarFiltro(query, filtro)
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Prestacion, 0)
	for rows.Next() {
		var p Prestacion
		if err := rows.Scan(&p.ID, &p.EmpleadoID, &p.Tipo, &p.FechaInicio, &p.FechaFin,
			&p.DiasSolicitados, &p.Motivo, &p.Estado, &p.AprobadaPor, &p.MotivoRechazo,
			&p.CreadoPor, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func aplicarFiltro(query string, filtro Filtro) (string, []any) {
	args := []any{}
	if filtro.EmpleadoID != "" {
		args = append(args, filtro.EmpleadoID)
		query += fmt.Sprintf(" AND empleado_id = $%d", len(args))
	}
	if filtro.Tipo != "" {
		args = append(args, filtro.Tipo)
		query += fmt.Sprintf(" AND tipo = $%d", len(args))
	}
	if filtro.Estado != "" {
		args = append(args, filtro.Estado)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	return query, args
}

func (s *Store) ActualizarJustificante(ctx context.Context, j Justificante, estadoPrevio string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE justificantes SET estado = $2 WHERE id = $1 AND estado = $3
  `, j.ID, j.Estado, estadoPrevio)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var existe bool
		if err := s.DB.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM justificantes WHERE id = $1)`, j.ID).Scan(&existe); err != nil {
			return err
		}
		if existe {
			return ErrEstadoInvalido
		}
		return ErrNoEncontrado
	}
	return nil
}

func (s *Store) ResolverPrestacion(ctx context.Context, p Prestacion, aplicar func(cont *Contadores) error) error {
	if aplicar == nil {
		aplicar = func(*Contadores) error { return nil }
	}
	// The estado guard makes the transition a compare-and-set: the loser of
	// two concurrent resolutions matches zero rows, errors out and rolls the
	// whole transaction back, counters included.
	return s.conAplicar(ctx, p.EmpleadoID, p.FechaInicio.Year(), aplicar, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
      UPDATE prestaciones
      SET estado = $2, aprobada_por = NULLIF($3, ''), motivo_rechazo = NULLIF($4, ''), updated_at = now()
      WHERE id = $1 AND estado = $5
    `, p.ID, p.Estado, p.AprobadaPor, p.MotivoRechazo, EstadoPendiente)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var existe bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM prestaciones WHERE id = $1)`, p.ID).Scan(&existe); err != nil {
				return err
			}
			if existe {
				return ErrEstadoInvalido
			}
			return ErrNoEncontrado
		}
		return nil
	})
}

func (s *Store) PrestacionTraslapada(ctx context.Context, empleadoID, tipo string, inicio, fin time.Time) (bool, error) {
	var existe bool
	if err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (
      SELECT 1 FROM prestaciones
      WHERE empleado_id = $1 AND tipo = $2 AND estado <> $3
        AND fecha_inicio <= $5 AND fecha_fin >= $4
    )
  `, empleadoID, tipo, EstadoRechazada, inicio, fin).Scan(&existe); err != nil {
		return false, err
	}
	return existe, nil
}
