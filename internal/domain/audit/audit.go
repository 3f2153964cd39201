package audit

import (
	"context"
	"log/slog"
	"time"

	"sirh/internal/platform/querier"
	"sirh/internal/requestctx"
)

// Entry is one line of the administrative audit trail.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Accion    string    `json:"accion"`
	Entidad   string    `json:"entidad"`
	EntidadID string    `json:"entidadId"`
	Detalle   string    `json:"detalle,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	DB     querier.Querier
	Logger *slog.Logger
}

func NewStore(db querier.Querier, logger *slog.Logger) *Store {
	return &Store{DB: db, Logger: logger}
}

// Record appends to the trail. Audit failures are logged and swallowed so
// they never break the operation being audited.
func (s *Store) Record(ctx context.Context, userID, accion, entidad, entidadID, detalle string) {
	if s == nil || s.DB == nil {
		return
	}
	if _, err := s.DB.Exec(ctx, `
    INSERT INTO auditoria (user_id, accion, entidad, entidad_id, detalle, request_id)
    VALUES ($1,$2,$3,$4,NULLIF($5,''),NULLIF($6,''))
  `, userID, accion, entidad, entidadID, detalle, requestctx.GetRequestID(ctx)); err != nil {
		s.Logger.WarnContext(ctx, "auditoría no registrada",
			slog.String("accion", accion),
			slog.String("err", err.Error()),
		)
	}
}

func (s *Store) Lista(ctx context.Context, entidad string, limit, offset int) ([]Entry, error) {
	query := `
    SELECT id, user_id, accion, entidad, entidad_id, COALESCE(detalle, ''),
           COALESCE(request_id, ''), created_at
    FROM auditoria
  `
	args := []any{}
	if entidad != "" {
		args = append(args, entidad)
		query += " WHERE entidad = $1"
	}
	args = append(args, limit, offset)
	if entidad != "" {
		query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"
	} else {
		query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Accion, &e.Entidad, &e.EntidadID, &e.Detalle, &e.RequestID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
