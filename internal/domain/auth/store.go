package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"sirh/internal/platform/querier"
)

var ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Rol          string     `json:"rol"`
	EmpleadoID   string     `json:"empleadoId"`
	Activo       bool       `json:"activo"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, rol, COALESCE(empleado_id, ''), activo, last_login, created_at
    FROM usuarios
    WHERE email = $1 AND activo = true
  `, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Rol, &u.EmpleadoID, &u.Activo, &u.LastLogin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUsuarioNoEncontrado
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, rol, COALESCE(empleado_id, ''), activo, last_login, created_at
    FROM usuarios
    WHERE id = $1
  `, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Rol, &u.EmpleadoID, &u.Activo, &u.LastLogin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUsuarioNoEncontrado
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u User) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO usuarios (email, password_hash, rol, empleado_id, activo)
    VALUES ($1,$2,$3,NULLIF($4,''),$5)
    RETURNING id
  `, u.Email, u.PasswordHash, u.Rol, u.EmpleadoID, u.Activo).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE usuarios SET last_login = now() WHERE id = $1", userID)
	return err
}

func (s *Store) UpdateUserRole(ctx context.Context, userID, rol string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE usuarios SET rol = $2 WHERE id = $1", userID, rol)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUsuarioNoEncontrado
	}
	return nil
}

func (s *Store) DeactivateUser(ctx context.Context, userID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE usuarios SET activo = false WHERE id = $1", userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUsuarioNoEncontrado
	}
	return nil
}
