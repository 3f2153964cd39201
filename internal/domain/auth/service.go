package auth

import (
	"context"
	"errors"
	"time"

	platformauth "sirh/internal/auth"
)

var ErrCredencialesInvalidas = errors.New("credenciales inválidas")

const TokenTTL = 8 * time.Hour

type Service struct {
	Store     *Store
	JWTSecret string
}

func NewService(store *Store, jwtSecret string) *Service {
	return &Service{Store: store, JWTSecret: jwtSecret}
}

// Login verifies credentials and issues a signed token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	user, err := s.Store.FindActiveUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUsuarioNoEncontrado) {
			return "", User{}, ErrCredencialesInvalidas
		}
		return "", User{}, err
	}
	if err := platformauth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", User{}, ErrCredencialesInvalidas
	}

	token, err := platformauth.GenerateToken(s.JWTSecret, platformauth.Claims{
		UserID:     user.ID,
		EmpleadoID: user.EmpleadoID,
		Rol:        user.Rol,
	}, TokenTTL)
	if err != nil {
		return "", User{}, err
	}

	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

func (s *Service) Register(ctx context.Context, email, password, rol, empleadoID string) (string, error) {
	if !RolValido(rol) {
		return "", errors.New("rol inválido")
	}
	hash, err := platformauth.HashPassword(password)
	if err != nil {
		return "", err
	}
	return s.Store.CreateUser(ctx, User{
		Email:        email,
		PasswordHash: hash,
		Rol:          rol,
		EmpleadoID:   empleadoID,
		Activo:       true,
	})
}

// CambiarRol reassigns a user's role and returns the updated account.
func (s *Service) CambiarRol(ctx context.Context, userID, rol string) (User, error) {
	if !RolValido(rol) {
		return User{}, errors.New("rol inválido")
	}
	if err := s.Store.UpdateUserRole(ctx, userID, rol); err != nil {
		return User{}, err
	}
	return s.Store.UserByID(ctx, userID)
}

// Desactivar disables an account; the user can no longer log in.
func (s *Service) Desactivar(ctx context.Context, userID string) error {
	return s.Store.DeactivateUser(ctx, userID)
}
