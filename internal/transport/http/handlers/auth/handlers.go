package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sirh/internal/domain/auth"
	"sirh/internal/transport/http/api"
	"sirh/internal/transport/http/middleware"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Route("/auth/usuarios", func(r chi.Router) {
		r.Use(middleware.RequireRol(auth.RoleRoot))
		r.Post("/", h.handleRegistrar)
		r.Put("/{userID}/rol", h.handleCambiarRol)
		r.Post("/{userID}/desactivar", h.handleDesactivar)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "cuerpo de la solicitud inválido", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email y password son requeridos", middleware.GetRequestID(r.Context()))
		return
	}

	token, user, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrCredencialesInvalidas) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "credenciales inválidas", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "no se pudo iniciar sesión", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"token": token, "usuario": user}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRegistrar(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		Rol        string `json:"rol"`
		EmpleadoID string `json:"empleadoId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "cuerpo de la solicitud inválido", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Email == "" || payload.Password == "" || !auth.RolValido(payload.Rol) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email, password y rol válido son requeridos", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.Register(r.Context(), payload.Email, payload.Password, payload.Rol, payload.EmpleadoID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "no se pudo crear el usuario", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCambiarRol(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Rol string `json:"rol"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || !auth.RolValido(payload.Rol) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "rol válido requerido", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Service.CambiarRol(r.Context(), chi.URLParam(r, "userID"), payload.Rol)
	if err != nil {
		if errors.Is(err, auth.ErrUsuarioNoEncontrado) {
			api.Fail(w, http.StatusNotFound, "not_found", "usuario no encontrado", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "no se pudo actualizar el rol", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDesactivar(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Desactivar(r.Context(), chi.URLParam(r, "userID")); err != nil {
		if errors.Is(err, auth.ErrUsuarioNoEncontrado) {
			api.Fail(w, http.StatusNotFound, "not_found", "usuario no encontrado", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "no se pudo desactivar el usuario", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"desactivado": true}, middleware.GetRequestID(r.Context()))
}
