package empleadoshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sirh/internal/domain/audit"
	"sirh/internal/domain/auth"
	"sirh/internal/domain/empleados"
	"sirh/internal/transport/http/api"
	"sirh/internal/transport/http/middleware"
	"sirh/internal/transport/http/shared"
)

type Handler struct {
	Store *empleados.Store
	Audit *audit.Store
}

func NewHandler(store *empleados.Store, auditStore *audit.Store) *Handler {
	return &Handler{Store: store, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/empleados", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleLista)
		r.Get("/{empleadoID}", h.handleDetalle)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRol(auth.RoleAdmin, auth.RoleRoot))
			r.Post("/", h.handleCrear)
			r.Put("/{empleadoID}", h.handleActualizar)
			r.Delete("/{empleadoID}", h.handleDesactivar)
		})
	})
}

type empleadoPayload struct {
	NombreCompleto       string `json:"nombreCompleto"`
	ClavesPresupuestales string `json:"clavesPresupuestales"`
	Horario              string `json:"horario"`
	Adscripcion          string `json:"adscripcion"`
	NumeroAsistencia     string `json:"numeroAsistencia"`
	Tipo                 string `json:"tipo"`
	Nombramiento         string `json:"nombramiento"`
	FechaIngreso         string `json:"fechaIngreso"`
	Activo               bool   `json:"activo"`
	Email                string `json:"email"`
	Telefono             string `json:"telefono"`
}

func decodeEmpleado(r *http.Request) (empleados.Empleado, error) {
	var payload empleadoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return empleados.Empleado{}, errors.New("cuerpo de la solicitud inválido")
	}
	if payload.NombreCompleto == "" {
		return empleados.Empleado{}, errors.New("nombreCompleto es requerido")
	}
	ingreso, err := shared.ParseDate(payload.FechaIngreso)
	if err != nil || ingreso.IsZero() {
		return empleados.Empleado{}, errors.New("fechaIngreso inválida, use YYYY-MM-DD")
	}
	return empleados.Empleado{
		NombreCompleto:       payload.NombreCompleto,
		ClavesPresupuestales: payload.ClavesPresupuestales,
		Horario:              payload.Horario,
		Adscripcion:          payload.Adscripcion,
		NumeroAsistencia:     payload.NumeroAsistencia,
		Tipo:                 empleados.Tipo(payload.Tipo),
		Nombramiento:         empleados.Nombramiento(payload.Nombramiento),
		FechaIngreso:         ingreso,
		Activo:               payload.Activo,
		Email:                payload.Email,
		Telefono:             payload.Telefono,
	}, nil
}

func (h *Handler) handleLista(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	soloActivos := r.URL.Query().Get("todos") == ""
	lista, err := h.Store.Lista(r.Context(), soloActivos, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "no se pudo listar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, lista, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDetalle(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.PorID(r.Context(), chi.URLParam(r, "empleadoID"))
	if err != nil {
		if errors.Is(err, empleados.ErrNoEncontrado) {
			api.Fail(w, http.StatusNotFound, "not_found", "empleado no encontrado", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "lookup_failed", "no se pudo consultar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCrear(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	emp, err := decodeEmpleado(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.Crear(r.Context(), emp)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "no se pudo crear el empleado", middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.Record(r.Context(), actor.UserID, "crear", "empleado", id, emp.NombreCompleto)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActualizar(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	emp, err := decodeEmpleado(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	emp.ID = chi.URLParam(r, "empleadoID")

	if err := h.Store.Actualizar(r.Context(), emp); err != nil {
		if errors.Is(err, empleados.ErrNoEncontrado) {
			api.Fail(w, http.StatusNotFound, "not_found", "empleado no encontrado", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "no se pudo actualizar", middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.Record(r.Context(), actor.UserID, "actualizar", "empleado", emp.ID, "")
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDesactivar(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "empleadoID")
	if err := h.Store.Desactivar(r.Context(), id); err != nil {
		if errors.Is(err, empleados.ErrNoEncontrado) {
			api.Fail(w, http.StatusNotFound, "not_found", "empleado no encontrado", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "deactivate_failed", "no se pudo desactivar", middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.Record(r.Context(), actor.UserID, "desactivar", "empleado", id, "")
	api.Success(w, map[string]string{"estado": "inactivo"}, middleware.GetRequestID(r.Context()))
}
