package adeudoshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"sirh/internal/domain/adeudos"
	"sirh/internal/domain/audit"
	"sirh/internal/domain/auth"
	"sirh/internal/transport/http/api"
	"sirh/internal/transport/http/middleware"
	"sirh/internal/transport/http/shared"
)

type Handler struct {
	Store *adeudos.Store
	Audit *audit.Store
}

func NewHandler(store *adeudos.Store, auditStore *audit.Store) *Handler {
	return &Handler{Store: store, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/adeudos", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleLista)
		r.Get("/total/{empleadoID}", h.handleTotal)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRol(auth.RoleAdmin, auth.RoleRoot))
			r.Post("/", h.handleCrear)
			r.Post("/{adeudoID}/resolver", h.handleResolver)
		})
	})
}

func (h *Handler) handleLista(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	empleadoID := r.URL.Query().Get("empleadoId")
	if !auth.PuedeVerTodo(actor.Rol) {
		empleadoID = actor.EmpleadoID
	}

	lista, err := h.Store.Lista(r.Context(), empleadoID, r.URL.Query().Get("estado"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "no se pudo listar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, lista, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTotal(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	empleadoID := chi.URLParam(r, "empleadoID")
	if !auth.PuedeVerTodo(actor.Rol) && actor.EmpleadoID != empleadoID {
		api.Fail(w, http.StatusForbidden, "forbidden", "operación no permitida", middleware.GetRequestID(r.Context()))
		return
	}

	total, err := h.Store.TotalPendiente(r.Context(), empleadoID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "total_failed", "no se pudo calcular", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"empleadoId": empleadoID, "totalPendiente": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCrear(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	var payload struct {
		EmpleadoID string `json:"empleadoId"`
		Concepto   string `json:"concepto"`
		Monto      string `json:"monto"`
		Fecha      string `json:"fecha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "cuerpo de la solicitud inválido", middleware.GetRequestID(r.Context()))
		return
	}
	monto, err := decimal.NewFromString(payload.Monto)
	if err != nil || monto.IsNegative() || monto.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "monto debe ser un decimal positivo", middleware.GetRequestID(r.Context()))
		return
	}
	fecha, err := shared.ParseDate(payload.Fecha)
	if err != nil || fecha.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "fecha inválida, use YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Store.Crear(r.Context(), adeudos.Adeudo{
		EmpleadoID: payload.EmpleadoID,
		Concepto:   payload.Concepto,
		Monto:      monto,
		Fecha:      fecha,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "no se pudo crear el adeudo", middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.Record(r.Context(), actor.UserID, "crear", "adeudo", id, payload.Concepto)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleResolver(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "adeudoID")

	if err := h.Store.Resolver(r.Context(), id, actor.UserID); err != nil {
		switch {
		case errors.Is(err, adeudos.ErrNoEncontrado):
			api.Fail(w, http.StatusNotFound, "not_found", "adeudo no encontrado", middleware.GetRequestID(r.Context()))
		case errors.Is(err, adeudos.ErrEstadoInvalido):
			api.Fail(w, http.StatusConflict, "estado_invalido", "el adeudo ya fue resuelto", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "resolve_failed", "no se pudo resolver", middleware.GetRequestID(r.Context()))
		}
		return
	}
	h.Audit.Record(r.Context(), actor.UserID, "resolver", "adeudo", id, "")
	api.Success(w, map[string]string{"estado": adeudos.EstadoResuelto}, middleware.GetRequestID(r.Context()))
}
