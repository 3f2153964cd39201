package prestacioneshandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sirh/internal/domain/audit"
	"sirh/internal/domain/auth"
	"sirh/internal/domain/requests"
	"sirh/internal/transport/http/api"
	justificanteshandler "sirh/internal/transport/http/handlers/justificantes"
	"sirh/internal/transport/http/middleware"
)

type Handler struct {
	Service *requests.Service
	Audit   *audit.Store
}

func NewHandler(service *requests.Service, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/prestaciones", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/validar", h.handleValidar)
		r.Post("/", h.handleCrear)
		r.Get("/", h.handleLista)
		r.Get("/{prestacionID}", h.handleDetalle)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRol(auth.RoleAdmin, auth.RoleRoot))
			r.Post("/{prestacionID}/aprobar", h.handleAprobar)
			r.Post("/{prestacionID}/rechazar", h.handleRechazar)
		})
	})
}

func (h *Handler) handleValidar(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	empleadoID, draft, err := justificanteshandler.DecodeDraft(r, actor)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	eval, err := h.Service.ValidarPrestacion(r.Context(), empleadoID, draft)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "validation_failed", "no se pudo validar la solicitud", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, eval, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCrear(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	empleadoID, draft, err := justificanteshandler.DecodeDraft(r, actor)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	p, err := h.Service.CrearPrestacion(r.Context(), actor, empleadoID, draft)
	if err != nil {
		justificanteshandler.FailWorkflow(w, r, err)
		return
	}
	h.Audit.Record(r.Context(), actor.UserID, "crear", "prestacion", p.ID, p.Tipo)
	api.Created(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLista(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	filtro := requests.Filtro{
		EmpleadoID: r.URL.Query().Get("empleadoId"),
		Tipo:       r.URL.Query().Get("tipo"),
		Estado:     r.URL.Query().Get("estado"),
	}
	lista, err := h.Service.Prestaciones(r.Context(), actor, filtro)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "no se pudo listar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, lista, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDetalle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	p, err := h.Service.Prestacion(r.Context(), actor, chi.URLParam(r, "prestacionID"))
	if err != nil {
		justificanteshandler.FailWorkflow(w, r, err)
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAprobar(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	p, err := h.Service.AprobarPrestacion(r.Context(), actor, chi.URLParam(r, "prestacionID"))
	if err != nil {
		justificanteshandler.FailWorkflow(w, r, err)
		return
	}
	h.Audit.Record(r.Context(), actor.UserID, "aprobar", "prestacion", p.ID, "")
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRechazar(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	var payload struct {
		Motivo string `json:"motivo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "cuerpo de la solicitud inválido", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Motivo == "" {
		api.Fail(w, http.StatusBadRequest, "motivo_requerido", "el motivo de rechazo es requerido", middleware.GetRequestID(r.Context()))
		return
	}

	p, err := h.Service.RechazarPrestacion(r.Context(), actor, chi.URLParam(r, "prestacionID"), payload.Motivo)
	if err != nil {
		justificanteshandler.FailWorkflow(w, r, err)
		return
	}
	h.Audit.Record(r.Context(), actor.UserID, "rechazar", "prestacion", p.ID, payload.Motivo)
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}
