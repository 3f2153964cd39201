package notificationshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sirh/internal/domain/notifications"
	"sirh/internal/transport/http/api"
	"sirh/internal/transport/http/middleware"
	"sirh/internal/transport/http/shared"
)

type Handler struct {
	Service *notifications.Service
}

func NewHandler(service *notifications.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notificaciones", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleLista)
		r.Post("/leidas", h.handleMarcarTodas)
		r.Post("/{notificacionID}/leida", h.handleMarcarLeida)
	})
}

func (h *Handler) handleLista(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	page := shared.ParsePagination(r, 100, 500)

	noLeidas, err := h.Service.NoLeidas(r.Context(), actor.EmpleadoID)
	if err != nil {
		noLeidas = 0
	}
	items, err := h.Service.Lista(r.Context(), actor.EmpleadoID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "no se pudo listar", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("X-Unread-Count", strconv.Itoa(noLeidas))
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarcarTodas(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	if err := h.Service.MarcarTodasLeidas(r.Context(), actor.EmpleadoID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "no se pudo actualizar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"estado": "leidas"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarcarLeida(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	if err := h.Service.MarcarLeida(r.Context(), actor.EmpleadoID, chi.URLParam(r, "notificacionID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "no se pudo actualizar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"estado": "leida"}, middleware.GetRequestID(r.Context()))
}
