package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sirh/internal/domain/audit"
	"sirh/internal/domain/auth"
	"sirh/internal/transport/http/api"
	"sirh/internal/transport/http/middleware"
	"sirh/internal/transport/http/shared"
)

type Handler struct {
	Store *audit.Store
}

func NewHandler(store *audit.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireRol(auth.RoleAdmin, auth.RoleRoot)).
		Get("/auditoria", h.handleLista)
}

func (h *Handler) handleLista(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	entradas, err := h.Store.Lista(r.Context(), r.URL.Query().Get("entidad"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "no se pudo listar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entradas, middleware.GetRequestID(r.Context()))
}
