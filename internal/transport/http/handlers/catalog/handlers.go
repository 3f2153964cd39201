package cataloghandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sirh/internal/domain/calendar"
	"sirh/internal/domain/catalog"
	"sirh/internal/transport/http/api"
	"sirh/internal/transport/http/middleware"
)

type Handler struct {
	Catalogo *catalog.Store
	Cal      *calendar.Calendar
}

func NewHandler(catalogo *catalog.Store, cal *calendar.Calendar) *Handler {
	return &Handler{Catalogo: catalogo, Cal: cal}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalogos", func(r chi.Router) {
		r.Get("/justificantes", h.handleJustificantes)
		r.Get("/prestaciones", h.handlePrestaciones)
		r.Get("/festivos", h.handleFestivos)
	})
}

func (h *Handler) handleJustificantes(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Catalogo.Justificantes(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePrestaciones(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Catalogo.Prestaciones(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFestivos(w http.ResponseWriter, r *http.Request) {
	anio := time.Now().Year()
	if raw := r.URL.Query().Get("anio"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "anio inválido", middleware.GetRequestID(r.Context()))
			return
		}
		anio = parsed
	}
	api.Success(w, map[string]any{
		"anio":       anio,
		"festivos":   h.Cal.Festivos(anio),
		"vacaciones": h.Cal.Vacaciones(),
	}, middleware.GetRequestID(r.Context()))
}
