package justificanteshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sirh/internal/domain/audit"
	"sirh/internal/domain/empleados"
	"sirh/internal/domain/requests"
	"sirh/internal/platform/pdf"
	"sirh/internal/transport/http/api"
	"sirh/internal/transport/http/middleware"
	"sirh/internal/transport/http/shared"
)

type Handler struct {
	Service   *requests.Service
	Empleados requests.EmpleadoDirectory
	Audit     *audit.Store
}

func NewHandler(service *requests.Service, dir requests.EmpleadoDirectory, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Empleados: dir, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/justificantes", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/validar", h.handleValidar)
		r.Post("/", h.handleCrear)
		r.Get("/", h.handleLista)
		r.Get("/{justificanteID}", h.handleDetalle)
		r.Get("/{justificanteID}/pdf", h.handlePDF)
		r.Post("/{justificanteID}/entregar", h.handleEntregar)
	})
	r.With(middleware.RequireAuth).Get("/contadores/{empleadoID}", h.handleContadores)
}

type draftPayload struct {
	EmpleadoID  string `json:"empleadoId"`
	Tipo        string `json:"tipo"`
	FechaInicio string `json:"fechaInicio"`
	FechaFin    string `json:"fechaFin"`
	Motivo      string `json:"motivo"`
	Lugar       string `json:"lugar"`
}

// DecodeDraft turns the wire payload into a Draft plus the target employee,
// defaulting to the actor's own employee.
func DecodeDraft(r *http.Request, actor requests.Actor) (string, requests.Draft, error) {
	var payload draftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return "", requests.Draft{}, errors.New("cuerpo de la solicitud inválido")
	}
	inicio, err := shared.ParseDate(payload.FechaInicio)
	if err != nil {
		return "", requests.Draft{}, errors.New("fechaInicio inválida, use YYYY-MM-DD")
	}
	draft := requests.Draft{
		Tipo:        payload.Tipo,
		FechaInicio: inicio,
		Motivo:      payload.Motivo,
		Lugar:       payload.Lugar,
	}
	if payload.FechaFin != "" {
		fin, err := shared.ParseDate(payload.FechaFin)
		if err != nil {
			return "", requests.Draft{}, errors.New("fechaFin inválida, use YYYY-MM-DD")
		}
		draft.FechaFin = &fin
	}
	empleadoID := payload.EmpleadoID
	if empleadoID == "" {
		empleadoID = actor.EmpleadoID
	}
	return empleadoID, draft, nil
}

func (h *Handler) handleValidar(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	empleadoID, draft, err := DecodeDraft(r, actor)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	eval, err := h.Service.ValidarJustificante(r.Context(), empleadoID, draft)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "validation_failed", "no se pudo validar la solicitud", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, eval, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCrear(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	empleadoID, draft, err := DecodeDraft(r, actor)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	j, err := h.Service.CrearJustificante(r.Context(), actor, empleadoID, draft)
	if err != nil {
		FailWorkflow(w, r, err)
		return
	}

	h.Audit.Record(r.Context(), actor.UserID, "crear", "justificante", j.ID, j.Tipo)
	api.Created(w, j, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLista(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	filtro := requests.Filtro{
		EmpleadoID: r.URL.Query().Get("empleadoId"),
		Tipo:       r.URL.Query().Get("tipo"),
		Estado:     r.URL.Query().Get("estado"),
	}
	lista, err := h.Service.Justificantes(r.Context(), actor, filtro)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "no se pudo listar", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, lista, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDetalle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	j, err := h.Service.Justificante(r.Context(), actor, chi.URLParam(r, "justificanteID"))
	if err != nil {
		FailWorkflow(w, r, err)
		return
	}
	api.Success(w, j, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	j, err := h.Service.Justificante(r.Context(), actor, chi.URLParam(r, "justificanteID"))
	if err != nil {
		FailWorkflow(w, r, err)
		return
	}

	emp, err := h.Empleados.PorID(r.Context(), j.EmpleadoID)
	if err != nil {
		emp = empleados.Empleado{ID: j.EmpleadoID}
	}
	doc, err := pdf.RenderJustificante(j, emp)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "no se pudo generar el pdf", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="justificante-`+j.ID+`.pdf"`)
	_, _ = w.Write(doc)
}

func (h *Handler) handleEntregar(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	j, err := h.Service.EntregarJustificante(r.Context(), actor, chi.URLParam(r, "justificanteID"))
	if err != nil {
		FailWorkflow(w, r, err)
		return
	}
	h.Audit.Record(r.Context(), actor.UserID, "entregar", "justificante", j.ID, "")
	api.Success(w, j, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleContadores(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	anio := time.Now().Year()
	if raw := r.URL.Query().Get("anio"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "anio inválido", middleware.GetRequestID(r.Context()))
			return
		}
		anio = parsed
	}

	cont, err := h.Service.Contadores(r.Context(), actor, chi.URLParam(r, "empleadoID"), anio)
	if err != nil {
		FailWorkflow(w, r, err)
		return
	}
	api.Success(w, cont, middleware.GetRequestID(r.Context()))
}

// FailWorkflow maps engine errors onto the wire contract. Rule rejections
// travel as 422 with the full violation list in the details.
func FailWorkflow(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	var rechazo *requests.RechazoError
	switch {
	case errors.As(err, &rechazo):
		api.FailWithDetails(w, http.StatusUnprocessableEntity, "reglas_violadas",
			"la solicitud viola reglas de negocio", rechazo.Eval, requestID)
	case errors.Is(err, requests.ErrNoAutorizado):
		api.Fail(w, http.StatusForbidden, "forbidden", "operación no permitida", requestID)
	case errors.Is(err, requests.ErrNoEncontrado):
		api.Fail(w, http.StatusNotFound, "not_found", "solicitud no encontrada", requestID)
	case errors.Is(err, requests.ErrMotivoRequerido):
		api.Fail(w, http.StatusBadRequest, "motivo_requerido", err.Error(), requestID)
	case errors.Is(err, requests.ErrEstadoInvalido):
		api.Fail(w, http.StatusConflict, "estado_invalido", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "error interno", requestID)
	}
}
