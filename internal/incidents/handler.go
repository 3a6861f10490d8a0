package incidents

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/handlers"
	"github.com/JaimeStill/posture/pkg/pagination"
	"github.com/JaimeStill/posture/pkg/routes"
)

// Handler provides HTTP endpoints for incident operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// ReportRequest optionally overrides the disclosure time recorded by MarkReported.
type ReportRequest struct {
	ReportedAt *time.Time `json:"reported_at,omitempty"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "incidents"),
		pagination: pagination,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Routes returns the route group definition for incident endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/incidents",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: Spec.Search},
			{Method: "POST", Pattern: "/deadline", Handler: h.Preview, OpenAPI: Spec.Preview},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "GET", Pattern: "/{id}/deadline", Handler: h.Deadline, OpenAPI: Spec.Deadline},
			{Method: "POST", Pattern: "/{id}/report", Handler: h.Report, OpenAPI: Spec.Report},
		},
	}
}

// List returns a paginated list of incidents with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching incidents.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIncident)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single incident by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIncident)
		return
	}

	incident, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, incident)
}

// Create records a new incident. The response carries the computed deadline.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIncident)
		return
	}

	incident, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, incident)
}

// Deadline evaluates the stored deadline of an incident against the current time.
func (h *Handler) Deadline(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIncident)
		return
	}

	incident, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Evaluate(incident.DeadlineAt, h.now()))
}

// Preview computes a deadline without persisting anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req DeadlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AwareAt.IsZero() {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIncident)
		return
	}

	if !req.Category.Valid() {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidCategory)
		return
	}

	deadline := Deadline(req.AwareAt, req.Category)
	handlers.RespondJSON(w, http.StatusOK, Evaluate(deadline, h.now()))
}

// Report marks an incident as disclosed. An empty body records the current time.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIncident)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIncident)
		return
	}

	reportedAt := h.now()
	if req.ReportedAt != nil {
		reportedAt = *req.ReportedAt
	}

	incident, err := h.sys.MarkReported(r.Context(), id, reportedAt)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, incident)
}
