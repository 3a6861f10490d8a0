package escalation

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/handlers"
	"github.com/JaimeStill/posture/pkg/routes"
)

// Handler provides HTTP endpoints for verification records and escalation checks.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// ObligationsResponse is the effective role of an AI system and its checklist.
type ObligationsResponse struct {
	Role        Role         `json:"role"`
	Obligations []Obligation `json:"obligations"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "escalation"),
	}
}

// Routes returns the route group definition for verification and escalation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/verifications/{aiSystemId}/{variant}",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.Find, OpenAPI: Spec.Find},
					{Method: "PUT", Pattern: "", Handler: h.Update, OpenAPI: Spec.Update},
					{Method: "GET", Pattern: "/check", Handler: h.Check, OpenAPI: Spec.Check},
					{Method: "GET", Pattern: "/obligations", Handler: h.Obligations, OpenAPI: Spec.Obligations},
				},
			},
			{
				Prefix: "/escalations",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{orgId}", Handler: h.ListEscalated, OpenAPI: Spec.ListEscalated},
				},
			},
		},
	}
}

// Find returns the verification record for the AI system and variant path parameters.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, variant, err := target(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	v, err := h.sys.Find(r.Context(), id, variant)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Update applies a partial update from the JSON body and returns the stored record.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, variant, err := target(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	v, err := h.sys.Update(r.Context(), id, variant, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Check returns the escalation check for the AI system and variant.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	id, variant, err := target(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	check, err := h.sys.Check(r.Context(), id, variant)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, check)
}

// Obligations returns the effective role and obligation checklist for the AI system.
func (h *Handler) Obligations(w http.ResponseWriter, r *http.Request) {
	id, variant, err := target(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	v, err := h.sys.Find(r.Context(), id, variant)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		blank := Blank(id, variant)
		v = &blank
	}

	role := EffectiveRole(*v)
	handlers.RespondJSON(w, http.StatusOK, ObligationsResponse{
		Role:        role,
		Obligations: Obligations(role),
	})
}

// ListEscalated returns the escalated AI systems of the organization in the orgId path parameter.
func (h *Handler) ListEscalated(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(r.PathValue("orgId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: organization id %q", ErrInvalidRequest, r.PathValue("orgId")))
		return
	}

	items, err := h.sys.ListEscalated(r.Context(), orgID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

func target(r *http.Request) (uuid.UUID, Variant, error) {
	id, err := uuid.Parse(r.PathValue("aiSystemId"))
	if err != nil {
		return uuid.Nil, "", ErrInvalidRequest
	}

	variant := Variant(r.PathValue("variant"))
	if !variant.Valid() {
		return uuid.Nil, "", ErrInvalidVariant
	}

	return id, variant, nil
}
