package readiness

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/handlers"
	"github.com/JaimeStill/posture/pkg/routes"
)

// Handler provides HTTP endpoints for readiness scoring.
type Handler struct {
	sys    System
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "readiness"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Routes returns the route group definition for readiness endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/readiness",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{orgId}", Handler: h.Get, OpenAPI: Spec.Get},
		},
	}
}

// Get returns the readiness result for the organization in the orgId path parameter.
// The nil UUID means no organization is in context and yields the empty result;
// an id that does not parse is rejected.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(r.PathValue("orgId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %q", ErrInvalidOrganization, r.PathValue("orgId")))
		return
	}

	result, err := h.sys.Compute(r.Context(), orgID, h.now())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
