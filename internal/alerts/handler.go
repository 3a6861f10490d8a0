package alerts

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/handlers"
	"github.com/JaimeStill/posture/pkg/routes"
)

// Handler provides HTTP endpoints for the alert feed.
type Handler struct {
	sys    System
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "alerts"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Routes returns the route group definition for alert endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/alerts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{orgId}", Handler: h.Get, OpenAPI: Spec.Get},
		},
	}
}

// Get returns the alert feed for the organization in the orgId path parameter.
// The optional severity query parameter restricts the returned alerts;
// counts always cover the full feed.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(r.PathValue("orgId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %q", ErrInvalidOrganization, r.PathValue("orgId")))
		return
	}

	severity := Severity(r.URL.Query().Get("severity"))
	if severity != "" && !severity.Valid() {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %q", ErrInvalidSeverity, severity))
		return
	}

	feed, err := h.sys.Feed(r.Context(), orgID, h.now())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if severity != "" {
		feed.Alerts = FilterSeverity(feed.Alerts, severity)
	}

	handlers.RespondJSON(w, http.StatusOK, feed)
}
