package reports

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/handlers"
	"github.com/JaimeStill/posture/pkg/routes"
)

// Handler provides HTTP endpoints for posture snapshots.
type Handler struct {
	sys    System
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reports"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Routes returns the route group definition for report endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{orgId}", Handler: h.Snapshot, OpenAPI: Spec.Snapshot},
			{Method: "POST", Pattern: "/{orgId}", Handler: h.Export, OpenAPI: Spec.Export},
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.Download, OpenAPI: Spec.Download},
		},
	}
}

// Snapshot returns the organization's current posture without archiving it.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgParam(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	snap, err := h.sys.Snapshot(r.Context(), orgID, h.now())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snap)
}

// Export archives the organization's current posture and returns the export record.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	orgID, err := orgParam(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	export, err := h.sys.Export(r.Context(), orgID, h.now())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, export)
}

// Download streams an archived snapshot as a JSON attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.sys.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("snapshot download interrupted", "key", key, "error", err)
	}
}

func orgParam(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("orgId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidOrg, raw)
	}
	return id, nil
}
