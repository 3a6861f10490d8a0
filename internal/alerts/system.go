package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// System defines the public contract for the alert feed.
type System interface {
	Handler() *Handler

	// Feed retrieves the organization's alert sources and aggregates them as of now.
	// A nil orgID yields an empty feed.
	Feed(ctx context.Context, orgID uuid.UUID, now time.Time) (*Feed, error)
	// Sources retrieves the pre-filtered alert sources for the configured windows.
	Sources(ctx context.Context, orgID uuid.UUID, now time.Time) (*Sources, error)
}
