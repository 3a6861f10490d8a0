package readiness

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// System defines the public contract for readiness scoring.
type System interface {
	Handler() *Handler

	// Compute fetches the organization's records and scores them as of now.
	// A nil orgID yields Empty() without touching the store.
	Compute(ctx context.Context, orgID uuid.UUID, now time.Time) (*Result, error)
	// Inputs fetches the record sets Compute scores.
	Inputs(ctx context.Context, orgID uuid.UUID) (*Inputs, error)
}
