package incidents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/pagination"
)

// System defines the public contract for incident report operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Incident], error)

	Find(ctx context.Context, id uuid.UUID) (*Incident, error)

	// Create persists a new incident with its deadline computed from the
	// awareness time and category. The deadline is never recomputed.
	Create(ctx context.Context, cmd CreateCommand) (*Incident, error)

	// MarkReported records the disclosure time of an unreported incident.
	MarkReported(ctx context.Context, id uuid.UUID, reportedAt time.Time) (*Incident, error)
}
