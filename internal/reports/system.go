package reports

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// System defines the public contract for posture snapshots.
type System interface {
	Handler() *Handler

	// Snapshot computes the organization's posture as of now without persisting it.
	Snapshot(ctx context.Context, orgID uuid.UUID, now time.Time) (*Snapshot, error)

	// Export computes a snapshot and uploads it as JSON beneath the report key prefix.
	Export(ctx context.Context, orgID uuid.UUID, now time.Time) (*Export, error)

	// Download streams an exported snapshot. The caller must close the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}
