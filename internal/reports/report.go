// Package reports assembles point-in-time posture snapshots and archives them
// to blob storage. Snapshots are copies of derived output, never the system of record.
package reports

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/internal/alerts"
	"github.com/JaimeStill/posture/internal/escalation"
	"github.com/JaimeStill/posture/internal/readiness"
)

// TimestampLayout names exported snapshot blobs.
const TimestampLayout = "20060102T150405Z"

// Snapshot is the organization's posture as of GeneratedAt.
type Snapshot struct {
	OrganizationID uuid.UUID              `json:"organization_id"`
	GeneratedAt    time.Time              `json:"generated_at"`
	Readiness      readiness.Result       `json:"readiness"`
	Alerts         alerts.Feed            `json:"alerts"`
	Escalations    []escalation.Escalated `json:"escalations"`
}

// Export describes an archived snapshot.
type Export struct {
	Key       string    `json:"key"`
	SizeBytes int64     `json:"size_bytes"`
	Size      string    `json:"size"`
	Snapshot  *Snapshot `json:"snapshot"`
}
