// Package escalation detects when a distributor or importer takes on provider
// obligations for an AI system by rebranding or substantially modifying it.
//
// Apply, Check, and EffectiveRole are pure functions of a verification record.
// The System persists verification records and writes the derived
// escalation_triggered flag on every update.
package escalation

import (
	"time"

	"github.com/google/uuid"
)

// ArticleReference is the legal basis for provider-level escalation.
const ArticleReference = "Article 25(1)"

// Variant identifies the value-chain role a verification record covers.
type Variant string

const (
	VariantDistributor Variant = "distributor"
	VariantImporter    Variant = "importer"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantDistributor, VariantImporter:
		return true
	}
	return false
}

// Status is the state of a verification record.
type Status string

const (
	StatusNotStarted   Status = "not_started"
	StatusInProgress   Status = "in_progress"
	StatusCompliant    Status = "compliant"
	StatusNonCompliant Status = "non_compliant"
	StatusEscalated    Status = "escalated"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompliant, StatusNonCompliant, StatusEscalated:
		return true
	}
	return false
}

// Verification is the distributor or importer verification record of one AI system.
type Verification struct {
	ID                  uuid.UUID `json:"id"`
	OrganizationID      uuid.UUID `json:"organization_id"`
	AISystemID          uuid.UUID `json:"ai_system_id"`
	AISystemName        *string   `json:"ai_system_name"`
	Variant             Variant   `json:"variant"`
	HasRebranded        bool      `json:"has_rebranded"`
	HasModified         bool      `json:"has_modified"`
	EscalationTriggered bool      `json:"escalation_triggered"`
	Status              Status    `json:"status"`
	Notes               string    `json:"notes"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Blank returns the verification an AI system has before any update is recorded.
func Blank(aiSystemID uuid.UUID, variant Variant) Verification {
	return Verification{
		AISystemID: aiSystemID,
		Variant:    variant,
		Status:     StatusNotStarted,
	}
}

// UpdateCommand is a partial update. Nil fields are left unchanged.
type UpdateCommand struct {
	HasRebranded *bool   `json:"has_rebranded,omitempty"`
	HasModified  *bool   `json:"has_modified,omitempty"`
	Status       *Status `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Validate rejects unknown requested statuses.
func (c UpdateCommand) Validate() error {
	if c.Status != nil && !c.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (c UpdateCommand) empty() bool {
	return c.HasRebranded == nil && c.HasModified == nil && c.Status == nil && c.Notes == nil
}

// Apply merges cmd into current and derives the escalation flag and status.
//
// Status resolution, first match wins:
//   - a fired trigger forces escalated, overriding any requested status
//   - an explicitly requested status is kept
//   - a trigger-driven escalated record whose triggers were cleared returns to in_progress
//   - a not_started record that receives any change moves to in_progress
//
// Applying the same command to its own result yields that result again.
func Apply(current Verification, cmd UpdateCommand) Verification {
	next := current

	if cmd.HasRebranded != nil {
		next.HasRebranded = *cmd.HasRebranded
	}
	if cmd.HasModified != nil {
		next.HasModified = *cmd.HasModified
	}
	if cmd.Notes != nil {
		next.Notes = *cmd.Notes
	}

	next.EscalationTriggered = next.HasRebranded || next.HasModified

	switch {
	case next.EscalationTriggered:
		next.Status = StatusEscalated
	case cmd.Status != nil:
		next.Status = *cmd.Status
	case current.EscalationTriggered && current.Status == StatusEscalated:
		next.Status = StatusInProgress
	case next.Status == StatusNotStarted && !cmd.empty():
		next.Status = StatusInProgress
	case next.Status == "":
		next.Status = StatusNotStarted
	}

	return next
}
