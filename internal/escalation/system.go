package escalation

import (
	"context"

	"github.com/google/uuid"
)

// Escalated summarizes an AI system currently in escalated state.
type Escalated struct {
	Verification Verification    `json:"verification"`
	Check        EscalationCheck `json:"check"`
	Role         Role            `json:"effective_role"`
}

// System defines the public contract for verification and escalation operations.
type System interface {
	Handler() *Handler

	// Find returns the verification for an AI system and variant.
	Find(ctx context.Context, aiSystemID uuid.UUID, variant Variant) (*Verification, error)

	// Update applies cmd to the stored verification, creating it if absent.
	// The derived escalation flag and status are written with every update.
	Update(ctx context.Context, aiSystemID uuid.UUID, variant Variant, cmd UpdateCommand) (*Verification, error)

	// Check evaluates the stored verification. A system without a verification
	// record is evaluated as a blank record.
	Check(ctx context.Context, aiSystemID uuid.UUID, variant Variant) (*EscalationCheck, error)

	// ListEscalated returns every AI system of the organization in escalated state.
	// A nil orgID yields an empty list.
	ListEscalated(ctx context.Context, orgID uuid.UUID) ([]Escalated, error)
}
