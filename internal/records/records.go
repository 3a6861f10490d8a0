// Package records defines the read contract between the posture engine and the
// compliance record store. It provides typed snapshots of the organization-scoped
// records the engine consumes and the queries that retrieve them.
//
// Enumerated fields are closed string types. Values read from the store that fall
// outside an enumeration are preserved verbatim and report Valid() == false so
// consumers can place them in the least-privileged bucket.
package records

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel is the risk classification assigned to an AI system.
type RiskLevel string

const (
	RiskNotClassified RiskLevel = "not_classified"
	RiskMinimal       RiskLevel = "minimal_risk"
	RiskLimited       RiskLevel = "limited_risk"
	RiskHigh          RiskLevel = "high_risk"
	RiskProhibited    RiskLevel = "prohibited"
)

// Valid reports whether r is a known risk level.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskNotClassified, RiskMinimal, RiskLimited, RiskHigh, RiskProhibited:
		return true
	}
	return false
}

// Classified reports whether r is a known level other than not_classified.
func (r RiskLevel) Classified() bool {
	return r.Valid() && r != RiskNotClassified
}

// ControlStatus is the implementation state of a control.
type ControlStatus string

const (
	ControlNotApplicable ControlStatus = "not_applicable"
	ControlPlanned       ControlStatus = "planned"
	ControlInProgress    ControlStatus = "in_progress"
	ControlImplemented   ControlStatus = "implemented"
)

// Valid reports whether s is a known control status.
func (s ControlStatus) Valid() bool {
	switch s {
	case ControlNotApplicable, ControlPlanned, ControlInProgress, ControlImplemented:
		return true
	}
	return false
}

// Applicable reports whether s is a known status other than not_applicable.
func (s ControlStatus) Applicable() bool {
	return s.Valid() && s != ControlNotApplicable
}

// EvidenceStatus is the review state of an evidence file.
type EvidenceStatus string

const (
	EvidencePending  EvidenceStatus = "pending"
	EvidenceApproved EvidenceStatus = "approved"
	EvidenceRejected EvidenceStatus = "rejected"
	EvidenceExpired  EvidenceStatus = "expired"
)

// Valid reports whether s is a known evidence status.
func (s EvidenceStatus) Valid() bool {
	switch s {
	case EvidencePending, EvidenceApproved, EvidenceRejected, EvidenceExpired:
		return true
	}
	return false
}

// TaskStatus is the progress state of a compliance task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// Open reports whether the task still requires work. Unknown statuses count as open.
func (s TaskStatus) Open() bool {
	return s != TaskDone
}

// TrainingStatus is the completion state of a training record.
type TrainingStatus string

const (
	TrainingPending   TrainingStatus = "pending"
	TrainingCompleted TrainingStatus = "completed"
)

// Valid reports whether s is a known training status.
func (s TrainingStatus) Valid() bool {
	switch s {
	case TrainingPending, TrainingCompleted:
		return true
	}
	return false
}

// AttestationStatus is the state of a vendor attestation.
type AttestationStatus string

const (
	AttestationPending AttestationStatus = "pending"
	AttestationValid   AttestationStatus = "valid"
	AttestationExpired AttestationStatus = "expired"
	AttestationRevoked AttestationStatus = "revoked"
)

// Valid reports whether s is a known attestation status.
func (s AttestationStatus) Valid() bool {
	switch s {
	case AttestationPending, AttestationValid, AttestationExpired, AttestationRevoked:
		return true
	}
	return false
}

// AISystem is an inventoried AI system.
type AISystem struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Classification is the risk classification of one AI system.
type Classification struct {
	ID                 uuid.UUID `json:"id"`
	AISystemID         uuid.UUID `json:"ai_system_id"`
	OrganizationID     uuid.UUID `json:"organization_id"`
	RiskLevel          RiskLevel `json:"risk_level"`
	ReassessmentNeeded bool      `json:"reassessment_needed"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Control is a control implementation, optionally linked to an AI system.
type Control struct {
	ID             uuid.UUID     `json:"id"`
	OrganizationID uuid.UUID     `json:"organization_id"`
	AISystemID     *uuid.UUID    `json:"ai_system_id"`
	AISystemName   *string       `json:"ai_system_name"`
	Code           string        `json:"code"`
	Title          string        `json:"title"`
	Status         ControlStatus `json:"status"`
	NextReviewDate *time.Time    `json:"next_review_date"`
}

// Evidence is an evidence file record. The file itself lives in external storage.
type Evidence struct {
	ID             uuid.UUID      `json:"id"`
	OrganizationID uuid.UUID      `json:"organization_id"`
	AISystemID     *uuid.UUID     `json:"ai_system_id"`
	AISystemName   *string        `json:"ai_system_name"`
	Title          string         `json:"title"`
	Status         EvidenceStatus `json:"status"`
	ExpiresAt      *time.Time     `json:"expires_at"`
}

// Task is a compliance task.
type Task struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	AISystemID     *uuid.UUID `json:"ai_system_id"`
	AISystemName   *string    `json:"ai_system_name"`
	Title          string     `json:"title"`
	Status         TaskStatus `json:"status"`
	DueDate        *time.Time `json:"due_date"`
}

// Training is an AI literacy training record.
type Training struct {
	ID             uuid.UUID      `json:"id"`
	OrganizationID uuid.UUID      `json:"organization_id"`
	Course         string         `json:"course"`
	Status         TrainingStatus `json:"status"`
	CompletedAt    *time.Time     `json:"completed_at"`
}

// Attestation is a vendor-issued compliance statement with a validity window.
type Attestation struct {
	ID             uuid.UUID         `json:"id"`
	OrganizationID uuid.UUID         `json:"organization_id"`
	VendorID       uuid.UUID         `json:"vendor_id"`
	VendorName     string            `json:"vendor_name"`
	Title          string            `json:"title"`
	Status         AttestationStatus `json:"status"`
	ValidUntil     *time.Time        `json:"valid_until"`
}
