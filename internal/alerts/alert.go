// Package alerts builds the organization's prioritized compliance alert feed
// from expiring attestations and evidence, controls due for review, and overdue
// tasks. Aggregate is a pure function of the source records and an explicit instant.
package alerts

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Type identifies the source condition an alert was raised for.
type Type string

const (
	TypeAttestationExpiring Type = "attestation_expiring"
	TypeEvidenceExpiring    Type = "evidence_expiring"
	TypeControlReview       Type = "control_review"
	TypeTaskOverdue         Type = "task_overdue"
)

// Severity is the urgency of an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Rank orders severities from most to least urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Classify maps signed days remaining to a severity.
// Negative values are overdue and always critical.
func Classify(daysRemaining int) Severity {
	switch {
	case daysRemaining < 0:
		return SeverityCritical
	case daysRemaining <= 7:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// DaysBetween returns the whole days from now until due, rounded toward
// negative infinity. Anything due earlier than now is at least one day overdue.
func DaysBetween(due, now time.Time) int {
	return int(math.Floor(due.Sub(now).Hours() / 24))
}

// RelatedEntity names the vendor or AI system an alert concerns.
type RelatedEntity struct {
	Kind string    `json:"kind"`
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Alert is a single time-sensitive compliance condition.
type Alert struct {
	ID            string         `json:"id"`
	Type          Type           `json:"type"`
	Severity      Severity       `json:"severity"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	DueDate       time.Time      `json:"due_date"`
	DaysRemaining int            `json:"days_remaining"`
	LinkTo        string         `json:"link_to"`
	RelatedEntity *RelatedEntity `json:"related_entity,omitempty"`
}

// Counts tallies alerts per severity.
type Counts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
	Total    int `json:"total"`
}

// Feed is the sorted alert list with its counts.
type Feed struct {
	Alerts []Alert `json:"alerts"`
	Counts Counts  `json:"counts"`
}

// EmptyFeed returns a feed with no alerts.
func EmptyFeed() Feed {
	return Feed{Alerts: []Alert{}}
}

// Windows sets how far ahead of now each expiring source is scanned, in calendar days.
type Windows struct {
	AttestationDays   int `json:"attestation_days"`
	EvidenceDays      int `json:"evidence_days"`
	ControlReviewDays int `json:"control_review_days"`
}

// DefaultWindows returns 30 days for attestations and evidence and 14 for control reviews.
func DefaultWindows() Windows {
	return Windows{
		AttestationDays:   30,
		EvidenceDays:      30,
		ControlReviewDays: 14,
	}
}

// Normalize replaces non-positive windows with their defaults.
func (w Windows) Normalize() Windows {
	d := DefaultWindows()
	if w.AttestationDays <= 0 {
		w.AttestationDays = d.AttestationDays
	}
	if w.EvidenceDays <= 0 {
		w.EvidenceDays = d.EvidenceDays
	}
	if w.ControlReviewDays <= 0 {
		w.ControlReviewDays = d.ControlReviewDays
	}
	return w
}
