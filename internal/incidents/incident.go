// Package incidents implements serious-incident reporting deadlines.
// Deadline is a pure calendar calculation; the System persists incident
// reports with their deadline computed once at creation.
package incidents

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category classifies an incident for disclosure purposes.
type Category string

const (
	CategoryDeath          Category = "death_or_serious_damage"
	CategorySerious        Category = "serious_incident_with_risk"
	CategoryMalfunctioning Category = "malfunctioning_with_risk"
	CategoryOther          Category = "other"
)

// Categories lists every known category in severity order.
var Categories = []Category{
	CategoryDeath,
	CategorySerious,
	CategoryMalfunctioning,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryDeath, CategorySerious, CategoryMalfunctioning, CategoryOther:
		return true
	}
	return false
}

// ReportingDays returns the number of calendar days allowed for disclosure.
// Unknown categories receive the same allowance as CategoryOther.
func (c Category) ReportingDays() int {
	switch c {
	case CategoryDeath:
		return 2
	case CategorySerious:
		return 10
	case CategoryMalfunctioning, CategoryOther:
		return 15
	default:
		return 15
	}
}

// Label returns a display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryDeath:
		return "Death or serious damage"
	case CategorySerious:
		return "Serious incident with risk"
	case CategoryMalfunctioning:
		return "Malfunctioning with risk"
	case CategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

// Deadline returns the disclosure deadline for an incident the organization
// became aware of at awareAt. Days are added on the calendar of awareAt's
// location, so the wall-clock time of day is preserved across DST changes.
func Deadline(awareAt time.Time, category Category) time.Time {
	return awareAt.AddDate(0, 0, category.ReportingDays())
}

// IsApproaching reports whether deadlineAt falls within the next 24 hours.
func IsApproaching(deadlineAt, now time.Time) bool {
	remaining := deadlineAt.Sub(now)
	return remaining > 0 && remaining <= 24*time.Hour
}

// IsPassed reports whether deadlineAt is strictly before now.
func IsPassed(deadlineAt, now time.Time) bool {
	return deadlineAt.Before(now)
}

// DeadlineStatus is the presentation view of a deadline at a given instant.
type DeadlineStatus struct {
	DeadlineAt     time.Time `json:"deadline_at"`
	IsApproaching  bool      `json:"is_approaching"`
	IsPassed       bool      `json:"is_passed"`
	HoursRemaining float64   `json:"hours_remaining"`
}

// Evaluate derives the DeadlineStatus of deadlineAt as of now.
func Evaluate(deadlineAt, now time.Time) DeadlineStatus {
	return DeadlineStatus{
		DeadlineAt:     deadlineAt,
		IsApproaching:  IsApproaching(deadlineAt, now),
		IsPassed:       IsPassed(deadlineAt, now),
		HoursRemaining: deadlineAt.Sub(now).Hours(),
	}
}

// Incident is a persisted serious-incident report.
// DeadlineAt always equals Deadline(AwareAt, Category).
type Incident struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	AISystemID     uuid.UUID  `json:"ai_system_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       Category   `json:"category"`
	AwareAt        time.Time  `json:"aware_at"`
	DeadlineAt     time.Time  `json:"deadline_at"`
	ReportedAt     *time.Time `json:"reported_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreateCommand carries the data needed to record a new incident.
type CreateCommand struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	AISystemID     uuid.UUID `json:"ai_system_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       Category  `json:"category"`
	AwareAt        time.Time `json:"aware_at"`
}

// Validate checks the command for required fields and a known category.
func (c CreateCommand) Validate() error {
	if c.OrganizationID == uuid.Nil || c.AISystemID == uuid.Nil {
		return ErrInvalidIncident
	}
	if c.Title == "" || c.AwareAt.IsZero() {
		return ErrInvalidIncident
	}
	if !c.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// CheckOwner verifies that the AI system named by the command belongs to the
// command's organization. owner is the system's organization of record.
func (c CreateCommand) CheckOwner(owner uuid.UUID) error {
	if owner != c.OrganizationID {
		return fmt.Errorf("%w: ai system %s belongs to another organization", ErrInvalidIncident, c.AISystemID)
	}
	return nil
}

// DeadlineRequest is the body of a deadline preview.
type DeadlineRequest struct {
	AwareAt  time.Time `json:"aware_at"`
	Category Category  `json:"category"`
}
