package alerts

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/internal/records"
	"github.com/JaimeStill/posture/pkg/formatting"
)

// Sources are the record sets alerts are raised from. They may be pre-filtered
// by the store; Aggregate applies the same eligibility rules regardless.
type Sources struct {
	Attestations []records.Attestation
	Evidence     []records.Evidence
	Controls     []records.Control
	Tasks        []records.Task
}

// Aggregate raises alerts for every eligible record in src as of now and
// returns them sorted by severity rank, then by days remaining.
// Records without a deadline are never eligible.
func Aggregate(src Sources, now time.Time, windows Windows) Feed {
	windows = windows.Normalize()
	alerts := make([]Alert, 0)

	attestationUntil := now.AddDate(0, 0, windows.AttestationDays)
	for _, a := range src.Attestations {
		if a.ValidUntil == nil || a.ValidUntil.After(attestationUntil) {
			continue
		}
		if a.Status == records.AttestationExpired {
			continue
		}
		alerts = append(alerts, attestationAlert(a, now))
	}

	evidenceUntil := now.AddDate(0, 0, windows.EvidenceDays)
	for _, e := range src.Evidence {
		if e.Status != records.EvidenceApproved {
			continue
		}
		if e.ExpiresAt == nil || e.ExpiresAt.After(evidenceUntil) {
			continue
		}
		alerts = append(alerts, evidenceAlert(e, now))
	}

	reviewUntil := now.AddDate(0, 0, windows.ControlReviewDays)
	for _, c := range src.Controls {
		if c.Status != records.ControlImplemented {
			continue
		}
		if c.NextReviewDate == nil || c.NextReviewDate.After(reviewUntil) {
			continue
		}
		alerts = append(alerts, controlAlert(c, now))
	}

	for _, t := range src.Tasks {
		if t.Status != records.TaskTodo && t.Status != records.TaskInProgress {
			continue
		}
		if t.DueDate == nil || !t.DueDate.Before(now) {
			continue
		}
		alerts = append(alerts, taskAlert(t, now))
	}

	Sort(alerts)

	return Feed{
		Alerts: alerts,
		Counts: Count(alerts),
	}
}

// Sort orders alerts by (severity rank, days remaining) ascending.
// Alerts that compare equal keep their relative order.
func Sort(alerts []Alert) {
	slices.SortStableFunc(alerts, func(a, b Alert) int {
		if c := cmp.Compare(a.Severity.Rank(), b.Severity.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.DaysRemaining, b.DaysRemaining)
	})
}

// Count tallies alerts per severity.
func Count(alerts []Alert) Counts {
	var c Counts
	for _, a := range alerts {
		switch a.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityWarning:
			c.Warning++
		case SeverityInfo:
			c.Info++
		}
	}
	c.Total = len(alerts)
	return c
}

func attestationAlert(a records.Attestation, now time.Time) Alert {
	days := DaysBetween(*a.ValidUntil, now)
	return Alert{
		ID:            alertID(TypeAttestationExpiring, a.ID),
		Type:          TypeAttestationExpiring,
		Severity:      Classify(days),
		Title:         title(TypeAttestationExpiring, a.Title, days),
		Description:   describe(TypeAttestationExpiring, a.VendorName, days),
		DueDate:       *a.ValidUntil,
		DaysRemaining: days,
		LinkTo:        "/vendors/" + a.VendorID.String(),
		RelatedEntity: &RelatedEntity{Kind: "vendor", ID: a.VendorID, Name: a.VendorName},
	}
}

func evidenceAlert(e records.Evidence, now time.Time) Alert {
	days := DaysBetween(*e.ExpiresAt, now)
	return Alert{
		ID:            alertID(TypeEvidenceExpiring, e.ID),
		Type:          TypeEvidenceExpiring,
		Severity:      Classify(days),
		Title:         title(TypeEvidenceExpiring, e.Title, days),
		Description:   describe(TypeEvidenceExpiring, e.Title, days),
		DueDate:       *e.ExpiresAt,
		DaysRemaining: days,
		LinkTo:        "/evidence/" + e.ID.String(),
		RelatedEntity: systemEntity(e.AISystemID, e.AISystemName),
	}
}

func controlAlert(c records.Control, now time.Time) Alert {
	days := DaysBetween(*c.NextReviewDate, now)
	name := c.Title
	if c.Code != "" {
		name = c.Code + " " + c.Title
	}
	return Alert{
		ID:            alertID(TypeControlReview, c.ID),
		Type:          TypeControlReview,
		Severity:      Classify(days),
		Title:         title(TypeControlReview, name, days),
		Description:   describe(TypeControlReview, name, days),
		DueDate:       *c.NextReviewDate,
		DaysRemaining: days,
		LinkTo:        "/controls/" + c.ID.String(),
		RelatedEntity: systemEntity(c.AISystemID, c.AISystemName),
	}
}

// Task alerts exist only once a task is overdue, so they are always critical.
func taskAlert(t records.Task, now time.Time) Alert {
	days := DaysBetween(*t.DueDate, now)
	return Alert{
		ID:            alertID(TypeTaskOverdue, t.ID),
		Type:          TypeTaskOverdue,
		Severity:      SeverityCritical,
		Title:         title(TypeTaskOverdue, t.Title, days),
		Description:   describe(TypeTaskOverdue, t.Title, days),
		DueDate:       *t.DueDate,
		DaysRemaining: days,
		LinkTo:        "/tasks/" + t.ID.String(),
		RelatedEntity: systemEntity(t.AISystemID, t.AISystemName),
	}
}

func title(t Type, name string, days int) string {
	switch t {
	case TypeAttestationExpiring:
		if days < 0 {
			return "Attestation expired: " + name
		}
		return "Attestation expiring: " + name
	case TypeEvidenceExpiring:
		if days < 0 {
			return "Evidence expired: " + name
		}
		return "Evidence expiring: " + name
	case TypeControlReview:
		if days < 0 {
			return "Control review overdue: " + name
		}
		return "Control review due: " + name
	case TypeTaskOverdue:
		return "Overdue task: " + name
	default:
		return name
	}
}

// describe phrases the time remaining for t using the absolute day count.
func describe(t Type, subject string, days int) string {
	span := formatting.Plural(days, "day")

	switch t {
	case TypeAttestationExpiring:
		switch {
		case days < 0:
			return fmt.Sprintf("%s attestation expired %s ago", subject, span)
		case days == 0:
			return fmt.Sprintf("%s attestation expires today", subject)
		default:
			return fmt.Sprintf("%s attestation expires in %s", subject, span)
		}
	case TypeEvidenceExpiring:
		switch {
		case days < 0:
			return fmt.Sprintf("Evidence expired %s ago", span)
		case days == 0:
			return "Evidence expires today"
		default:
			return fmt.Sprintf("Evidence expires in %s", span)
		}
	case TypeControlReview:
		switch {
		case days < 0:
			return fmt.Sprintf("Review of %s overdue by %s", subject, span)
		case days == 0:
			return fmt.Sprintf("Review of %s due today", subject)
		default:
			return fmt.Sprintf("Review of %s due in %s", subject, span)
		}
	case TypeTaskOverdue:
		return fmt.Sprintf("Task overdue by %s", span)
	default:
		return subject
	}
}

func systemEntity(id *uuid.UUID, name *string) *RelatedEntity {
	if id == nil {
		return nil
	}
	e := &RelatedEntity{Kind: "ai_system", ID: *id}
	if name != nil {
		e.Name = *name
	}
	return e
}

func alertID(t Type, id uuid.UUID) string {
	return string(t) + ":" + id.String()
}

// FilterSeverity returns the alerts with severity s, preserving order.
func FilterSeverity(items []Alert, s Severity) []Alert {
	filtered := make([]Alert, 0, len(items))
	for _, a := range items {
		if a.Severity == s {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
