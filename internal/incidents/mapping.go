package incidents

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/query"
	"github.com/JaimeStill/posture/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "incident_reports", "ir").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("ai_system_id", "AISystemID").
	Project("title", "Title").
	Project("description", "Description").
	Project("category", "Category").
	Project("aware_at", "AwareAt").
	Project("deadline_at", "DeadlineAt").
	Project("reported_at", "ReportedAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "DeadlineAt",
}

const returning = `id, organization_id, ai_system_id, title, description, category, aware_at, deadline_at, reported_at, created_at`

// Filters contains optional filtering criteria for incident queries.
// Nil fields are ignored. Reported selects incidents with (true) or
// without (false) a reported_at timestamp.
type Filters struct {
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	AISystemID     *uuid.UUID `json:"ai_system_id,omitempty"`
	Category       *string    `json:"category,omitempty"`
	Reported       *bool      `json:"reported,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("OrganizationID", f.OrganizationID).
		WhereEquals("AISystemID", f.AISystemID).
		WhereEquals("Category", f.Category)

	if f.Reported != nil {
		if *f.Reported {
			b.WhereNotNull("ReportedAt")
		} else {
			b.WhereNullable("ReportedAt", nil)
		}
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("organization_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.OrganizationID = &id
		}
	}

	if v := values.Get("ai_system_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.AISystemID = &id
		}
	}

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if r := values.Get("reported"); r != "" {
		if v, err := strconv.ParseBool(r); err == nil {
			f.Reported = &v
		}
	}

	return f
}

func scanIncident(s repository.Scanner) (Incident, error) {
	var i Incident
	err := s.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.AISystemID,
		&i.Title,
		&i.Description,
		&i.Category,
		&i.AwareAt,
		&i.DeadlineAt,
		&i.ReportedAt,
		&i.CreatedAt,
	)
	return i, err
}
