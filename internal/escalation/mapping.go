package escalation

import (
	"github.com/JaimeStill/posture/pkg/query"
	"github.com/JaimeStill/posture/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "verifications", "vr").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("ai_system_id", "AISystemID").
	Project("variant", "Variant").
	Project("has_rebranded", "HasRebranded").
	Project("has_modified", "HasModified").
	Project("escalation_triggered", "EscalationTriggered").
	Project("status", "Status").
	Project("notes", "Notes").
	Project("updated_at", "UpdatedAt").
	Join("public", "ai_systems", "s", "LEFT JOIN", "vr.ai_system_id = s.id").
	Project("name", "AISystemName")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

func scanVerification(s repository.Scanner) (Verification, error) {
	var v Verification
	err := s.Scan(
		&v.ID,
		&v.OrganizationID,
		&v.AISystemID,
		&v.Variant,
		&v.HasRebranded,
		&v.HasModified,
		&v.EscalationTriggered,
		&v.Status,
		&v.Notes,
		&v.UpdatedAt,
		&v.AISystemName,
	)
	return v, err
}
