package records

import (
	"github.com/JaimeStill/posture/pkg/query"
	"github.com/JaimeStill/posture/pkg/repository"
)

var systemProjection = query.
	NewProjectionMap("public", "ai_systems", "s").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("name", "Name").
	Project("status", "Status").
	Project("created_at", "CreatedAt")

var classificationProjection = query.
	NewProjectionMap("public", "risk_classifications", "rc").
	Project("id", "ID").
	Project("ai_system_id", "AISystemID").
	Project("organization_id", "OrganizationID").
	Project("risk_level", "RiskLevel").
	Project("reassessment_needed", "ReassessmentNeeded").
	Project("updated_at", "UpdatedAt")

var controlProjection = query.
	NewProjectionMap("public", "control_implementations", "ci").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("ai_system_id", "AISystemID").
	Project("code", "Code").
	Project("title", "Title").
	Project("status", "Status").
	Project("next_review_date", "NextReviewDate").
	Join("public", "ai_systems", "s", "LEFT JOIN", "ci.ai_system_id = s.id").
	Project("name", "AISystemName")

var evidenceProjection = query.
	NewProjectionMap("public", "evidence_files", "ef").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("ai_system_id", "AISystemID").
	Project("title", "Title").
	Project("status", "Status").
	Project("expires_at", "ExpiresAt").
	Join("public", "ai_systems", "s", "LEFT JOIN", "ef.ai_system_id = s.id").
	Project("name", "AISystemName")

var taskProjection = query.
	NewProjectionMap("public", "compliance_tasks", "t").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("ai_system_id", "AISystemID").
	Project("title", "Title").
	Project("status", "Status").
	Project("due_date", "DueDate").
	Join("public", "ai_systems", "s", "LEFT JOIN", "t.ai_system_id = s.id").
	Project("name", "AISystemName")

var trainingProjection = query.
	NewProjectionMap("public", "training_records", "tr").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("course", "Course").
	Project("status", "Status").
	Project("completed_at", "CompletedAt")

var attestationProjection = query.
	NewProjectionMap("public", "vendor_attestations", "va").
	Project("id", "ID").
	Project("vendor_id", "VendorID").
	Project("title", "Title").
	Project("status", "Status").
	Project("valid_until", "ValidUntil").
	Join("public", "vendors", "v", "JOIN", "va.vendor_id = v.id").
	Project("organization_id", "OrganizationID").
	Project("name", "VendorName")

func scanSystem(s repository.Scanner) (AISystem, error) {
	var a AISystem
	err := s.Scan(
		&a.ID,
		&a.OrganizationID,
		&a.Name,
		&a.Status,
		&a.CreatedAt,
	)
	return a, err
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var c Classification
	err := s.Scan(
		&c.ID,
		&c.AISystemID,
		&c.OrganizationID,
		&c.RiskLevel,
		&c.ReassessmentNeeded,
		&c.UpdatedAt,
	)
	return c, err
}

func scanControl(s repository.Scanner) (Control, error) {
	var c Control
	err := s.Scan(
		&c.ID,
		&c.OrganizationID,
		&c.AISystemID,
		&c.Code,
		&c.Title,
		&c.Status,
		&c.NextReviewDate,
		&c.AISystemName,
	)
	return c, err
}

func scanEvidence(s repository.Scanner) (Evidence, error) {
	var e Evidence
	err := s.Scan(
		&e.ID,
		&e.OrganizationID,
		&e.AISystemID,
		&e.Title,
		&e.Status,
		&e.ExpiresAt,
		&e.AISystemName,
	)
	return e, err
}

func scanTask(s repository.Scanner) (Task, error) {
	var t Task
	err := s.Scan(
		&t.ID,
		&t.OrganizationID,
		&t.AISystemID,
		&t.Title,
		&t.Status,
		&t.DueDate,
		&t.AISystemName,
	)
	return t, err
}

func scanTraining(s repository.Scanner) (Training, error) {
	var t Training
	err := s.Scan(
		&t.ID,
		&t.OrganizationID,
		&t.Course,
		&t.Status,
		&t.CompletedAt,
	)
	return t, err
}

func scanAttestation(s repository.Scanner) (Attestation, error) {
	var a Attestation
	err := s.Scan(
		&a.ID,
		&a.VendorID,
		&a.Title,
		&a.Status,
		&a.ValidUntil,
		&a.OrganizationID,
		&a.VendorName,
	)
	return a, err
}
