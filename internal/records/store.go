package records

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/query"
	"github.com/JaimeStill/posture/pkg/repository"
)

// Store reads organization-scoped compliance records.
// Every method is an independent retrieval consistent as of its own read time.
type Store interface {
	CountSystems(ctx context.Context, orgID uuid.UUID) (int, error)
	Systems(ctx context.Context, orgID uuid.UUID) ([]AISystem, error)
	Classifications(ctx context.Context, orgID uuid.UUID) ([]Classification, error)
	Controls(ctx context.Context, orgID uuid.UUID) ([]Control, error)
	Evidence(ctx context.Context, orgID uuid.UUID) ([]Evidence, error)
	Tasks(ctx context.Context, orgID uuid.UUID) ([]Task, error)
	Training(ctx context.Context, orgID uuid.UUID) ([]Training, error)
	Attestations(ctx context.Context, orgID uuid.UUID) ([]Attestation, error)

	// ExpiringAttestations returns attestations with a valid_until at or before until
	// whose status is not expired.
	ExpiringAttestations(ctx context.Context, orgID uuid.UUID, until time.Time) ([]Attestation, error)
	// ExpiringEvidence returns approved evidence with an expires_at at or before until.
	ExpiringEvidence(ctx context.Context, orgID uuid.UUID, until time.Time) ([]Evidence, error)
	// ControlsDueForReview returns implemented controls with a next_review_date at or before until.
	ControlsDueForReview(ctx context.Context, orgID uuid.UUID, until time.Time) ([]Control, error)
	// OverdueTasks returns todo and in-progress tasks with a due_date strictly before now.
	OverdueTasks(ctx context.Context, orgID uuid.UUID, now time.Time) ([]Task, error)
}

type store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a record Store backed by the given database connection.
func New(db *sql.DB, logger *slog.Logger) Store {
	return &store{
		db:     db,
		logger: logger.With("system", "records"),
	}
}

func (s *store) CountSystems(ctx context.Context, orgID uuid.UUID) (int, error) {
	q, args := query.
		NewBuilder(systemProjection).
		WhereEquals("OrganizationID", orgID).
		BuildCount()

	var total int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count ai systems: %w", err)
	}
	return total, nil
}

func (s *store) Systems(ctx context.Context, orgID uuid.UUID) ([]AISystem, error) {
	qb := query.
		NewBuilder(systemProjection, query.SortField{Field: "Name"}).
		WhereEquals("OrganizationID", orgID)

	return many(ctx, s.db, qb, scanSystem, "ai systems")
}

func (s *store) Classifications(ctx context.Context, orgID uuid.UUID) ([]Classification, error) {
	qb := query.
		NewBuilder(classificationProjection).
		WhereEquals("OrganizationID", orgID)

	items, err := many(ctx, s.db, qb, scanClassification, "classifications")
	if err != nil {
		return nil, err
	}
	for _, c := range items {
		if !c.RiskLevel.Valid() {
			s.logger.Warn("unknown risk level", "id", c.ID, "risk_level", c.RiskLevel)
		}
	}
	return items, nil
}

func (s *store) Controls(ctx context.Context, orgID uuid.UUID) ([]Control, error) {
	qb := query.
		NewBuilder(controlProjection).
		WhereEquals("OrganizationID", orgID)

	items, err := many(ctx, s.db, qb, scanControl, "controls")
	if err != nil {
		return nil, err
	}
	for _, c := range items {
		if !c.Status.Valid() {
			s.logger.Warn("unknown control status", "id", c.ID, "status", c.Status)
		}
	}
	return items, nil
}

func (s *store) Evidence(ctx context.Context, orgID uuid.UUID) ([]Evidence, error) {
	qb := query.
		NewBuilder(evidenceProjection).
		WhereEquals("OrganizationID", orgID)

	return many(ctx, s.db, qb, scanEvidence, "evidence")
}

func (s *store) Tasks(ctx context.Context, orgID uuid.UUID) ([]Task, error) {
	qb := query.
		NewBuilder(taskProjection).
		WhereEquals("OrganizationID", orgID)

	return many(ctx, s.db, qb, scanTask, "tasks")
}

func (s *store) Training(ctx context.Context, orgID uuid.UUID) ([]Training, error) {
	qb := query.
		NewBuilder(trainingProjection).
		WhereEquals("OrganizationID", orgID)

	return many(ctx, s.db, qb, scanTraining, "training records")
}

func (s *store) Attestations(ctx context.Context, orgID uuid.UUID) ([]Attestation, error) {
	qb := query.
		NewBuilder(attestationProjection, query.SortField{Field: "ValidUntil"}).
		WhereEquals("OrganizationID", orgID)

	return many(ctx, s.db, qb, scanAttestation, "attestations")
}

func (s *store) ExpiringAttestations(ctx context.Context, orgID uuid.UUID, until time.Time) ([]Attestation, error) {
	qb := query.
		NewBuilder(attestationProjection, query.SortField{Field: "ValidUntil"}).
		WhereEquals("OrganizationID", orgID).
		WhereNotNull("ValidUntil").
		WhereAtOrBefore("ValidUntil", until).
		WhereNotEquals("Status", string(AttestationExpired))

	return many(ctx, s.db, qb, scanAttestation, "expiring attestations")
}

func (s *store) ExpiringEvidence(ctx context.Context, orgID uuid.UUID, until time.Time) ([]Evidence, error) {
	qb := query.
		NewBuilder(evidenceProjection, query.SortField{Field: "ExpiresAt"}).
		WhereEquals("OrganizationID", orgID).
		WhereEquals("Status", string(EvidenceApproved)).
		WhereNotNull("ExpiresAt").
		WhereAtOrBefore("ExpiresAt", until)

	return many(ctx, s.db, qb, scanEvidence, "expiring evidence")
}

func (s *store) ControlsDueForReview(ctx context.Context, orgID uuid.UUID, until time.Time) ([]Control, error) {
	qb := query.
		NewBuilder(controlProjection, query.SortField{Field: "NextReviewDate"}).
		WhereEquals("OrganizationID", orgID).
		WhereEquals("Status", string(ControlImplemented)).
		WhereNotNull("NextReviewDate").
		WhereAtOrBefore("NextReviewDate", until)

	return many(ctx, s.db, qb, scanControl, "controls due for review")
}

func (s *store) OverdueTasks(ctx context.Context, orgID uuid.UUID, now time.Time) ([]Task, error) {
	qb := query.
		NewBuilder(taskProjection, query.SortField{Field: "DueDate"}).
		WhereEquals("OrganizationID", orgID).
		WhereIn("Status", []any{string(TaskTodo), string(TaskInProgress)}).
		WhereNotNull("DueDate").
		WhereBefore("DueDate", now)

	return many(ctx, s.db, qb, scanTask, "overdue tasks")
}

func many[T any](
	ctx context.Context,
	db *sql.DB,
	qb *query.Builder,
	scan repository.ScanFunc[T],
	what string,
) ([]T, error) {
	q, args := qb.Build()
	items, err := repository.QueryMany(ctx, db, q, args, scan)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	return items, nil
}
