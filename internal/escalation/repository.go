package escalation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/query"
	"github.com/JaimeStill/posture/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a verification repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "escalation"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Find(ctx context.Context, aiSystemID uuid.UUID, variant Variant) (*Verification, error) {
	if !variant.Valid() {
		return nil, ErrInvalidVariant
	}

	v, err := find(ctx, r.db, aiSystemID, variant)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) Update(
	ctx context.Context,
	aiSystemID uuid.UUID,
	variant Variant,
	cmd UpdateCommand,
) (*Verification, error) {
	if !variant.Valid() {
		return nil, ErrInvalidVariant
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var before Verification

	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Verification, error) {
		current, err := r.current(ctx, tx, aiSystemID, variant)
		if err != nil {
			return Verification{}, err
		}
		before = current

		next := Apply(current, cmd)

		upsert := `
			INSERT INTO verifications(id, organization_id, ai_system_id, variant, has_rebranded, has_modified, escalation_triggered, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (ai_system_id, variant) DO UPDATE SET
				has_rebranded = EXCLUDED.has_rebranded,
				has_modified = EXCLUDED.has_modified,
				escalation_triggered = EXCLUDED.escalation_triggered,
				status = EXCLUDED.status,
				notes = EXCLUDED.notes,
				updated_at = NOW()`

		if _, err := tx.ExecContext(
			ctx, upsert,
			next.ID,
			next.OrganizationID,
			next.AISystemID,
			next.Variant,
			next.HasRebranded,
			next.HasModified,
			next.EscalationTriggered,
			next.Status,
			next.Notes,
		); err != nil {
			return Verification{}, err
		}

		return find(ctx, tx, aiSystemID, variant)
	})
	if err != nil {
		if errors.Is(err, ErrSystemNotFound) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if v.EscalationTriggered && !before.EscalationTriggered {
		r.logger.Warn(
			"escalation triggered",
			"ai_system_id", aiSystemID,
			"variant", variant,
			"triggers", Triggers(v),
		)
	}

	r.logger.Info(
		"verification updated",
		"ai_system_id", aiSystemID,
		"variant", variant,
		"status", v.Status,
	)
	return &v, nil
}

func (r *repo) Check(ctx context.Context, aiSystemID uuid.UUID, variant Variant) (*EscalationCheck, error) {
	v, err := r.Find(ctx, aiSystemID, variant)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		blank := Blank(aiSystemID, variant)
		v = &blank
	}

	check := Check(*v)
	return &check, nil
}

func (r *repo) ListEscalated(ctx context.Context, orgID uuid.UUID) ([]Escalated, error) {
	if orgID == uuid.Nil {
		return []Escalated{}, nil
	}

	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("OrganizationID", orgID).
		WhereEquals("Status", string(StatusEscalated)).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanVerification)
	if err != nil {
		return nil, fmt.Errorf("query escalated verifications: %w", err)
	}

	result := make([]Escalated, len(items))
	for i, v := range items {
		result[i] = Escalated{
			Verification: v,
			Check:        Check(v),
			Role:         EffectiveRole(v),
		}
	}
	return result, nil
}

// current returns the stored verification locked for update, or a blank record
// owned by the AI system's organization when none exists yet.
func (r *repo) current(ctx context.Context, tx *sql.Tx, aiSystemID uuid.UUID, variant Variant) (Verification, error) {
	var id uuid.UUID
	err := tx.QueryRowContext(
		ctx,
		"SELECT id FROM verifications WHERE ai_system_id = $1 AND variant = $2 FOR UPDATE",
		aiSystemID, variant,
	).Scan(&id)

	if err == nil {
		return find(ctx, tx, aiSystemID, variant)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Verification{}, err
	}

	var orgID uuid.UUID
	err = tx.QueryRowContext(
		ctx,
		"SELECT organization_id FROM ai_systems WHERE id = $1",
		aiSystemID,
	).Scan(&orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Verification{}, ErrSystemNotFound
		}
		return Verification{}, err
	}

	blank := Blank(aiSystemID, variant)
	blank.ID = uuid.New()
	blank.OrganizationID = orgID
	return blank, nil
}

func find(ctx context.Context, q repository.Querier, aiSystemID uuid.UUID, variant Variant) (Verification, error) {
	s, args := query.
		NewBuilder(projection).
		WhereEquals("AISystemID", aiSystemID).
		WhereEquals("Variant", string(variant)).
		BuildSingleOrNull()

	return repository.QueryOne(ctx, q, s, args, scanVerification)
}
