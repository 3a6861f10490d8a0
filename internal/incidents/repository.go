package incidents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/posture/pkg/pagination"
	"github.com/JaimeStill/posture/pkg/query"
	"github.com/JaimeStill/posture/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an incident repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "incidents"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Incident], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count incidents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanIncident)
	if err != nil {
		return nil, fmt.Errorf("query incidents: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Incident, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	i, err := repository.QueryOne(ctx, r.db, q, args, scanIncident)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Incident, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	deadline := Deadline(cmd.AwareAt, cmd.Category)

	q := `
		INSERT INTO incident_reports(id, organization_id, ai_system_id, title, description, category, aware_at, deadline_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + returning

	args := []any{
		uuid.New(),
		cmd.OrganizationID,
		cmd.AISystemID,
		cmd.Title,
		cmd.Description,
		cmd.Category,
		cmd.AwareAt,
		deadline,
	}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Incident, error) {
		var owner uuid.UUID
		err := tx.QueryRowContext(
			ctx,
			"SELECT organization_id FROM ai_systems WHERE id = $1 FOR SHARE",
			cmd.AISystemID,
		).Scan(&owner)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Incident{}, ErrSystemNotFound
			}
			return Incident{}, err
		}
		if err := cmd.CheckOwner(owner); err != nil {
			return Incident{}, err
		}

		return repository.QueryOne(ctx, tx, q, args, scanIncident)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"incident created",
		"id", i.ID,
		"category", i.Category,
		"deadline_at", i.DeadlineAt,
	)
	return &i, nil
}

func (r *repo) MarkReported(ctx context.Context, id uuid.UUID, reportedAt time.Time) (*Incident, error) {
	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Incident, error) {
		current, err := repository.QueryOne(
			ctx, tx,
			"SELECT "+returning+" FROM incident_reports WHERE id = $1 FOR UPDATE",
			[]any{id},
			scanIncident,
		)
		if err != nil {
			return Incident{}, err
		}
		if current.ReportedAt != nil {
			return Incident{}, ErrAlreadyReported
		}

		return repository.QueryOne(
			ctx, tx,
			"UPDATE incident_reports SET reported_at = $2 WHERE id = $1 RETURNING "+returning,
			[]any{id, reportedAt},
			scanIncident,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"incident reported",
		"id", i.ID,
		"late", reportedAt.After(i.DeadlineAt),
	)
	return &i, nil
}
