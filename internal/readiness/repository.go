package readiness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/posture/internal/records"
)

type repo struct {
	store  records.Store
	logger *slog.Logger
}

// New creates a readiness System reading from the given record store.
func New(store records.Store, logger *slog.Logger) System {
	return &repo{
		store:  store,
		logger: logger.With("system", "readiness"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Compute(ctx context.Context, orgID uuid.UUID, now time.Time) (*Result, error) {
	if orgID == uuid.Nil {
		empty := Empty()
		return &empty, nil
	}

	in, err := r.Inputs(ctx, orgID)
	if err != nil {
		return nil, err
	}

	result := Score(*in, now)

	r.logger.Info("readiness computed",
		"org_id", orgID,
		"overall_score", result.OverallScore,
		"status", result.Status,
	)
	return &result, nil
}

// Inputs issues the six retrievals concurrently. The first failure cancels
// the rest and is returned wrapped in ErrRetrieval.
func (r *repo) Inputs(ctx context.Context, orgID uuid.UUID) (*Inputs, error) {
	var in Inputs

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		in.TotalSystems, err = r.store.CountSystems(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		in.Classifications, err = r.store.Classifications(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		in.Controls, err = r.store.Controls(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		in.Evidence, err = r.store.Evidence(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		in.Tasks, err = r.store.Tasks(gctx, orgID)
		return err
	})
	g.Go(func() (err error) {
		in.Training, err = r.store.Training(gctx, orgID)
		return err
	})

	if err := g.Wait(); err != nil {
		r.logger.Error("readiness retrieval failed", "org_id", orgID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	return &in, nil
}
