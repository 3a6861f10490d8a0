package alerts

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
	store   records.Store
	windows Windows
	logger  *slog.Logger
}

// New creates an alert System reading from the given record store.
func New(store records.Store, windows Windows, logger *slog.Logger) System {
	return &repo{
		store:   store,
		windows: windows.Normalize(),
		logger:  logger.With("system", "alerts"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Feed(ctx context.Context, orgID uuid.UUID, now time.Time) (*Feed, error) {
	if orgID == uuid.Nil {
		empty := EmptyFeed()
		return &empty, nil
	}

	src, err := r.Sources(ctx, orgID, now)
	if err != nil {
		return nil, err
	}

	feed := Aggregate(*src, now, r.windows)

	r.logger.Info("alert feed built",
		"org_id", orgID,
		"total", feed.Counts.Total,
		"critical", feed.Counts.Critical,
	)
	return &feed, nil
}

func (r *repo) Sources(ctx context.Context, orgID uuid.UUID, now time.Time) (*Sources, error) {
	var src Sources

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		src.Attestations, err = r.store.ExpiringAttestations(gctx, orgID, now.AddDate(0, 0, r.windows.AttestationDays))
		return err
	})
	g.Go(func() (err error) {
		src.Evidence, err = r.store.ExpiringEvidence(gctx, orgID, now.AddDate(0, 0, r.windows.EvidenceDays))
		return err
	})
	g.Go(func() (err error) {
		src.Controls, err = r.store.ControlsDueForReview(gctx, orgID, now.AddDate(0, 0, r.windows.ControlReviewDays))
		return err
	})
	g.Go(func() (err error) {
		src.Tasks, err = r.store.OverdueTasks(gctx, orgID, now)
		return err
	})

	if err := g.Wait(); err != nil {
		r.logger.Error("alert retrieval failed", "org_id", orgID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	return &src, nil
}
