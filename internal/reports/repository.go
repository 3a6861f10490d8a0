package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/posture/internal/alerts"
	"github.com/JaimeStill/posture/internal/escalation"
	"github.com/JaimeStill/posture/internal/readiness"
	"github.com/JaimeStill/posture/pkg/formatting"
	"github.com/JaimeStill/posture/pkg/storage"
)

type repo struct {
	readiness  readiness.System
	alerts     alerts.System
	escalation escalation.System
	storage    storage.System
	logger     *slog.Logger
}

// New creates a report System composing the readiness, alert, and escalation systems.
func New(
	readinessSys readiness.System,
	alertsSys alerts.System,
	escalationSys escalation.System,
	store storage.System,
	logger *slog.Logger,
) System {
	return &repo{
		readiness:  readinessSys,
		alerts:     alertsSys,
		escalation: escalationSys,
		storage:    store,
		logger:     logger.With("system", "reports"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Snapshot(ctx context.Context, orgID uuid.UUID, now time.Time) (*Snapshot, error) {
	if orgID == uuid.Nil {
		return nil, ErrMissingContext
	}

	snap := &Snapshot{
		OrganizationID: orgID,
		GeneratedAt:    now,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := r.readiness.Compute(gctx, orgID, now)
		if err != nil {
			return err
		}
		snap.Readiness = *result
		return nil
	})
	g.Go(func() error {
		feed, err := r.alerts.Feed(gctx, orgID, now)
		if err != nil {
			return err
		}
		snap.Alerts = *feed
		return nil
	})
	g.Go(func() error {
		items, err := r.escalation.ListEscalated(gctx, orgID)
		if err != nil {
			return err
		}
		snap.Escalations = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	return snap, nil
}

func (r *repo) Export(ctx context.Context, orgID uuid.UUID, now time.Time) (*Export, error) {
	snap, err := r.Snapshot(ctx, orgID, now)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := r.storage.Key(orgID.String(), now.UTC().Format(TimestampLayout)+".json")

	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	size := int64(len(data))
	export := &Export{
		Key:       key,
		SizeBytes: size,
		Size:      formatting.FormatBytes(size, 1),
		Snapshot:  snap,
	}

	r.logger.Info(
		"snapshot exported",
		"org_id", orgID,
		"key", key,
		"size", export.Size,
		"overall_score", snap.Readiness.OverallScore,
	)
	return export, nil
}

func (r *repo) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if prefix := r.storage.Key(); prefix != "" && !strings.HasPrefix(key, prefix+"/") {
		return nil, ErrInvalidKey
	}

	body, err := r.storage.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return body, nil
}
