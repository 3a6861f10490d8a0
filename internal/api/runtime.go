package api

import (
	"github.com/JaimeStill/posture/internal/alerts"
	"github.com/JaimeStill/posture/internal/config"
	"github.com/JaimeStill/posture/internal/infrastructure"
	"github.com/JaimeStill/posture/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Windows    alerts.Windows
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Windows:    Windows(&cfg.Engine),
	}
}

// Windows converts the engine configuration into alert look-ahead windows.
func Windows(cfg *config.EngineConfig) alerts.Windows {
	return alerts.Windows{
		AttestationDays:   cfg.AttestationWindowDays,
		EvidenceDays:      cfg.EvidenceWindowDays,
		ControlReviewDays: cfg.ControlReviewWindowDays,
	}.Normalize()
}
