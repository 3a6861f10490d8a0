package main

import (
	"context"
	"slices"
	"strings"

	"github.com/JaimeStill/posture/internal/api"
	"github.com/JaimeStill/posture/internal/config"
	"github.com/JaimeStill/posture/internal/infrastructure"
	"github.com/JaimeStill/posture/pkg/database"
)

// session holds the started infrastructure and domain systems for one command.
type session struct {
	cfg    *config.Config
	infra  *infrastructure.Infrastructure
	domain *api.Domain
}

func openSession(path string) (*session, error) {
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, codeError(3, "config load failed: %s", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, codeError(4, "infrastructure init failed: %s", err)
	}

	if err := infra.Start(); err != nil {
		return nil, codeError(4, "infrastructure start failed: %s", err)
	}
	infra.Lifecycle.WaitForStartup()

	if pending := infra.Lifecycle.Pending(); len(pending) > 0 {
		infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
		if slices.Contains(pending, "database") {
			return nil, codeError(4, "%s", database.ErrNotReady)
		}
		return nil, codeError(4, "subsystems not ready: %s", strings.Join(pending, ", "))
	}

	runtime := api.NewRuntime(cfg, infra)

	return &session{
		cfg:    cfg,
		infra:  infra,
		domain: api.NewDomain(runtime),
	}, nil
}

func (s *session) context() context.Context {
	return s.infra.Lifecycle.Context()
}

func (s *session) close() {
	if err := s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration()); err != nil {
		s.infra.Logger.Error("shutdown failed", "error", err)
	}
}
