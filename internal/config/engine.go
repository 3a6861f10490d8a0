package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvEngineAttestationWindowDays   = "POSTURE_ENGINE_ATTESTATION_WINDOW_DAYS"
	EnvEngineEvidenceWindowDays      = "POSTURE_ENGINE_EVIDENCE_WINDOW_DAYS"
	EnvEngineControlReviewWindowDays = "POSTURE_ENGINE_CONTROL_REVIEW_WINDOW_DAYS"
)

// EngineConfig holds the look-ahead windows used when scanning for alerts.
type EngineConfig struct {
	AttestationWindowDays   int `toml:"attestation_window_days"`
	EvidenceWindowDays      int `toml:"evidence_window_days"`
	ControlReviewWindowDays int `toml:"control_review_window_days"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EngineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EngineConfig) Merge(overlay *EngineConfig) {
	if overlay.AttestationWindowDays != 0 {
		c.AttestationWindowDays = overlay.AttestationWindowDays
	}
	if overlay.EvidenceWindowDays != 0 {
		c.EvidenceWindowDays = overlay.EvidenceWindowDays
	}
	if overlay.ControlReviewWindowDays != 0 {
		c.ControlReviewWindowDays = overlay.ControlReviewWindowDays
	}
}

func (c *EngineConfig) loadDefaults() {
	if c.AttestationWindowDays == 0 {
		c.AttestationWindowDays = 30
	}
	if c.EvidenceWindowDays == 0 {
		c.EvidenceWindowDays = 30
	}
	if c.ControlReviewWindowDays == 0 {
		c.ControlReviewWindowDays = 14
	}
}

func (c *EngineConfig) loadEnv() {
	envInt(EnvEngineAttestationWindowDays, &c.AttestationWindowDays)
	envInt(EnvEngineEvidenceWindowDays, &c.EvidenceWindowDays)
	envInt(EnvEngineControlReviewWindowDays, &c.ControlReviewWindowDays)
}

func (c *EngineConfig) validate() error {
	if c.AttestationWindowDays < 1 {
		return fmt.Errorf("attestation_window_days must be positive")
	}
	if c.EvidenceWindowDays < 1 {
		return fmt.Errorf("evidence_window_days must be positive")
	}
	if c.ControlReviewWindowDays < 1 {
		return fmt.Errorf("control_review_window_days must be positive")
	}
	return nil
}

func envInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
