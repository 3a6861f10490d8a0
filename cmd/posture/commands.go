package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/posture/internal/alerts"
	"github.com/JaimeStill/posture/internal/incidents"
)

func parseOrg(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, codeError(2, "invalid organization id %q", arg)
	}
	return id, nil
}

func newScoreCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "score <org-id>",
		Short: "Compute the readiness score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseOrg(args[0])
			if err != nil {
				return err
			}
			now, err := evaluationTime(flags.at)
			if err != nil {
				return err
			}

			s, err := openSession(flags.config)
			if err != nil {
				return err
			}
			defer s.close()

			result, err := s.domain.Readiness.Compute(s.context(), orgID, now)
			if err != nil {
				return codeError(5, "%s", err)
			}
			return writeJSON(cmd.OutOrStdout(), result, flags.pretty)
		},
	}
}

func newAlertsCmd(flags *globalFlags) *cobra.Command {
	var severity string

	cmd := &cobra.Command{
		Use:   "alerts <org-id>",
		Short: "Build the alert feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseOrg(args[0])
			if err != nil {
				return err
			}
			now, err := evaluationTime(flags.at)
			if err != nil {
				return err
			}
			if severity != "" && !alerts.Severity(severity).Valid() {
				return codeError(2, "unknown severity %q", severity)
			}

			s, err := openSession(flags.config)
			if err != nil {
				return err
			}
			defer s.close()

			feed, err := s.domain.Alerts.Feed(s.context(), orgID, now)
			if err != nil {
				return codeError(5, "%s", err)
			}
			if severity != "" {
				feed.Alerts = alerts.FilterSeverity(feed.Alerts, alerts.Severity(severity))
			}
			return writeJSON(cmd.OutOrStdout(), feed, flags.pretty)
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "Only emit alerts of this severity: critical, warning, or info")
	return cmd
}

func newEscalationsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "escalations <org-id>",
		Short: "List AI systems in escalated state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseOrg(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(flags.config)
			if err != nil {
				return err
			}
			defer s.close()

			items, err := s.domain.Escalation.ListEscalated(s.context(), orgID)
			if err != nil {
				return codeError(5, "%s", err)
			}
			return writeJSON(cmd.OutOrStdout(), items, flags.pretty)
		},
	}
}

// The deadline command never touches infrastructure.
func newDeadlineCmd(flags *globalFlags) *cobra.Command {
	var (
		category string
		awareAt  string
	)

	cmd := &cobra.Command{
		Use:   "deadline",
		Short: "Calculate an incident reporting deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := incidents.Category(category)
			if !c.Valid() {
				return codeError(2, "unknown category %q", category)
			}
			aware, err := time.Parse(time.RFC3339, awareAt)
			if err != nil {
				return codeError(2, "invalid --aware-at value %q: %s", awareAt, err)
			}
			now, err := evaluationTime(flags.at)
			if err != nil {
				return err
			}

			status := incidents.Evaluate(incidents.Deadline(aware, c), now)
			return writeJSON(cmd.OutOrStdout(), status, flags.pretty)
		},
	}

	f := cmd.Flags()
	f.StringVar(&category, "category", string(incidents.CategoryOther), categoryUsage())
	f.StringVar(&awareAt, "aware-at", "", "Instant the organization became aware, in RFC 3339")
	if err := cmd.MarkFlagRequired("aware-at"); err != nil {
		panic(err)
	}

	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <org-id>",
		Short: "Export a posture snapshot to blob storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := parseOrg(args[0])
			if err != nil {
				return err
			}
			now, err := evaluationTime(flags.at)
			if err != nil {
				return err
			}

			s, err := openSession(flags.config)
			if err != nil {
				return err
			}
			defer s.close()

			export, err := s.domain.Reports.Export(s.context(), orgID, now)
			if err != nil {
				return codeError(5, "%s", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %s (%s)\n", export.Key, export.Size)
			return writeJSON(cmd.OutOrStdout(), export.Snapshot, flags.pretty)
		},
	}
}

func categoryUsage() string {
	usage := "Incident category:"
	for i, c := range incidents.Categories {
		if i > 0 {
			usage += ","
		}
		usage += " " + string(c)
	}
	return usage
}
