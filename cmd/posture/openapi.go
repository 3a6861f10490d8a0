package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/posture/internal/api"
	"github.com/JaimeStill/posture/internal/config"
	"github.com/JaimeStill/posture/internal/infrastructure"
	"github.com/JaimeStill/posture/pkg/openapi"
)

func newOpenAPICmd(flags *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Write the HTTP API document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(flags.config)
			if err != nil {
				return codeError(3, "config load failed: %s", err)
			}

			// Handlers are built but never served, so infrastructure is not started.
			infra, err := infrastructure.New(cfg)
			if err != nil {
				return codeError(4, "infrastructure init failed: %s", err)
			}
			defer infra.Database.Connection().Close()

			domain := api.NewDomain(api.NewRuntime(cfg, infra))
			spec := api.BuildSpec(cfg,
				domain.Readiness.Handler().Routes(),
				domain.Incidents.Handler().Routes(),
				domain.Alerts.Handler().Routes(),
				domain.Escalation.Handler().Routes(),
				domain.Reports.Handler().Routes(),
			)

			if out != "" {
				return openapi.WriteJSON(spec, out)
			}

			data, err := openapi.MarshalJSON(spec)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}
