package api

import (
	"net/http"

	"github.com/JaimeStill/posture/internal/config"
	"github.com/JaimeStill/posture/pkg/openapi"
	"github.com/JaimeStill/posture/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	groups := []routes.Group{
		domain.Readiness.Handler().Routes(),
		domain.Incidents.Handler().Routes(),
		domain.Alerts.Handler().Routes(),
		domain.Escalation.Handler().Routes(),
		domain.Reports.Handler().Routes(),
	}

	routes.Register(mux, groups...)

	specBytes, err := openapi.MarshalJSON(BuildSpec(cfg, groups...))
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
