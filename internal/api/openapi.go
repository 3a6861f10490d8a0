package api

import (
	"fmt"
	"maps"
	"strings"

	"github.com/JaimeStill/posture/internal/alerts"
	"github.com/JaimeStill/posture/internal/config"
	"github.com/JaimeStill/posture/internal/escalation"
	"github.com/JaimeStill/posture/internal/incidents"
	"github.com/JaimeStill/posture/internal/readiness"
	"github.com/JaimeStill/posture/internal/reports"
	"github.com/JaimeStill/posture/pkg/openapi"
	"github.com/JaimeStill/posture/pkg/routes"
)

// BuildSpec assembles the OpenAPI document for the given route groups.
// Routes without an operation are listed with a generated summary.
func BuildSpec(cfg *config.Config, groups ...routes.Group) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	schemas := make(map[string]*openapi.Schema)
	maps.Copy(schemas, readiness.Spec.Schemas)
	maps.Copy(schemas, alerts.Spec.Schemas)
	maps.Copy(schemas, incidents.Spec.Schemas)
	maps.Copy(schemas, escalation.Spec.Schemas)
	maps.Copy(schemas, reports.Spec.Schemas)
	spec.Components.AddSchemas(schemas)

	routes.Walk(func(path string, route routes.Route) {
		op := route.OpenAPI
		if op == nil {
			op = &openapi.Operation{
				Summary:   fmt.Sprintf("%s %s", route.Method, path),
				Responses: map[int]*openapi.Response{200: {Description: "OK"}},
			}
		}
		spec.AddOperation(specPath(path), route.Method, op)
	}, groups...)

	return spec
}

// specPath rewrites ServeMux wildcards into OpenAPI path templates.
func specPath(pattern string) string {
	if pattern == "" {
		return "/"
	}
	return strings.ReplaceAll(pattern, "...}", "}")
}
