package readiness

import "github.com/JaimeStill/posture/pkg/openapi"

type spec struct {
	Get     *openapi.Operation
	Schemas map[string]*openapi.Schema
}

var category = &openapi.Schema{
	Type: "object",
	Properties: map[string]*openapi.Schema{
		"score": {Type: "integer"},
		"max":   {Type: "integer"},
		"label": {Type: "string", Example: "7/10 classified"},
	},
}

// Spec documents the readiness endpoints.
var Spec = spec{
	Get: &openapi.Operation{
		Summary:     "Compute readiness",
		Description: "Scores the organization's records as of the request time. An unknown organization yields the empty result.",
		Tags:        []string{"Readiness"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("orgId", "Organization ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Readiness result", "ReadinessResult"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"ReadinessResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"overall_score": {Type: "integer", Example: 72},
				"status": openapi.EnumSchema("Readiness tier",
					string(StatusExcellent), string(StatusGood), string(StatusNeedsAttention), string(StatusAtRisk)),
				"breakdown": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"classification": category,
						"controls":       category,
						"evidence":       category,
						"tasks":          category,
						"training":       category,
					},
				},
			},
		},
	},
}
