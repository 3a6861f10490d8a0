package reports

import "github.com/JaimeStill/posture/pkg/openapi"

type spec struct {
	Snapshot *openapi.Operation
	Export   *openapi.Operation
	Download *openapi.Operation
	Schemas  map[string]*openapi.Schema
}

var orgPathParam = openapi.PathParam("orgId", "Organization ID")

// Spec documents the report endpoints.
var Spec = spec{
	Snapshot: &openapi.Operation{
		Summary:    "Compute posture snapshot",
		Tags:       []string{"Reports"},
		Parameters: []*openapi.Parameter{orgPathParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Posture snapshot", "Snapshot"),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Export: &openapi.Operation{
		Summary:     "Export posture snapshot",
		Description: "Computes a snapshot and archives it as JSON in blob storage.",
		Tags:        []string{"Reports"},
		Parameters:  []*openapi.Parameter{orgPathParam},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Export record", "Export"),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Download: &openapi.Operation{
		Summary:    "Download exported snapshot",
		Tags:       []string{"Reports"},
		Parameters: []*openapi.Parameter{openapi.StringPathParam("key", "Blob key returned by export")},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Snapshot JSON",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.SchemaRef("Snapshot")},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Snapshot": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"organization_id": {Type: "string", Format: "uuid"},
				"generated_at":    {Type: "string", Format: "date-time"},
				"readiness":       openapi.SchemaRef("ReadinessResult"),
				"alerts":          openapi.SchemaRef("AlertFeed"),
				"escalations":     {Type: "array", Items: openapi.SchemaRef("Escalated")},
			},
		},
		"Export": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":        {Type: "string"},
				"size_bytes": {Type: "integer"},
				"size":       {Type: "string", Example: "2.10 KB"},
				"snapshot":   openapi.SchemaRef("Snapshot"),
			},
		},
	},
}
