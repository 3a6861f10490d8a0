package alerts

import "github.com/JaimeStill/posture/pkg/openapi"

type spec struct {
	Get     *openapi.Operation
	Schemas map[string]*openapi.Schema
}

// Spec documents the alert feed endpoint.
var Spec = spec{
	Get: &openapi.Operation{
		Summary:     "Get alert feed",
		Description: "Aggregates expiring attestations, expiring evidence, controls due for review, and overdue tasks. Counts always cover the unfiltered feed.",
		Tags:        []string{"Alerts"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("orgId", "Organization ID"),
			openapi.QueryParam("severity", "string", "Only return alerts of this severity", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Alert feed", "AlertFeed"),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Alert": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id": {Type: "string", Example: "task_overdue:7b0c3f3e-6c53-4d2b-9a0e-1d5f7c3a2b10"},
				"type": openapi.EnumSchema("Alert source",
					string(TypeAttestationExpiring), string(TypeEvidenceExpiring), string(TypeControlReview), string(TypeTaskOverdue)),
				"severity": openapi.EnumSchema("Urgency",
					string(SeverityCritical), string(SeverityWarning), string(SeverityInfo)),
				"title":          {Type: "string"},
				"description":    {Type: "string"},
				"due_date":       {Type: "string", Format: "date-time"},
				"days_remaining": {Type: "integer", Description: "Negative when overdue"},
				"link_to":        {Type: "string"},
				"related_entity": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"kind": {Type: "string"},
						"id":   {Type: "string", Format: "uuid"},
						"name": {Type: "string"},
					},
				},
			},
		},
		"AlertFeed": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"alerts": {Type: "array", Items: openapi.SchemaRef("Alert")},
				"counts": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"critical": {Type: "integer"},
						"warning":  {Type: "integer"},
						"info":     {Type: "integer"},
						"total":    {Type: "integer"},
					},
				},
			},
		},
	},
}
