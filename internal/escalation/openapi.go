package escalation

import "github.com/JaimeStill/posture/pkg/openapi"

type spec struct {
	Find          *openapi.Operation
	Update        *openapi.Operation
	Check         *openapi.Operation
	Obligations   *openapi.Operation
	ListEscalated *openapi.Operation
	Schemas       map[string]*openapi.Schema
}

var targetParams = []*openapi.Parameter{
	openapi.PathParam("aiSystemId", "AI system ID"),
	openapi.StringPathParam("variant", "Verification variant: distributor or importer"),
}

var statusSchema = openapi.EnumSchema("Verification status",
	string(StatusNotStarted), string(StatusInProgress), string(StatusCompliant),
	string(StatusNonCompliant), string(StatusEscalated))

// Spec documents the verification and escalation endpoints.
var Spec = spec{
	Find: &openapi.Operation{
		Summary:    "Get verification",
		Tags:       []string{"Escalation"},
		Parameters: targetParams,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Verification", "Verification"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update verification",
		Description: "Applies a partial update. Setting has_rebranded or has_modified escalates the record to provider obligations.",
		Tags:        []string{"Escalation"},
		Parameters:  targetParams,
		RequestBody: openapi.RequestBodyJSON("UpdateVerification", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Stored verification", "Verification"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Check: &openapi.Operation{
		Summary:    "Check escalation",
		Tags:       []string{"Escalation"},
		Parameters: targetParams,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Escalation check", "EscalationCheck"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Obligations: &openapi.Operation{
		Summary:    "List effective obligations",
		Tags:       []string{"Escalation"},
		Parameters: targetParams,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Obligations for the effective role", "Obligations"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	ListEscalated: &openapi.Operation{
		Summary:    "List escalated AI systems",
		Tags:       []string{"Escalation"},
		Parameters: []*openapi.Parameter{openapi.PathParam("orgId", "Organization ID")},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Escalated AI systems",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Escalated")}},
				},
			},
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Verification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                   {Type: "string", Format: "uuid"},
				"organization_id":      {Type: "string", Format: "uuid"},
				"ai_system_id":         {Type: "string", Format: "uuid"},
				"ai_system_name":       {Type: "string"},
				"variant":              openapi.EnumSchema("Variant", string(VariantDistributor), string(VariantImporter)),
				"has_rebranded":        {Type: "boolean"},
				"has_modified":         {Type: "boolean"},
				"escalation_triggered": {Type: "boolean"},
				"status":               statusSchema,
				"notes":                {Type: "string"},
				"updated_at":           {Type: "string", Format: "date-time"},
			},
		},
		"UpdateVerification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"has_rebranded": {Type: "boolean"},
				"has_modified":  {Type: "boolean"},
				"status":        statusSchema,
				"notes":         {Type: "string"},
			},
		},
		"EscalationCheck": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"is_triggered": {Type: "boolean"},
				"triggers": {
					Type: "array",
					Items: openapi.EnumSchema("Trigger",
						string(TriggerRebranding), string(TriggerSubstantialModification),
						string(TriggerNameChange), string(TriggerPurposeChange)),
				},
				"severity":          openapi.EnumSchema("Severity", "high", "none"),
				"article_reference": {Type: "string", Example: ArticleReference},
				"required_actions":  {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"explanation":       {Type: "string"},
			},
		},
		"Obligations": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"role": openapi.EnumSchema("Effective role", string(RoleProvider), string(RoleDistributor), string(RoleImporter)),
				"obligations": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"code":    {Type: "string"},
							"title":   {Type: "string"},
							"article": {Type: "string"},
						},
					},
				},
			},
		},
		"Escalated": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"verification":   openapi.SchemaRef("Verification"),
				"check":          openapi.SchemaRef("EscalationCheck"),
				"effective_role": {Type: "string"},
			},
		},
	},
}
