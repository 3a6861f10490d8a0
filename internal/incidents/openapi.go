package incidents

import "github.com/JaimeStill/posture/pkg/openapi"

type spec struct {
	List     *openapi.Operation
	Create   *openapi.Operation
	Search   *openapi.Operation
	Preview  *openapi.Operation
	Find     *openapi.Operation
	Deadline *openapi.Operation
	Report   *openapi.Operation
	Schemas  map[string]*openapi.Schema
}

var idParam = openapi.PathParam("id", "Incident ID")

func categorySchema() *openapi.Schema {
	values := make([]string, len(Categories))
	for i, c := range Categories {
		values[i] = string(c)
	}
	return openapi.EnumSchema("Incident category", values...)
}

// Spec documents the incident endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary: "List incidents",
		Tags:    []string{"Incidents"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("sort", "string", "Sort fields", false),
			openapi.QueryParam("organization_id", "string", "Filter by organization", false),
			openapi.QueryParam("ai_system_id", "string", "Filter by AI system", false),
			openapi.QueryParam("category", "string", "Filter by category", false),
			openapi.QueryParam("reported", "boolean", "Filter by disclosure state", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Incident page", "IncidentPage"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Record an incident",
		Description: "The reporting deadline is computed from aware_at and category and stored with the incident.",
		Tags:        []string{"Incidents"},
		RequestBody: openapi.RequestBodyJSON("CreateIncident", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created incident", "Incident"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search incidents",
		Tags:        []string{"Incidents"},
		RequestBody: openapi.RequestBodyJSON("PageRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Incident page", "IncidentPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Preview: &openapi.Operation{
		Summary:     "Preview a reporting deadline",
		Tags:        []string{"Incidents"},
		RequestBody: openapi.RequestBodyJSON("DeadlineRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Deadline status", "DeadlineStatus"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get incident",
		Tags:       []string{"Incidents"},
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Incident", "Incident"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Deadline: &openapi.Operation{
		Summary:    "Get incident deadline status",
		Tags:       []string{"Incidents"},
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Deadline status", "DeadlineStatus"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Report: &openapi.Operation{
		Summary:    "Mark incident reported",
		Tags:       []string{"Incidents"},
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Reported incident", "Incident"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Incident": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string", Format: "uuid"},
				"organization_id": {Type: "string", Format: "uuid"},
				"ai_system_id":    {Type: "string", Format: "uuid"},
				"title":           {Type: "string"},
				"description":     {Type: "string"},
				"category":        categorySchema(),
				"aware_at":        {Type: "string", Format: "date-time"},
				"deadline_at":     {Type: "string", Format: "date-time"},
				"reported_at":     {Type: "string", Format: "date-time"},
				"created_at":      {Type: "string", Format: "date-time"},
			},
		},
		"IncidentPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Incident")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"CreateIncident": {
			Type:     "object",
			Required: []string{"organization_id", "ai_system_id", "title", "category", "aware_at"},
			Properties: map[string]*openapi.Schema{
				"organization_id": {Type: "string", Format: "uuid"},
				"ai_system_id":    {Type: "string", Format: "uuid"},
				"title":           {Type: "string"},
				"description":     {Type: "string"},
				"category":        categorySchema(),
				"aware_at":        {Type: "string", Format: "date-time"},
			},
		},
		"DeadlineRequest": {
			Type:     "object",
			Required: []string{"aware_at", "category"},
			Properties: map[string]*openapi.Schema{
				"aware_at": {Type: "string", Format: "date-time"},
				"category": categorySchema(),
			},
		},
		"DeadlineStatus": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"deadline_at":     {Type: "string", Format: "date-time"},
				"is_approaching":  {Type: "boolean"},
				"is_passed":       {Type: "boolean"},
				"hours_remaining": {Type: "number"},
			},
		},
	},
}
