package objects

import "github.com/gidroatlas/gidroatlas/pkg/openapi"

var objectProperties = map[string]*openapi.Schema{
	"name":                {Type: "string"},
	"region":              {Type: "string"},
	"resource_type":       {Type: "string", Enum: []any{"lake", "canal", "reservoir"}},
	"water_type":          {Type: "string", Enum: []any{"fresh", "non-fresh"}},
	"fauna":               {Type: "boolean"},
	"passport_date":       {Type: "string", Example: "2015-06-01"},
	"technical_condition": {Type: "integer", Minimum: openapi.Ptr(1), Maximum: openapi.Ptr(5)},
	"latitude":            {Type: "number", Minimum: openapi.Ptr(-90), Maximum: openapi.Ptr(90)},
	"longitude":           {Type: "number", Minimum: openapi.Ptr(-180), Maximum: openapi.Ptr(180)},
}

func waterObjectSchema() *openapi.Schema {
	props := map[string]*openapi.Schema{
		"id":         {Type: "string", Format: "uuid"},
		"pdf_url":    {Type: "string", Nullable: true},
		"priority":   {Type: "integer", Nullable: true, Description: "(6 - technical_condition) * 3 + passport age in years"},
		"created_at": {Type: "string", Format: "date-time"},
		"updated_at": {Type: "string", Format: "date-time"},
	}
	for k, v := range objectProperties {
		props[k] = v
	}
	return &openapi.Schema{Type: "object", Properties: props}
}

var schemas = map[string]*openapi.Schema{
	"WaterObject": waterObjectSchema(),
	"WaterObjectCommand": {
		Type: "object",
		Required: []string{
			"name", "region", "resource_type", "water_type", "technical_condition", "latitude", "longitude",
		},
		Properties: objectProperties,
	},
	"WaterObjectPage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef("WaterObject")},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
			"highlighted": openapi.SchemaRef("WaterObject"),
		},
	},
	"Statistics": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"total":             {Type: "integer"},
			"by_resource_type":  {Type: "object"},
			"by_water_type":     {Type: "object"},
			"with_fauna":        {Type: "integer"},
			"average_condition": {Type: "number"},
			"regions":           {Type: "integer"},
			"good_condition":    {Type: "integer"},
			"poor_condition":    {Type: "integer"},
		},
	},
	"Passport": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"object": openapi.SchemaRef("WaterObject"),
			"key":    {Type: "string"},
			"pages":  {Type: "integer"},
			"size":   {Type: "integer"},
		},
	},
}

var idParam = openapi.PathParam("id", "Water object ID")

var objectResponse = openapi.JSONResponse("Water object", openapi.SchemaRef("WaterObject"))

var docs = struct {
	list, find, create, update, remove, recalculate *openapi.Operation
	regions, statistics, report                     *openapi.Operation
	uploadPassport, downloadPassport                *openapi.Operation
}{
	list: &openapi.Operation{
		Summary:     "List water objects",
		Description: "Filters, orders, and pages the registry. technical_condition and passport date filters require the expert role.",
		Security:    openapi.Bearer,
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("region", "string", "Exact region"),
			openapi.QueryParam("resource_type", "string", "lake, canal, or reservoir"),
			openapi.QueryParam("water_type", "string", "fresh or non-fresh"),
			openapi.QueryParam("fauna", "string", "true or false"),
			openapi.QueryParam("technical_condition", "string", "Exact condition 1-5 (expert)"),
			openapi.QueryParam("passport_date_from", "string", "Inclusive lower bound (expert)"),
			openapi.QueryParam("passport_date_to", "string", "Inclusive upper bound (expert)"),
			openapi.QueryParam("search", "string", "Case-insensitive name substring"),
			openapi.QueryParam("layers", "string", "Comma-separated visible resource types"),
			openapi.QueryParam("sort_by", "string", "Sort field, default priority"),
			openapi.QueryParam("order", "string", "asc or desc, default desc"),
			openapi.QueryParam("page", "integer", "Page number"),
			openapi.QueryParam("page_size", "integer", "Results per page"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.JSONResponse("Page of water objects", openapi.SchemaRef("WaterObjectPage")),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	find: &openapi.Operation{
		Summary:    "Find water object",
		Security:   openapi.Bearer,
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: objectResponse,
			404: openapi.ResponseRef("NotFound"),
		},
	},
	create: &openapi.Operation{
		Summary:     "Create water object",
		Security:    openapi.Bearer,
		RequestBody: openapi.JSONBody("WaterObjectCommand"),
		Responses: map[int]*openapi.Response{
			201: objectResponse,
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	update: &openapi.Operation{
		Summary:     "Update water object",
		Security:    openapi.Bearer,
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.JSONBody("WaterObjectCommand"),
		Responses: map[int]*openapi.Response{
			200: objectResponse,
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	remove: &openapi.Operation{
		Summary:    "Delete water object",
		Security:   openapi.Bearer,
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	recalculate: &openapi.Operation{
		Summary:  "Recalculate priorities",
		Security: openapi.Bearer,
		Responses: map[int]*openapi.Response{
			200: openapi.JSONResponse("Rows updated", &openapi.Schema{
				Type:       "object",
				Properties: map[string]*openapi.Schema{"updated": {Type: "integer"}},
			}),
		},
	},
	regions: &openapi.Operation{
		Summary:  "List regions",
		Security: openapi.Bearer,
		Responses: map[int]*openapi.Response{
			200: openapi.JSONResponse("Sorted distinct regions", &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}),
		},
	},
	statistics: &openapi.Operation{
		Summary:  "Registry statistics",
		Security: openapi.Bearer,
		Responses: map[int]*openapi.Response{
			200: openapi.JSONResponse("Statistics", openapi.SchemaRef("Statistics")),
		},
	},
	report: &openapi.Operation{
		Summary:  "Text report",
		Security: openapi.Bearer,
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("type", "string", "all, critical, or region"),
			openapi.QueryParam("region", "string", "Region for type=region"),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Report attachment",
				Content:     map[string]*openapi.MediaType{"text/plain": {Schema: &openapi.Schema{Type: "string"}}},
			},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	uploadPassport: &openapi.Operation{
		Summary:    "Upload passport PDF",
		Security:   openapi.Bearer,
		Parameters: []*openapi.Parameter{idParam},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {Schema: &openapi.Schema{
					Type:       "object",
					Properties: map[string]*openapi.Schema{"file": {Type: "string", Format: "binary"}},
				}},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.JSONResponse("Stored passport", openapi.SchemaRef("Passport")),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: {Description: "File too large"},
		},
	},
	downloadPassport: &openapi.Operation{
		Summary:    "Download passport PDF",
		Security:   openapi.Bearer,
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Passport",
				Content:     map[string]*openapi.MediaType{"application/pdf": {Schema: &openapi.Schema{Type: "string", Format: "binary"}}},
			},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
