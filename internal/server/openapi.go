package server

// OpenAPI 3.0 document types, limited to what the generation API needs.

type OpenAPISpec struct {
	OpenAPI    string                      `json:"openapi"`
	Info       OpenAPIInfo                 `json:"info"`
	Paths      map[string]*OpenAPIPathItem `json:"paths"`
	Components *OpenAPIComponents          `json:"components,omitempty"`
}

type OpenAPIInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type OpenAPIPathItem struct {
	Get  *OpenAPIOperation `json:"get,omitempty"`
	Post *OpenAPIOperation `json:"post,omitempty"`
}

type OpenAPIOperation struct {
	OperationID string                      `json:"operationId"`
	Summary     string                      `json:"summary"`
	Description string                      `json:"description,omitempty"`
	Tags        []string                    `json:"tags,omitempty"`
	Parameters  []OpenAPIParameter          `json:"parameters,omitempty"`
	RequestBody *OpenAPIRequestBody         `json:"requestBody,omitempty"`
	Responses   map[string]*OpenAPIResponse `json:"responses"`
}

type OpenAPIParameter struct {
	Name        string         `json:"name"`
	In          string         `json:"in"`
	Description string         `json:"description,omitempty"`
	Required    bool           `json:"required,omitempty"`
	Schema      *OpenAPISchema `json:"schema,omitempty"`
}

type OpenAPIRequestBody struct {
	Required bool                         `json:"required,omitempty"`
	Content  map[string]*OpenAPIMediaType `json:"content"`
}

type OpenAPIMediaType struct {
	Schema *OpenAPISchema `json:"schema,omitempty"`
}

type OpenAPIResponse struct {
	Description string                       `json:"description"`
	Content     map[string]*OpenAPIMediaType `json:"content,omitempty"`
}

type OpenAPISchema struct {
	Type        string                    `json:"type,omitempty"`
	Format      string                    `json:"format,omitempty"`
	Description string                    `json:"description,omitempty"`
	Properties  map[string]*OpenAPISchema `json:"properties,omitempty"`
	Items       *OpenAPISchema            `json:"items,omitempty"`
	Required    []string                  `json:"required,omitempty"`
	Enum        []string                  `json:"enum,omitempty"`
	Example     any                       `json:"example,omitempty"`
	Minimum     *float64                  `json:"minimum,omitempty"`
	Ref         string                    `json:"$ref,omitempty"`
}

type OpenAPIComponents struct {
	Schemas map[string]*OpenAPISchema `json:"schemas,omitempty"`
}

// BuildOpenAPISpec describes the routes registered by NewServer.
func BuildOpenAPISpec() *OpenAPISpec {
	spec := &OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: OpenAPIInfo{
			Title:       AppName,
			Description: "Generate synthetic tabular datasets as CSV from a column schema.",
			Version:     AppVersion,
		},
		Paths:      make(map[string]*OpenAPIPathItem),
		Components: &OpenAPIComponents{Schemas: make(map[string]*OpenAPISchema)},
	}

	buildRootEndpoint(spec)
	buildHealthEndpoint(spec)
	buildGenerateEndpoint(spec)

	buildColumnSchema(spec)
	buildGenerateRequestSchema(spec)
	buildErrorSchema(spec)
	return spec
}

func buildRootEndpoint(spec *OpenAPISpec) {
	spec.Paths["/"] = &OpenAPIPathItem{
		Get: &OpenAPIOperation{
			OperationID: "root",
			Summary:     "Welcome message",
			Tags:        []string{"system"},
			Responses: map[string]*OpenAPIResponse{
				"200": {Description: "Welcome message", Content: jsonContent(&OpenAPISchema{
					Type: "object",
					Properties: map[string]*OpenAPISchema{
						"message": {Type: "string", Example: rootMessage},
					},
				})},
			},
		},
	}
}

func buildHealthEndpoint(spec *OpenAPISpec) {
	spec.Paths["/health"] = &OpenAPIPathItem{
		Get: &OpenAPIOperation{
			OperationID: "healthCheck",
			Summary:     "Health check",
			Tags:        []string{"system"},
			Responses: map[string]*OpenAPIResponse{
				"200": {Description: "Service is healthy", Content: jsonContent(&OpenAPISchema{
					Type: "object",
					Properties: map[string]*OpenAPISchema{
						"status": {Type: "string", Example: "ok"},
					},
				})},
			},
		},
	}
}

func buildGenerateEndpoint(spec *OpenAPISpec) {
	spec.Paths[generatePath] = &OpenAPIPathItem{
		Post: &OpenAPIOperation{
			OperationID: "generateDataset",
			Summary:     "Generate a synthetic dataset",
			Description: "Generates row_count rows for the given columns and returns them as a CSV attachment.",
			Tags:        []string{"datasets"},
			Parameters: []OpenAPIParameter{
				{Name: APIKeyHeader, In: "header", Description: "API key", Required: true, Schema: &OpenAPISchema{Type: "string"}},
			},
			RequestBody: &OpenAPIRequestBody{
				Required: true,
				Content:  jsonContent(&OpenAPISchema{Ref: "#/components/schemas/DatasetRequest"}),
			},
			Responses: map[string]*OpenAPIResponse{
				"200": {Description: "CSV file", Content: map[string]*OpenAPIMediaType{
					"text/csv": {Schema: &OpenAPISchema{Type: "string", Format: "binary"}},
				}},
				"400": {Description: "Invalid request", Content: errorContent()},
				"401": {Description: invalidAPIKeyMessage, Content: errorContent()},
				"500": {Description: internalErrorMessage, Content: errorContent()},
			},
		},
	}
}

func buildColumnSchema(spec *OpenAPISpec) {
	spec.Components.Schemas["ColumnDefinition"] = &OpenAPISchema{
		Type:        "object",
		Description: "A named, typed column with optional example values.",
		Properties: map[string]*OpenAPISchema{
			"name":     {Type: "string", Example: "city"},
			"type":     {Type: "string", Enum: []string{"string", "integer", "float"}},
			"examples": {Type: "array", Items: &OpenAPISchema{}, Example: []string{"NYC", "LA"}},
		},
		Required: []string{"name", "type"},
	}
}

func buildGenerateRequestSchema(spec *OpenAPISpec) {
	zero := 0.0
	spec.Components.Schemas["DatasetRequest"] = &OpenAPISchema{
		Type: "object",
		Properties: map[string]*OpenAPISchema{
			"columns":   {Type: "array", Items: &OpenAPISchema{Ref: "#/components/schemas/ColumnDefinition"}},
			"row_count": {Type: "integer", Minimum: &zero, Example: 3},
		},
		Required: []string{"columns", "row_count"},
	}
}

func buildErrorSchema(spec *OpenAPISpec) {
	spec.Components.Schemas["Error"] = &OpenAPISchema{
		Type:        "object",
		Description: "Error response.",
		Properties: map[string]*OpenAPISchema{
			"body":  {Type: "object"},
			"error": {Type: "string", Description: "Error message"},
		},
		Required: []string{"error"},
	}
}

func errorContent() map[string]*OpenAPIMediaType {
	return jsonContent(&OpenAPISchema{Ref: "#/components/schemas/Error"})
}

func jsonContent(schema *OpenAPISchema) map[string]*OpenAPIMediaType {
	return map[string]*OpenAPIMediaType{
		"application/json": {Schema: schema},
	}
}
