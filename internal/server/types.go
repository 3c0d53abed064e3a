package server

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/tensorplex-labs/datasynth/internal/config"
	"github.com/tensorplex-labs/datasynth/internal/dataset"
	"github.com/tensorplex-labs/datasynth/internal/export"
	"github.com/tensorplex-labs/datasynth/internal/generator"
)

const (
	APIKeyHeader string = "x-api-key"

	// Server defaults
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8000
	DefaultBodyLimit  = 4 * 1024 * 1024 // 4MB

	AppName    = "Synthetic Dataset Generator API"
	AppVersion = "1.0.0"

	rootMessage           = "Welcome to the Synthetic Dataset Generator API. Visit /docs for API documentation."
	invalidAPIKeyMessage  = "Invalid API key"
	internalErrorMessage  = "Internal server error"
	generatePath          = "/api/v1/generate"
	csvContentType        = "text/csv; charset=utf-8"
	contentDispositionCSV = "attachment; filename=" + export.DownloadName
)

// DatasetGenerator produces rows for a validated request. It must not fail;
// model errors are handled inside by falling back to local synthesis.
type DatasetGenerator interface {
	Generate(ctx context.Context, req dataset.Request) (dataset.Result, generator.Source)
}

// Server wraps the fiber app serving the generation API.
type Server struct {
	App       *fiber.App
	config    *config.ServerEnvConfig
	apiKey    string
	generator DatasetGenerator
	files     export.TempFiles
	openapi   *OpenAPISpec
}

// StdResponse represents the standardized response structure
type StdResponse[T any] struct {
	Body  T       `json:"body"`
	Error *string `json:"error,omitempty"`
}

// generateRequest mirrors dataset.Request with a pointer row count so a
// missing field can be told apart from an explicit zero.
type generateRequest struct {
	Columns  []dataset.Column `json:"columns"`
	RowCount *int             `json:"row_count"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}
