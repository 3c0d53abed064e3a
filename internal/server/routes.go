package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/datasynth/internal/dataset"
	"github.com/tensorplex-labs/datasynth/internal/export"
)

const swaggerUIPage = `<!DOCTYPE html>
<html>
<head>
<title>%[1]s - Swagger UI</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: "/openapi.json", dom_id: "#swagger-ui"});
</script>
</body>
</html>`

const redocPage = `<!DOCTYPE html>
<html>
<head>
<title>%[1]s - ReDoc</title>
</head>
<body>
<redoc spec-url="/openapi.json"></redoc>
<script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
</body>
</html>`

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(messageResponse{Message: rootMessage})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(healthResponse{Status: "ok"})
}

func (s *Server) handleSwaggerUI(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(fmt.Sprintf(swaggerUIPage, AppName))
}

func (s *Server) handleRedoc(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(fmt.Sprintf(redocPage, AppName))
}

func (s *Server) handleOpenAPI(c *fiber.Ctx) error {
	return c.JSON(s.openapi)
}

// handleGenerate answers with the generated rows as a CSV attachment. The
// backing temp file is removed when fasthttp closes the body stream.
func (s *Server) handleGenerate(c *fiber.Ctx) error {
	var body generateRequest
	if err := jsonAPI.Unmarshal(c.Body(), &body); err != nil {
		log.Debug().Err(err).Msg("Failed to parse generate request")
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if body.RowCount == nil {
		return fiber.NewError(fiber.StatusBadRequest, "row_count is required")
	}

	req := dataset.Request{Columns: body.Columns, RowCount: *body.RowCount}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	start := time.Now()
	rows, source := s.generator.Generate(c.UserContext(), req)

	header := export.Header(req.ColumnNames(), rows)
	file, err := s.files.Create(header, rows)
	if err != nil {
		log.Error().Err(err).Msg("Failed to write CSV export")
		return fmt.Errorf("export dataset: %w", err)
	}

	log.Info().
		Str("source", string(source)).
		Int("rows", len(rows)).
		Int("columns", len(header)).
		Int64("bytes", file.Size()).
		Dur("elapsed", time.Since(start)).
		Msg("Dataset generated")

	c.Set(fiber.HeaderContentType, csvContentType)
	c.Set(fiber.HeaderContentDisposition, contentDispositionCSV)
	return c.SendStream(file, int(file.Size()))
}
