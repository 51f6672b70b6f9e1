package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conniexu444/parse-and-track-spending/internal/extractor"
	"github.com/conniexu444/parse-and-track-spending/internal/ingest"
	"github.com/conniexu444/parse-and-track-spending/internal/models"
	"github.com/conniexu444/parse-and-track-spending/internal/parser"
)

// pageBreakSeparator splits pre-extracted text posted by clients that run
// their own text extraction.
const pageBreakSeparator = "\n---PAGE_BREAK---\n"

// ParseResponse is the JSON response from the /api/parse endpoint.
type ParseResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	RunID        string               `json:"runId,omitempty"`
	Issuer       string               `json:"issuer,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Totals       models.Totals        `json:"totals"`
	Count        int                  `json:"count"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Cleaner *parser.MerchantCleaner
	Log     zerolog.Logger
}

// NewApp builds the fiber application with all routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // 32MB uploads
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger(h.Log))

	app.Get("/api/health", HandleHealth)
	app.Post("/api/parse", h.HandleParse)
	return app
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleParse accepts a statement upload (PDF or CSV) or pre-extracted page
// text and responds with the normalized transactions and totals.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	if extracted := c.FormValue("extractedText"); extracted != "" {
		var pages []string
		for _, page := range strings.Split(extracted, pageBreakSeparator) {
			if page = strings.TrimSpace(page); page != "" {
				pages = append(pages, page)
			}
		}
		return h.respondFromPages(c, pages)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".csv":
		src, err := file.Open()
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to open uploaded file.")
		}
		defer src.Close()

		txns, err := ingest.Read(src)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("CSV ingestion failed: %v", err))
		}
		return h.respond(c, "", txns)

	case ".pdf":
		tmpPath := filepath.Join(os.TempDir(), "statement-"+uuid.NewString()+".pdf")
		if err := c.SaveFile(file, tmpPath); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
		}
		defer os.Remove(tmpPath)

		pages, err := extractor.ExtractText(tmpPath)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
		}
		return h.respondFromPages(c, pages)

	default:
		return writeError(c, fiber.StatusBadRequest, "Only PDF and CSV files are supported.")
	}
}

func (h *Handler) respondFromPages(c *fiber.Ctx, pages []string) error {
	issuer, err := resolveIssuer(c.FormValue("issuer"), pages)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	p, err := parser.NewWithCleaner(issuer, h.Cleaner)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	txns, err := p.Parse(pages)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}
	return h.respond(c, string(issuer), txns)
}

func (h *Handler) respond(c *fiber.Ctx, issuer string, txns []models.Transaction) error {
	// nil marshals to JSON null, not [].
	if txns == nil {
		txns = []models.Transaction{}
	}

	runID := uuid.NewString()
	h.Log.Info().
		Str("run_id", runID).
		Str("issuer", issuer).
		Int("transactions", len(txns)).
		Msg("statement parsed")

	return c.JSON(ParseResponse{
		Success:      true,
		RunID:        runID,
		Issuer:       issuer,
		Transactions: txns,
		Totals:       parser.Aggregate(txns),
		Count:        len(txns),
	})
}

func resolveIssuer(param string, pages []string) (models.IssuerType, error) {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "":
		return parser.AutoDetect(pages)
	case "amex", "americanexpress", "american express":
		return models.IssuerAmex, nil
	default:
		return "", fmt.Errorf("unknown issuer: %q; only amex is supported", param)
	}
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
