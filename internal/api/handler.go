package api

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/expense-parser/internal/models"
	"github.com/insightdelivered/expense-parser/internal/parser"
)

const version = "1.0.0"

// UploadResponse is the JSON response from the /api/upload endpoint.
type UploadResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Filename     string               `json:"filename,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
	TotalCredit  float64              `json:"totalCredit"`
	TotalDebit   float64              `json:"totalDebit"`
}

// StatementParser is the part of *parser.Parser the handler needs.
type StatementParser interface {
	Parse(data []byte, filename string) ([]models.Transaction, error)
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Parser StatementParser
	Log    zerolog.Logger
}

// NewApp builds a fiber app with the API routes registered.
func NewApp(h *Handler, maxUploadBytes int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "expense-parser " + version,
		BodyLimit:             maxUploadBytes,
		DisableStartupMessage: true,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/upload", h.HandleUpload)
}

// HandleHealth reports that the service is up.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

// HandleUpload parses an uploaded statement file from the "file" form field.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	start := time.Now()
	log := h.Log.With().Str("request_id", uuid.NewString()).Logger()

	header, err := c.FormFile("file")
	if err != nil || header.Filename == "" {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	f, err := header.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open upload")
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		log.Error().Err(err).Msg("failed to read upload")
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}

	log = log.With().Str("file", header.Filename).Int("bytes", len(data)).Logger()

	transactions, err := h.Parser.Parse(data, header.Filename)
	if err != nil {
		status := statusFor(err)
		log.Warn().Err(err).Int("status", status).Msg("upload rejected")
		return writeError(c, status, err.Error())
	}

	var totalCredit, totalDebit decimal.Decimal
	for _, txn := range transactions {
		totalCredit = totalCredit.Add(txn.Credit)
		totalDebit = totalDebit.Add(txn.Debit)
	}

	log.Info().
		Int("transactions", len(transactions)).
		Dur("elapsed", time.Since(start)).
		Msg("upload parsed")

	return c.JSON(UploadResponse{
		Success:      true,
		Filename:     header.Filename,
		Transactions: transactions,
		Count:        len(transactions),
		TotalCredit:  totalCredit.InexactFloat64(),
		TotalDebit:   totalDebit.InexactFloat64(),
	})
}

// statusFor maps parser failures to HTTP status codes.
func statusFor(err error) int {
	var (
		unsupported *parser.UnsupportedFormatError
		missing     *parser.MissingColumnsError
		decode      *parser.DecodeError
	)
	switch {
	case errors.As(err, &unsupported),
		errors.As(err, &missing),
		errors.As(err, &decode),
		errors.Is(err, parser.ErrNoTransactions):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(UploadResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
