package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conniexu444/parse-and-track-spending/internal/logger"
	"github.com/conniexu444/parse-and-track-spending/internal/parser"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return NewApp(&Handler{
		Cleaner: parser.DefaultCleaner(),
		Log:     logger.NewWithWriter(io.Discard, "error"),
	})
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "fiber", result["engine"])
}

func TestParseEndpointRequiresFile(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("POST", "/api/parse", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result ParseResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.NotNil(t, result.Transactions)
}

func TestParseEndpointPreExtractedText(t *testing.T) {
	app := setupTestApp(t)

	statement := "AMERICAN EXPRESS Account Ending 5-12345 " +
		"Credits Amount 04/10/25 AUTOPAY PAYMENT RECEIVED -$10.00 ⧫ " +
		"New Charges Detail Amount " +
		"04/19/25 TARGET 000012345 BROOKLYN NY $40.51 ⧫ " +
		"2025 Fees and Interest"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("extractedText", statement))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result ParseResponse
	require.NoError(t, json.Unmarshal(body, &result))

	assert.True(t, result.Success)
	assert.Equal(t, "amex", result.Issuer)
	assert.NotEmpty(t, result.RunID)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, 40.51, result.Totals.TotalSpent)
	assert.Equal(t, 10.00, result.Totals.TotalCredits)
	assert.Equal(t, 30.51, result.Totals.NetSpending)
}

func TestParseEndpointCSVUpload(t *testing.T) {
	app := setupTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "export.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Date,Description,Amount\n2025-04-19,Target,40.51\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var result ParseResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.True(t, result.Success)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Target", result.Transactions[0].Title)
}

func TestParseEndpointRejectsUnknownExtension(t *testing.T) {
	app := setupTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "statement.docx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not a statement"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestParseEndpointUnknownIssuerText(t *testing.T) {
	app := setupTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("extractedText", "Some Unknown Bank statement text"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
