package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nivaldeir/erp-easy-remote/internal/common"
	"github.com/Nivaldeir/erp-easy-remote/internal/importer"
	"github.com/Nivaldeir/erp-easy-remote/internal/services"
)

// 10 MB is plenty for a spreadsheet export.
const maxImportSize = 10 << 20

type ImportHandlers struct {
	importService    services.ImportService
	workspaceService services.WorkspaceService
}

func NewImportHandlers(importService services.ImportService, workspaceService services.WorkspaceService) *ImportHandlers {
	return &ImportHandlers{importService: importService, workspaceService: workspaceService}
}

// ImportCSV accepts a multipart CSV upload and runs it through the
// ledger importer. Row-level rejections do not fail the request; they
// are reported in the response counts.
func (h *ImportHandlers) ImportCSV(c echo.Context) error {
	workspaceID, _, err := resolveWorkspace(c, h.workspaceService)
	if err != nil {
		return err
	}

	fileHeader, fileErr := c.FormFile("file")
	if fileErr != nil {
		return common.SendValidationError(c, "file", "file is required")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return common.SendValidationError(c, "file", "only .csv files are accepted")
	}
	if fileHeader.Size > maxImportSize {
		return common.SendValidationError(c, "file", "file exceeds the 10MB limit")
	}

	src, openErr := fileHeader.Open()
	if openErr != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	content, readErr := io.ReadAll(io.LimitReader(src, maxImportSize+1))
	if readErr != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}

	result, importErr := h.importService.ImportCSV(c.Request().Context(), workspaceID, fileHeader.Filename, string(content))
	if importErr != nil {
		var malformed *importer.MalformedFileError
		var persistence *importer.PersistenceError
		switch {
		case errors.Is(importErr, importer.ErrEmptyInput):
			return common.SendValidationError(c, "file", "file is empty")
		case errors.Is(importErr, importer.ErrNoValidRows):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"success":   false,
				"error":     "no valid rows found",
				"totalRows": result.TotalRows,
				"rejected":  result.Rejected,
				"rowErrors": result.RowErrors,
			})
		case errors.As(importErr, &malformed):
			return common.SendClientError(c, "Malformed CSV file")
		case errors.As(importErr, &persistence):
			return common.SendServerError(c, "Failed to persist imported rows")
		default:
			return common.SendServerError(c, "Import failed")
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"totalRows": result.TotalRows,
		"inserted":  result.Inserted,
		"rejected":  result.Rejected,
		"rowErrors": result.RowErrors,
		"warnings":  result.Warnings,
	})
}
