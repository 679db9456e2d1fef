package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/repository"
)

const exportMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the raw ledger workbook for download.
type ExportHandler struct {
	Store    *repository.Ledger
	Filename string // download name, e.g. "cache2k25_registrations.xlsx"
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(store *repository.Ledger, filename string) *ExportHandler {
	if store == nil {
		panic("nil ledger passed to NewExportHandler")
	}
	if filename == "" {
		filename = "registrations.xlsx"
	}
	return &ExportHandler{Store: store, Filename: filename}
}

// Export handles GET /export (admin).  The bytes are read under the
// store's lock so a concurrent append can never hand out a torn file.
// 404 means nobody has registered yet.
func (h *ExportHandler) Export(c echo.Context) error {
	b, err := h.Store.Export(c.Request().Context())
	if err != nil {
		if errors.Is(err, repository.ErrLedgerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No registrations found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to export file"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+h.Filename+`"`)
	return c.Blob(http.StatusOK, exportMIME, b)
}
