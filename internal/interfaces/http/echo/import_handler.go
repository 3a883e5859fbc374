package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/soumyadeepdutta/tamperproof-users/internal/application/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/observability"
)

type ImportHandler struct {
	start app.StartImport
	get   app.GetImportRun
}

type startImportRequest struct {
	SourcePath string `json:"source_path"`
	BatchSize  int    `json:"batch_size"`
}

func NewImportHandler(start app.StartImport, get app.GetImportRun) *ImportHandler {
	return &ImportHandler{start: start, get: get}
}

func (h *ImportHandler) StartImport(c echo.Context) error {
	var req startImportRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request body")
	}

	out, err := h.start.Execute(c.Request().Context(), app.StartImportInput{
		SourcePath: req.SourcePath,
		BatchSize:  req.BatchSize,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidImportSource):
			return respondError(c, http.StatusBadRequest, "source_path must be a .csv or .json file")
		case errors.Is(err, app.ErrInvalidBatchSize):
			return respondError(c, http.StatusBadRequest, "batch_size must be at least 1")
		case errors.Is(err, app.ErrImportInProgress):
			return respondError(c, http.StatusConflict, "an import is already in progress")
		}
		observability.Logf(c.Request().Context(), "start import: %v", err)
		return respondError(c, http.StatusInternalServerError, "failed to start import")
	}

	return respond(c, http.StatusAccepted, out)
}

func (h *ImportHandler) GetImportRun(c echo.Context) error {
	out, err := h.get.Execute(c.Request().Context(), app.GetImportRunInput{ID: c.Param("id")})
	if err != nil {
		if errors.Is(err, app.ErrImportRunNotFound) {
			return respondError(c, http.StatusNotFound, "import run not found")
		}
		observability.Logf(c.Request().Context(), "get import run: %v", err)
		return respondError(c, http.StatusInternalServerError, "failed to get import run")
	}

	return respond(c, http.StatusOK, out)
}
