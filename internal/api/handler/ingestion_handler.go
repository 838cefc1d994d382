package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docstream/document-platform/internal/api/metrics"
	"github.com/docstream/document-platform/internal/core/domain"
	"github.com/docstream/document-platform/internal/core/ports"
)

// IngestionHandler handles HTTP requests for the ingestion lifecycle.
type IngestionHandler struct {
	service ports.IngestionService
}

func NewIngestionHandler(service ports.IngestionService) *IngestionHandler {
	return &IngestionHandler{service: service}
}

// List returns all ingestion requests joined with document identity.
//
// @Summary      List ingestion requests
// @Tags         ingestion
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.IngestionDetail
// @Router       /api/ingestion [get]
func (h *IngestionHandler) List(c echo.Context) error {
	details, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// Trigger creates an ingestion request for a document. Invalid or missing
// document ids are the caller's fault and surface as 400 with the
// descriptive message from the service.
//
// @Summary      Trigger ingestion of a document
// @Tags         ingestion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  triggerIngestionRequest  true  "Document to ingest"
// @Success      201  {object}  domain.IngestionRequest
// @Failure      400  {object}  errorResponse
// @Router       /api/ingestion [post]
func (h *IngestionHandler) Trigger(c echo.Context) error {
	var req triggerIngestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Trigger(c.Request().Context(), req.DocumentID)
	if err != nil {
		return err
	}

	metrics.IngestionsTriggeredTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// UpdateStatus overwrites an ingestion request's status.
//
// @Summary      Update ingestion status
// @Tags         ingestion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                           true  "Ingestion request id"
// @Param        body  body  updateIngestionStatusRequest  true  "New status"
// @Success      200  {object}  domain.IngestionRequest
// @Failure      404  {object}  errorResponse
// @Router       /api/ingestion/{id} [patch]
func (h *IngestionHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateIngestionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), id, domain.IngestionStatus(req.Status))
	if err != nil {
		return err
	}
	if updated == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "ingestion request not found"})
	}

	metrics.IngestionStatusUpdatesTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, updated)
}
