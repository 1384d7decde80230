package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalize/club-api/internal/service"
	appErrors "github.com/vitalize/club-api/pkg/errors"
	"github.com/vitalize/club-api/pkg/response"
)

// ProgressHandler exposes progress scoring endpoints.
type ProgressHandler struct {
	progress  *service.ProgressService
	dashboard *service.DashboardService
}

// NewProgressHandler constructs ProgressHandler.
func NewProgressHandler(progress *service.ProgressService, dashboard *service.DashboardService) *ProgressHandler {
	return &ProgressHandler{progress: progress, dashboard: dashboard}
}

// Record godoc
// @Summary Record a progress score for a session
// @Tags Progress
// @Accept json
// @Produce json
// @Param payload body service.RecordProgressRequest true "Progress payload"
// @Success 201 {object} response.Envelope
// @Router /progress [post]
func (h *ProgressHandler) Record(c *gin.Context) {
	var req service.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.progress.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Created(c, record, "Progress recorded successfully")
}

// List godoc
// @Summary List all progress records
// @Tags Progress
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /progress [get]
func (h *ProgressHandler) List(c *gin.Context) {
	records, err := h.progress.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, "")
}

// History godoc
// @Summary List progress records for an enrolment
// @Tags Progress
// @Produce json
// @Param id path string true "Enrolment ID"
// @Success 200 {object} response.Envelope
// @Router /enrolments/{id}/progress-records [get]
func (h *ProgressHandler) History(c *gin.Context) {
	records, err := h.progress.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, "")
}
