package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalize/club-api/internal/service"
	appErrors "github.com/vitalize/club-api/pkg/errors"
	"github.com/vitalize/club-api/pkg/response"
)

// EnrolmentHandler exposes enrolment endpoints.
type EnrolmentHandler struct {
	enrolments *service.EnrolmentService
	dashboard  *service.DashboardService
}

// NewEnrolmentHandler constructs EnrolmentHandler.
func NewEnrolmentHandler(enrolments *service.EnrolmentService, dashboard *service.DashboardService) *EnrolmentHandler {
	return &EnrolmentHandler{enrolments: enrolments, dashboard: dashboard}
}

// List godoc
// @Summary List enrolments
// @Tags Enrolments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrolments [get]
func (h *EnrolmentHandler) List(c *gin.Context) {
	enrolments, err := h.enrolments.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrolments, "")
}

// Create godoc
// @Summary Enrol a gymnast in a program
// @Tags Enrolments
// @Accept json
// @Produce json
// @Param payload body service.EnrolRequest true "Enrolment payload"
// @Success 201 {object} response.Envelope
// @Router /enrolments [post]
func (h *EnrolmentHandler) Create(c *gin.Context) {
	var req service.EnrolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.enrolments.Enrol(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Created(c, result, "Enrolment successful. "+result.Notification)
}

// Delete godoc
// @Summary Delete an enrolment
// @Tags Enrolments
// @Produce json
// @Param id path string true "Enrolment ID"
// @Success 200 {object} response.Envelope
// @Router /enrolments/{id} [delete]
func (h *EnrolmentHandler) Delete(c *gin.Context) {
	if err := h.enrolments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, nil, "Enrolment deleted successfully")
}

// Progress godoc
// @Summary Get completion percentage for an enrolment
// @Tags Enrolments
// @Produce json
// @Param id path string true "Enrolment ID"
// @Success 200 {object} response.Envelope
// @Router /enrolments/{id}/progress [get]
func (h *EnrolmentHandler) Progress(c *gin.Context) {
	progress, err := h.enrolments.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress, "")
}
