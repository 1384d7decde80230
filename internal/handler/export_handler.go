package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalize/club-api/internal/service"
	"github.com/vitalize/club-api/pkg/response"
)

// ExportHandler streams roster and progress exports.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Roster godoc
// @Summary Export a program roster
// @Tags Exports
// @Produce octet-stream
// @Param id path string true "Program ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /programs/{id}/roster/export [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	file, err := h.exports.Roster(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.stream(c, file)
}

// ProgressReport godoc
// @Summary Export all progress records
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /progress/export [get]
func (h *ExportHandler) ProgressReport(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	file, err := h.exports.ProgressReport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.stream(c, file)
}

func (h *ExportHandler) stream(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
