package handlers

import (
	"net/http"

	"suggestion-board/internal/server/service"
	"suggestion-board/pkg/response"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	importService *service.ImportService
}

func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportRequest defines the input for a bulk import run
type ImportRequest struct {
	Channel    string `json:"channel" binding:"required"`
	MaxResults int    `json:"max_results"`
}

// @Summary Bulk import channel uploads
// @Description Import a channel's uploads as published suggestions, skipping videos already referenced
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Import Request"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /admin/import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.importService.ImportChannel(c.Request.Context(), req.Channel, req.MaxResults)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
