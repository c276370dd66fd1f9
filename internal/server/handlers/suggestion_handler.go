package handlers

import (
	"net/http"

	"suggestion-board/internal/ports/models"
	"suggestion-board/internal/server/service"
	"suggestion-board/pkg/response"

	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	suggestionService *service.SuggestionService
	similarityService *service.SimilarityService
}

func NewSuggestionHandler(suggestionService *service.SuggestionService, similarityService *service.SimilarityService) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
		similarityService: similarityService,
	}
}

func listFilterFromQuery(c *gin.Context) models.ListFilter {
	return models.ListFilter{
		Status:  models.Status(c.Query("status")),
		Channel: c.Query("channel"),
		Search:  c.Query("search"),
		Sort:    c.Query("sort"),
	}
}

// @Summary List visible suggestions
// @Description List suggestions open for voting, in progress or published
// @Tags suggestions
// @Produce json
// @Param status query string false "Status filter"
// @Param channel query string false "Channel filter"
// @Param search query string false "Search in title and description"
// @Param sort query string false "Sort order: votes (default) or recent"
// @Success 200 {array} models.Suggestion
// @Failure 500 {object} map[string]string
// @Router /suggestions [get]
func (h *SuggestionHandler) ListPublic(c *gin.Context) {
	suggestions, err := h.suggestionService.ListPublic(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// @Summary Submit a suggestion
// @Description Submit a new video suggestion; it starts hidden until reviewed
// @Tags suggestions
// @Accept json
// @Produce json
// @Param request body models.CreateSuggestionRequest true "Suggestion"
// @Success 201 {object} models.Suggestion
// @Failure 400 {object} map[string]string
// @Router /suggestions [post]
func (h *SuggestionHandler) Create(c *gin.Context) {
	var req models.CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion, err := h.suggestionService.CreateSuggestion(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, suggestion)
}

// @Summary Find similar suggestions
// @Description Score visible suggestions against a candidate title; advisory only
// @Tags suggestions
// @Produce json
// @Param title query string true "Candidate title"
// @Success 200 {array} models.Suggestion
// @Failure 500 {object} map[string]string
// @Router /suggestions/similar [get]
func (h *SuggestionHandler) FindSimilar(c *gin.Context) {
	suggestions, err := h.similarityService.FindSimilar(c.Request.Context(), c.Query("title"))
	if err != nil {
		// Advisory lookup: degrade to "no known duplicates" rather
		// than blocking the submit form.
		c.JSON(http.StatusOK, []*models.Suggestion{})
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// @Summary List all suggestions
// @Description List suggestions in every state, for the admin dashboard
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {array} models.Suggestion
// @Failure 401 {object} map[string]string
// @Router /admin/suggestions [get]
func (h *SuggestionHandler) ListAll(c *gin.Context) {
	suggestions, err := h.suggestionService.ListAll(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// @Summary Transition a suggestion
// @Description Move a suggestion to a new lifecycle state; publishing requires a video_url
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Suggestion ID"
// @Param request body models.TransitionRequest true "Target status"
// @Success 200 {object} models.Suggestion
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/suggestions/{id}/status [patch]
func (h *SuggestionHandler) Transition(c *gin.Context) {
	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion, err := h.suggestionService.Transition(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

// @Summary Delete a suggestion
// @Description Delete a suggestion and all votes referencing it
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Suggestion ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/suggestions/{id} [delete]
func (h *SuggestionHandler) Delete(c *gin.Context) {
	if err := h.suggestionService.DeleteSuggestion(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
