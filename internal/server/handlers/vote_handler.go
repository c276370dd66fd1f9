package handlers

import (
	"net/http"

	"suggestion-board/internal/ports/models"
	"suggestion-board/internal/server/service"
	"suggestion-board/pkg/response"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService *service.VoteService
}

func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// @Summary Cast a vote
// @Description Vote for a suggestion that is open for voting; one vote per email
// @Tags votes
// @Accept json
// @Produce json
// @Param id path string true "Suggestion ID"
// @Param request body models.CastVoteRequest true "Voter"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /suggestions/{id}/votes [post]
func (h *VoteHandler) CastVote(c *gin.Context) {
	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.voteService.CastVote(c.Request.Context(), c.Param("id"), req.VoterEmail); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "vote recorded"})
}

// @Summary Check a vote
// @Description Report whether a voter already voted for a suggestion
// @Tags votes
// @Produce json
// @Param id path string true "Suggestion ID"
// @Param voter_email query string true "Voter email"
// @Success 200 {object} map[string]bool
// @Failure 500 {object} map[string]string
// @Router /suggestions/{id}/votes [get]
func (h *VoteHandler) HasVoted(c *gin.Context) {
	voted, err := h.voteService.HasVoted(c.Request.Context(), c.Param("id"), c.Query("voter_email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"voted": voted})
}
