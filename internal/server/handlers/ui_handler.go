package handlers

import (
	"net/http"
	"time"

	"suggestion-board/internal/ports/models"
	"suggestion-board/pkg/reveal"

	"github.com/gin-gonic/gin"
)

// UIHandler serves cosmetic frontend affordances: status display
// descriptors and the hidden admin-link reveal counter. Nothing here is an
// authorization boundary.
type UIHandler struct {
	revealTracker *reveal.Tracker
}

func NewUIHandler(revealTracker *reveal.Tracker) *UIHandler {
	return &UIHandler{revealTracker: revealTracker}
}

// @Summary Status descriptors
// @Description Display label and badge for every lifecycle state
// @Tags ui
// @Produce json
// @Success 200 {object} map[string]models.StatusDescriptor
// @Router /ui/statuses [get]
func (h *UIHandler) Statuses(c *gin.Context) {
	descriptors := make(map[models.Status]models.StatusDescriptor, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		descriptors[status] = status.Descriptor()
	}
	c.JSON(http.StatusOK, descriptors)
}

// @Summary Record a reveal click
// @Description Count a logo click toward revealing the admin link
// @Tags ui
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /ui/reveal [post]
func (h *UIHandler) RevealClick(c *gin.Context) {
	revealed := h.revealTracker.Click(c.ClientIP(), time.Now())
	c.JSON(http.StatusOK, gin.H{"admin_link_visible": revealed})
}
