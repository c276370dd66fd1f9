// Package response maps the service error taxonomy onto HTTP status codes
// so every handler reports failures the same way.
package response

import (
	"errors"
	"net/http"

	"suggestion-board/internal/ports/models"

	"github.com/gin-gonic/gin"
)

// StatusFor returns the HTTP status code for a service error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrMissingField):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrAuthorization):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateVote),
		errors.Is(err, models.ErrInvalidState),
		errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, models.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Error writes the error as JSON with the taxonomy-mapped status code.
func Error(c *gin.Context, err error) {
	c.JSON(StatusFor(err), gin.H{"error": err.Error()})
}
