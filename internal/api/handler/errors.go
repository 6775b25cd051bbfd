package handler

import (
	"errors"
	"net/http"
	"strconv"

	"moviehub/internal/api/models"
	"moviehub/internal/api/service"
	"moviehub/internal/logging"

	"github.com/gin-gonic/gin"
)

const (
	defaultTimeout = 5
	listTimeout    = 10
)

// isValidationError covers every error caused by the request content itself.
func isValidationError(err error) bool {
	return errors.Is(err, models.ErrInvalidMovie) ||
		errors.Is(err, models.ErrInvalidActor) ||
		errors.Is(err, models.ErrInvalidRating) ||
		errors.Is(err, service.ErrRatingNotOwned)
}

// internalError logs the cause and hides it from the client.
func internalError(c *gin.Context, err error) {
	logging.Ctx(c.Request.Context()).Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// protect prepends the given middlewares to h.
func protect(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(mw)+1)
	chain = append(chain, mw...)
	return append(chain, h)
}
