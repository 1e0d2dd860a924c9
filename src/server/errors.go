package server

import (
	"net/http"

	"game-data-server/src/helpers"
	"game-data-server/src/models"

	"github.com/gin-gonic/gin"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind helpers.ErrorKind) int {
	switch kind {
	case helpers.KindSourceUnavailable, helpers.KindNotReady, helpers.KindNotLoggedIn:
		return http.StatusServiceUnavailable
	case helpers.KindSourceTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// -----------------------------------------------------------------------------

// writeError aborts the request with the structured error body. Transient
// states of the game client are expected while it loads and are logged at
// debug level only.
func (s *GameDataServer) writeError(c *gin.Context, err error) {
	kind := helpers.KindOf(err)
	status := StatusFor(kind)

	switch status {
	case http.StatusServiceUnavailable:
		s.Logger.Debug("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	case http.StatusGatewayTimeout:
		s.Logger.Warning("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	default:
		s.Logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.AbortWithStatusJSON(status, models.MErrorResponse{
		Error: models.MErrorDetail{Code: string(kind), Message: err.Error()},
	})
}
