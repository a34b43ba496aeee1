package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
)

// ErrorHandler translates errors attached by handlers into the wire error
// shape. Handlers call c.Error(err) and return; the status comes from the
// error's code.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("request error")
		}

		lastErr := c.Errors.Last().Err

		status := http.StatusInternalServerError
		message := lastErr.Error()
		if appErr, ok := apperrors.AsAppError(lastErr); ok {
			status = appErr.HTTPStatus()
			message = appErr.Message
		}

		c.JSON(status, gin.H{"error": message})
	}
}
