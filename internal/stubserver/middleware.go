package stubserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const usernameKey = "username"

// authMiddleware resolves the raw token in the authorization header
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		username, err := s.store.authenticate(token)
		if err != nil {
			s.respondWithError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		c.Set(usernameKey, username)
		c.Next()
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

// respondWithError writes the server's error envelope
func (s *Server) respondWithError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	c.JSON(status, gin.H{"message": "Error: " + err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAlreadyTaken):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
