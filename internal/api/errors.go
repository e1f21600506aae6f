package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mutaaf/ramadan-guide-sub002/internal/ai"
	"github.com/mutaaf/ramadan-guide-sub002/internal/auth"
	"github.com/mutaaf/ramadan-guide-sub002/internal/service"
	"github.com/mutaaf/ramadan-guide-sub002/internal/storage"
	"github.com/mutaaf/ramadan-guide-sub002/internal/validation"
	"github.com/rs/zerolog"
)

// respondError maps service errors onto HTTP statuses:
//   - validation errors are the caller's fault (400)
//   - a rejected credential is 401; a missing server-side secret is 500
//   - missing provider or store credentials are deployment problems (500)
//   - provider failures pass the provider's status through
//   - anything else is a plain 500
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var validationErr validation.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	if errors.Is(err, auth.ErrInvalidToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	if errors.Is(err, auth.ErrNotConfigured) {
		log.Error().Msg("Admin secret is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server configuration error"})
		return
	}
	if errors.Is(err, ai.ErrMissingAPIKey) || errors.Is(err, storage.ErrMissingBlobToken) {
		log.Error().Err(err).Msg("Missing provider credential")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server configuration error"})
		return
	}

	var upstreamErr *ai.UpstreamError
	if errors.As(err, &upstreamErr) {
		log.Error().Int("provider_status", upstreamErr.StatusCode).Str("provider_message", upstreamErr.Message).Msg("Provider request failed")
		c.JSON(upstreamErr.StatusCode, gin.H{"error": upstreamErr.Message})
		return
	}

	var parseErr *service.ParseError
	if errors.As(err, &parseErr) {
		log.Error().Err(err).Msg("Provider response unusable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": parseErr.Error()})
		return
	}

	log.Error().Err(err).Msg("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
