package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mutaaf/ramadan-guide-sub002/internal/auth"
	"github.com/rs/zerolog"
)

// AuthHandler handles admin credential verification
type AuthHandler struct {
	verifier *auth.TokenVerifier
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(verifier *auth.TokenVerifier, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// VerifyToken handles POST /v1/auth/verify-token
// The admin UI calls this at login to check a credential before storing it.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.verifier.Verify(req.Token); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}
