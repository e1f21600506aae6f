package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mutaaf/ramadan-guide-sub002/internal/service"
	"github.com/mutaaf/ramadan-guide-sub002/internal/validation"
	"github.com/rs/zerolog"
)

// RegenerateHandler handles single-section regeneration
type RegenerateHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewRegenerateHandler creates a new RegenerateHandler
func NewRegenerateHandler(services *service.Services, log zerolog.Logger) *RegenerateHandler {
	return &RegenerateHandler{
		services: services,
		log:      log.With().Str("handler", "regenerate").Logger(),
	}
}

// RegenerateSection handles POST /v1/companions/regenerate-section
// Returns the companion with exactly one section replaced; every other
// section is the caller's original value.
func (h *RegenerateHandler) RegenerateSection(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	section, value, err := h.services.Regenerate.Regenerate(ctx, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	updated := *req.ExistingCompanion
	updated.ApplySection(section, value)

	h.log.Info().Str("section", string(section)).Msg("Section regenerated")

	c.JSON(http.StatusOK, gin.H{
		"section":     section,
		"sectionData": value,
		"companion":   &updated,
	})
}
