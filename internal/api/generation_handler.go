package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mutaaf/ramadan-guide-sub002/internal/service"
	"github.com/rs/zerolog"
)

// GenerationHandler handles the episode generation pipeline endpoints
type GenerationHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(services *service.Services, log zerolog.Logger) *GenerationHandler {
	return &GenerationHandler{
		services: services,
		log:      log.With().Str("handler", "generation").Logger(),
	}
}

// Generate handles POST /v1/episodes/:episode_id/generate
// The pipeline runs inside the request; progress is visible on the status
// endpoint while it runs.
func (h *GenerationHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	episodeID := c.Param("episode_id")
	if episodeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "episode_id is required"})
		return
	}

	h.log.Info().Str("episode_id", episodeID).Msg("Generation requested")

	companion, err := h.services.Generation.Generate(ctx, episodeID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"episodeId": episodeID,
		"companion": companion,
	})
}

// GetStatus handles GET /v1/episodes/:episode_id/generation
func (h *GenerationHandler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	episodeID := c.Param("episode_id")

	run, err := h.services.Generation.GetStatus(ctx, episodeID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no generation run for episode"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// Retry handles POST /v1/episodes/:episode_id/generation/retry
// Resumes a failed run from the stage that failed.
func (h *GenerationHandler) Retry(c *gin.Context) {
	ctx := c.Request.Context()
	episodeID := c.Param("episode_id")

	companion, err := h.services.Generation.Retry(ctx, episodeID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"episodeId": episodeID,
		"companion": companion,
	})
}
