package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/service"
	"github.com/rs/zerolog"
)

// PublishHandler handles publishing the content snapshot to durable storage
type PublishHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPublishHandler creates a new PublishHandler
func NewPublishHandler(services *service.Services, log zerolog.Logger) *PublishHandler {
	return &PublishHandler{
		services: services,
		log:      log.With().Str("handler", "publish").Logger(),
	}
}

// publishRequest is the full content snapshot the admin UI sends
type publishRequest struct {
	Index      *models.SeriesIndex                  `json:"index"`
	SeriesData map[string]*models.SeriesEpisodeData `json:"seriesData"`
}

// Publish handles POST /v1/publish
func (h *PublishHandler) Publish(c *gin.Context) {
	ctx := c.Request.Context()

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.services.Publish.Publish(ctx, req.Index, req.SeriesData)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"publishedAt": result.PublishedAt,
		"files":       result.Files,
	})
}
