package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/service"
	"github.com/rs/zerolog"
)

// CatalogHandler handles the scholar/series/episode catalog endpoints
type CatalogHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(services *service.Services, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		services: services,
		log:      log.With().Str("handler", "catalog").Logger(),
	}
}

// GetIndex handles GET /v1/catalog/index
func (h *CatalogHandler) GetIndex(c *gin.Context) {
	ctx := c.Request.Context()

	index, err := h.services.Catalog.GetIndex(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, index)
}

// GetSeriesData handles GET /v1/catalog/series/:series_id
func (h *CatalogHandler) GetSeriesData(c *gin.Context) {
	ctx := c.Request.Context()
	seriesID := c.Param("series_id")

	data, err := h.services.Catalog.GetSeriesData(ctx, seriesID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// CreateScholar handles POST /v1/scholars
func (h *CatalogHandler) CreateScholar(c *gin.Context) {
	ctx := c.Request.Context()

	var scholar models.Scholar
	if err := c.ShouldBindJSON(&scholar); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if scholar.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := h.services.Catalog.CreateScholar(ctx, &scholar); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, scholar)
}

// CreateSeries handles POST /v1/series
func (h *CatalogHandler) CreateSeries(c *gin.Context) {
	ctx := c.Request.Context()

	var series models.Series
	if err := c.ShouldBindJSON(&series); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if series.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if series.ScholarID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scholarId is required"})
		return
	}

	if err := h.services.Catalog.CreateSeries(ctx, &series); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, series)
}

// CreateEpisode handles POST /v1/series/:series_id/episodes
func (h *CatalogHandler) CreateEpisode(c *gin.Context) {
	ctx := c.Request.Context()

	var episode models.Episode
	if err := c.ShouldBindJSON(&episode); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	episode.SeriesID = c.Param("series_id")
	if episode.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if episode.Number <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be positive"})
		return
	}

	if err := h.services.Catalog.CreateEpisode(ctx, &episode); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, episode)
}
