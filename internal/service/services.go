package service

import (
	"context"

	"github.com/mutaaf/ramadan-guide-sub002/internal/ai"
	"github.com/mutaaf/ramadan-guide-sub002/internal/config"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/prompts"
	"github.com/mutaaf/ramadan-guide-sub002/internal/repository"
	"github.com/mutaaf/ramadan-guide-sub002/internal/status"
	"github.com/mutaaf/ramadan-guide-sub002/internal/storage"
	"github.com/mutaaf/ramadan-guide-sub002/internal/validation"
	"github.com/rs/zerolog"
)

// GenerationService drives the multi-stage companion generation pipeline for
// one episode: transcription, Phase-1 extraction, Phase-2 polish and
// cross-episode linking.
type GenerationService interface {
	Generate(ctx context.Context, episodeID string) (*models.Companion, error)
	Retry(ctx context.Context, episodeID string) (*models.Companion, error)
	GetStatus(ctx context.Context, episodeID string) (*models.GenerationRun, error)
}

// RegenerateService re-runs generation for exactly one named section of an
// existing companion document
type RegenerateService interface {
	Regenerate(ctx context.Context, req *validation.RegenerateRequest) (models.Section, interface{}, error)
}

// PublishService writes the series index and per-series bundles to durable
// storage with a best-effort local mirror
type PublishService interface {
	Publish(ctx context.Context, index *models.SeriesIndex, seriesData map[string]*models.SeriesEpisodeData) (*PublishResult, error)
}

// EpisodeContextData bundles an episode with the series and scholar names
// the generation prompts describe it by
type EpisodeContextData struct {
	Episode     *models.Episode
	SeriesTitle string
	ScholarName string
}

// CatalogService assembles and maintains the scholar/series/episode catalog
type CatalogService interface {
	GetIndex(ctx context.Context) (*models.SeriesIndex, error)
	GetSeriesData(ctx context.Context, seriesID string) (*models.SeriesEpisodeData, error)
	GetEpisodeContext(ctx context.Context, episodeID string) (*EpisodeContextData, error)
	GetSiblingDigests(ctx context.Context, episodeID string) ([]prompts.EpisodeDigest, error)
	CreateScholar(ctx context.Context, scholar *models.Scholar) error
	CreateSeries(ctx context.Context, series *models.Series) error
	CreateEpisode(ctx context.Context, episode *models.Episode) error
	SaveCompanion(ctx context.Context, episodeID string, companion *models.Companion) error
}

// Services holds all service interfaces
type Services struct {
	Generation GenerationService
	Regenerate RegenerateService
	Publish    PublishService
	Catalog    CatalogService
}

// Deps carries the external collaborators the services are built from
type Deps struct {
	Completion    ai.CompletionClient
	Transcription ai.TranscriptionClient
	Blob          storage.BlobStore
	Mirror        *storage.Mirror
	Status        status.Store
	Repos         *repository.Repositories
}

// NewServices creates all services
func NewServices(deps Deps, cfg *config.Config, log zerolog.Logger) *Services {
	catalogSvc := newCatalogService(deps.Repos, log)

	return &Services{
		Generation: newGenerationService(deps, catalogSvc, cfg, log),
		Regenerate: newRegenerateService(deps.Completion, cfg, log),
		Publish:    newPublishService(deps.Blob, deps.Mirror, cfg, log),
		Catalog:    catalogSvc,
	}
}
