package repository

import (
	"context"

	"github.com/mutaaf/ramadan-guide-sub002/internal/database"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

// ScholarRepository defines the interface for scholar data operations
type ScholarRepository interface {
	Create(ctx context.Context, scholar *models.Scholar) error
	Update(ctx context.Context, scholar *models.Scholar) error
	GetByID(ctx context.Context, id string) (*models.Scholar, error)
	GetAll(ctx context.Context) ([]models.Scholar, error)
}

// SeriesRepository defines the interface for series data operations
type SeriesRepository interface {
	Create(ctx context.Context, series *models.Series) error
	Update(ctx context.Context, series *models.Series) error
	GetByID(ctx context.Context, id string) (*models.Series, error)
	GetAll(ctx context.Context) ([]models.Series, error)
}

// EpisodeRepository defines the interface for episode data operations
type EpisodeRepository interface {
	Create(ctx context.Context, episode *models.Episode) error
	GetByID(ctx context.Context, id string) (*models.Episode, error)
	GetBySeries(ctx context.Context, seriesID string) ([]models.Episode, error)
}

// CompanionRepository defines the interface for companion document storage
type CompanionRepository interface {
	Upsert(ctx context.Context, episodeID string, companion *models.Companion) error
	GetByEpisode(ctx context.Context, episodeID string) (*models.Companion, error)
	GetBySeries(ctx context.Context, seriesID string) (map[string]*models.Companion, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Scholar   ScholarRepository
	Series    SeriesRepository
	Episode   EpisodeRepository
	Companion CompanionRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Scholar:   NewScholarRepo(db),
		Series:    NewSeriesRepo(db),
		Episode:   NewEpisodeRepo(db),
		Companion: NewCompanionRepo(db),
	}
}
