package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/prompts"
	"github.com/mutaaf/ramadan-guide-sub002/internal/repository"
	"github.com/mutaaf/ramadan-guide-sub002/internal/validation"
	"github.com/rs/zerolog"
)

// catalogService assembles the published documents from the relational
// catalog and handles admin catalog edits
type catalogService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newCatalogService creates the catalog service
func newCatalogService(repos *repository.Repositories, log zerolog.Logger) *catalogService {
	return &catalogService{
		repos: repos,
		log:   log.With().Str("service", "catalog").Logger(),
	}
}

// GetIndex assembles the series index from all series and scholars
func (s *catalogService) GetIndex(ctx context.Context) (*models.SeriesIndex, error) {
	series, err := s.repos.Series.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}
	scholars, err := s.repos.Scholar.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scholars: %w", err)
	}
	return &models.SeriesIndex{Series: series, Scholars: scholars}, nil
}

// GetSeriesData assembles the per-series bundle: ordered episodes plus every
// companion that exists for them
func (s *catalogService) GetSeriesData(ctx context.Context, seriesID string) (*models.SeriesEpisodeData, error) {
	series, err := s.repos.Series.GetByID(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, validation.ValidationError{Field: "seriesId", Message: "series not found", Value: seriesID}
	}

	episodes, err := s.repos.Episode.GetBySeries(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to load episodes: %w", err)
	}
	companions, err := s.repos.Companion.GetBySeries(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to load companions: %w", err)
	}

	return &models.SeriesEpisodeData{Episodes: episodes, Companions: companions}, nil
}

// GetEpisodeContext resolves an episode together with its series title and
// scholar name
func (s *catalogService) GetEpisodeContext(ctx context.Context, episodeID string) (*EpisodeContextData, error) {
	episode, err := s.repos.Episode.GetByID(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if episode == nil {
		return nil, validation.ValidationError{Field: "episodeId", Message: "episode not found", Value: episodeID}
	}

	series, err := s.repos.Series.GetByID(ctx, episode.SeriesID)
	if err != nil {
		return nil, err
	}

	epCtx := &EpisodeContextData{Episode: episode}
	if series != nil {
		epCtx.SeriesTitle = series.Title
		scholar, err := s.repos.Scholar.GetByID(ctx, series.ScholarID)
		if err != nil {
			return nil, err
		}
		if scholar != nil {
			epCtx.ScholarName = scholar.Name
		}
	}
	return epCtx, nil
}

// GetSiblingDigests returns linking digests for the other episodes of the
// same series that already have a companion. Episodes without a companion
// have nothing to link against.
func (s *catalogService) GetSiblingDigests(ctx context.Context, episodeID string) ([]prompts.EpisodeDigest, error) {
	episode, err := s.repos.Episode.GetByID(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if episode == nil {
		return nil, validation.ValidationError{Field: "episodeId", Message: "episode not found", Value: episodeID}
	}

	siblings, err := s.repos.Episode.GetBySeries(ctx, episode.SeriesID)
	if err != nil {
		return nil, err
	}
	companions, err := s.repos.Companion.GetBySeries(ctx, episode.SeriesID)
	if err != nil {
		return nil, err
	}

	digests := make([]prompts.EpisodeDigest, 0, len(siblings))
	for _, sib := range siblings {
		if sib.ID == episodeID {
			continue
		}
		companion, ok := companions[sib.ID]
		if !ok || companion == nil {
			continue
		}
		digests = append(digests, prompts.EpisodeDigest{
			ID:      sib.ID,
			Title:   sib.Title,
			Themes:  companion.Themes,
			Summary: companion.Summary,
		})
	}
	return digests, nil
}

// CreateScholar stores a new scholar, assigning an id when none is given
func (s *catalogService) CreateScholar(ctx context.Context, scholar *models.Scholar) error {
	if scholar.ID == "" {
		scholar.ID = uuid.New().String()
	}
	now := time.Now()
	scholar.CreatedAt = now
	scholar.UpdatedAt = now

	if err := s.repos.Scholar.Create(ctx, scholar); err != nil {
		return fmt.Errorf("failed to create scholar: %w", err)
	}
	s.log.Info().Str("scholar_id", scholar.ID).Str("name", scholar.Name).Msg("Scholar created")
	return nil
}

// CreateSeries stores a new series in draft status unless one is given
func (s *catalogService) CreateSeries(ctx context.Context, series *models.Series) error {
	if series.ID == "" {
		series.ID = uuid.New().String()
	}
	if series.Status == "" {
		series.Status = models.SeriesStatusDraft
	}
	if !models.ValidSeriesStatuses[series.Status] {
		return validation.ValidationError{Field: "status", Message: "invalid series status", Value: string(series.Status)}
	}

	scholar, err := s.repos.Scholar.GetByID(ctx, series.ScholarID)
	if err != nil {
		return err
	}
	if scholar == nil {
		return validation.ValidationError{Field: "scholarId", Message: "scholar not found", Value: series.ScholarID}
	}

	now := time.Now()
	series.CreatedAt = now
	series.UpdatedAt = now

	if err := s.repos.Series.Create(ctx, series); err != nil {
		return fmt.Errorf("failed to create series: %w", err)
	}
	s.log.Info().Str("series_id", series.ID).Str("title", series.Title).Msg("Series created")
	return nil
}

// CreateEpisode stores a new episode under its series
func (s *catalogService) CreateEpisode(ctx context.Context, episode *models.Episode) error {
	if episode.ID == "" {
		episode.ID = uuid.New().String()
	}

	series, err := s.repos.Series.GetByID(ctx, episode.SeriesID)
	if err != nil {
		return err
	}
	if series == nil {
		return validation.ValidationError{Field: "seriesId", Message: "series not found", Value: episode.SeriesID}
	}

	if err := s.repos.Episode.Create(ctx, episode); err != nil {
		return fmt.Errorf("failed to create episode: %w", err)
	}
	s.log.Info().
		Str("episode_id", episode.ID).
		Str("series_id", episode.SeriesID).
		Int("number", episode.Number).
		Msg("Episode created")
	return nil
}

// SaveCompanion stores the generated companion for an episode
func (s *catalogService) SaveCompanion(ctx context.Context, episodeID string, companion *models.Companion) error {
	if err := s.repos.Companion.Upsert(ctx, episodeID, companion); err != nil {
		return fmt.Errorf("failed to save companion: %w", err)
	}
	return nil
}
