package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mutaaf/ramadan-guide-sub002/internal/config"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/storage"
	"github.com/mutaaf/ramadan-guide-sub002/internal/validation"
	"github.com/rs/zerolog"
)

const jsonContentType = "application/json"

// PublishedFile records one object written to the durable store
type PublishedFile struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// PublishResult is what a successful publish reports back. Files lists
// durable-store writes only; the local mirror is best-effort and not part of
// the contract.
type PublishResult struct {
	PublishedAt time.Time       `json:"publishedAt"`
	Files       []PublishedFile `json:"files"`
}

// publishService writes the series index and per-series bundles to the blob
// store under stable keys, so each publish overwrites the previous snapshot
type publishService struct {
	blob   storage.BlobStore
	mirror *storage.Mirror
	cfg    *config.Config
	log    zerolog.Logger
}

// newPublishService creates the publish service
func newPublishService(blob storage.BlobStore, mirror *storage.Mirror, cfg *config.Config, log zerolog.Logger) *publishService {
	return &publishService{
		blob:   blob,
		mirror: mirror,
		cfg:    cfg,
		log:    log.With().Str("service", "publish").Logger(),
	}
}

// Publish validates and uploads the full content snapshot. Any blob write
// failure aborts the publish; mirror failures are logged and swallowed.
func (s *publishService) Publish(ctx context.Context, index *models.SeriesIndex, seriesData map[string]*models.SeriesEpisodeData) (*PublishResult, error) {
	if errs := validation.ValidatePublishRequest(index, seriesData); len(errs) > 0 {
		return nil, errs[0]
	}

	result := &PublishResult{
		PublishedAt: time.Now().UTC(),
		Files:       make([]PublishedFile, 0, len(seriesData)+1),
	}

	indexFile, err := s.putJSON(ctx, s.cfg.Publish.IndexKey, index)
	if err != nil {
		return nil, fmt.Errorf("failed to publish series index: %w", err)
	}
	result.Files = append(result.Files, indexFile)

	for seriesID, data := range seriesData {
		key := fmt.Sprintf("%s/episodes.json", seriesID)
		file, err := s.putJSON(ctx, key, data)
		if err != nil {
			return nil, fmt.Errorf("failed to publish series %s: %w", seriesID, err)
		}
		result.Files = append(result.Files, file)
	}

	s.log.Info().
		Int("files", len(result.Files)).
		Int("series", len(seriesData)).
		Msg("Publish complete")

	return result, nil
}

// putJSON encodes the payload, writes it to the blob store and mirrors it
// locally
func (s *publishService) putJSON(ctx context.Context, key string, payload interface{}) (PublishedFile, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return PublishedFile{}, fmt.Errorf("failed to encode %s: %w", key, err)
	}

	url, err := s.blob.Put(ctx, key, data, jsonContentType)
	if err != nil {
		return PublishedFile{}, err
	}

	if s.mirror != nil {
		if _, err := s.mirror.Write(key, data); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Local mirror write failed, continuing")
		}
	}

	return PublishedFile{Path: key, URL: url}, nil
}
