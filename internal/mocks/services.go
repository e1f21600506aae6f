package mocks

import (
	"context"

	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/prompts"
	"github.com/mutaaf/ramadan-guide-sub002/internal/service"
	"github.com/mutaaf/ramadan-guide-sub002/internal/validation"
)

// MockGenerationService is a mock implementation of GenerationService
type MockGenerationService struct {
	GenerateFunc  func(ctx context.Context, episodeID string) (*models.Companion, error)
	RetryFunc     func(ctx context.Context, episodeID string) (*models.Companion, error)
	GetStatusFunc func(ctx context.Context, episodeID string) (*models.GenerationRun, error)
	GenerateCalls []string
}

var _ service.GenerationService = (*MockGenerationService)(nil)

func NewMockGenerationService() *MockGenerationService {
	return &MockGenerationService{GenerateCalls: make([]string, 0)}
}

func (m *MockGenerationService) Generate(ctx context.Context, episodeID string) (*models.Companion, error) {
	m.GenerateCalls = append(m.GenerateCalls, episodeID)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, episodeID)
	}
	return &models.Companion{}, nil
}

func (m *MockGenerationService) Retry(ctx context.Context, episodeID string) (*models.Companion, error) {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, episodeID)
	}
	return &models.Companion{}, nil
}

func (m *MockGenerationService) GetStatus(ctx context.Context, episodeID string) (*models.GenerationRun, error) {
	if m.GetStatusFunc != nil {
		return m.GetStatusFunc(ctx, episodeID)
	}
	return nil, nil
}

// MockRegenerateService is a mock implementation of RegenerateService
type MockRegenerateService struct {
	RegenerateFunc func(ctx context.Context, req *validation.RegenerateRequest) (models.Section, interface{}, error)
	Requests       []*validation.RegenerateRequest
}

var _ service.RegenerateService = (*MockRegenerateService)(nil)

func NewMockRegenerateService() *MockRegenerateService {
	return &MockRegenerateService{Requests: make([]*validation.RegenerateRequest, 0)}
}

func (m *MockRegenerateService) Regenerate(ctx context.Context, req *validation.RegenerateRequest) (models.Section, interface{}, error) {
	m.Requests = append(m.Requests, req)
	if m.RegenerateFunc != nil {
		return m.RegenerateFunc(ctx, req)
	}
	return models.SectionSummary, "", nil
}

// MockPublishService is a mock implementation of PublishService
type MockPublishService struct {
	PublishFunc func(ctx context.Context, index *models.SeriesIndex, seriesData map[string]*models.SeriesEpisodeData) (*service.PublishResult, error)
	Calls       int
}

var _ service.PublishService = (*MockPublishService)(nil)

func NewMockPublishService() *MockPublishService {
	return &MockPublishService{}
}

func (m *MockPublishService) Publish(ctx context.Context, index *models.SeriesIndex, seriesData map[string]*models.SeriesEpisodeData) (*service.PublishResult, error) {
	m.Calls++
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, index, seriesData)
	}
	return &service.PublishResult{}, nil
}

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	GetIndexFunc          func(ctx context.Context) (*models.SeriesIndex, error)
	GetSeriesDataFunc     func(ctx context.Context, seriesID string) (*models.SeriesEpisodeData, error)
	GetEpisodeContextFunc func(ctx context.Context, episodeID string) (*service.EpisodeContextData, error)
	GetSiblingDigestsFunc func(ctx context.Context, episodeID string) ([]prompts.EpisodeDigest, error)
	SavedCompanions       map[string]*models.Companion
}

var _ service.CatalogService = (*MockCatalogService)(nil)

func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{SavedCompanions: make(map[string]*models.Companion)}
}

func (m *MockCatalogService) GetIndex(ctx context.Context) (*models.SeriesIndex, error) {
	if m.GetIndexFunc != nil {
		return m.GetIndexFunc(ctx)
	}
	return &models.SeriesIndex{}, nil
}

func (m *MockCatalogService) GetSeriesData(ctx context.Context, seriesID string) (*models.SeriesEpisodeData, error) {
	if m.GetSeriesDataFunc != nil {
		return m.GetSeriesDataFunc(ctx, seriesID)
	}
	return &models.SeriesEpisodeData{}, nil
}

func (m *MockCatalogService) GetEpisodeContext(ctx context.Context, episodeID string) (*service.EpisodeContextData, error) {
	if m.GetEpisodeContextFunc != nil {
		return m.GetEpisodeContextFunc(ctx, episodeID)
	}
	return &service.EpisodeContextData{Episode: &models.Episode{ID: episodeID}}, nil
}

func (m *MockCatalogService) GetSiblingDigests(ctx context.Context, episodeID string) ([]prompts.EpisodeDigest, error) {
	if m.GetSiblingDigestsFunc != nil {
		return m.GetSiblingDigestsFunc(ctx, episodeID)
	}
	return nil, nil
}

func (m *MockCatalogService) CreateScholar(ctx context.Context, scholar *models.Scholar) error {
	return nil
}

func (m *MockCatalogService) CreateSeries(ctx context.Context, series *models.Series) error {
	return nil
}

func (m *MockCatalogService) CreateEpisode(ctx context.Context, episode *models.Episode) error {
	return nil
}

func (m *MockCatalogService) SaveCompanion(ctx context.Context, episodeID string, companion *models.Companion) error {
	m.SavedCompanions[episodeID] = companion
	return nil
}
