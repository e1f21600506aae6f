package mocks

import (
	"context"
	"sort"

	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/repository"
)

// MockScholarRepository is a mock implementation of ScholarRepository
type MockScholarRepository struct {
	Scholars    map[string]*models.Scholar
	CreateError error
}

var _ repository.ScholarRepository = (*MockScholarRepository)(nil)

func NewMockScholarRepository() *MockScholarRepository {
	return &MockScholarRepository{
		Scholars: make(map[string]*models.Scholar),
	}
}

func (m *MockScholarRepository) Create(ctx context.Context, scholar *models.Scholar) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Scholars[scholar.ID] = scholar
	return nil
}

func (m *MockScholarRepository) Update(ctx context.Context, scholar *models.Scholar) error {
	m.Scholars[scholar.ID] = scholar
	return nil
}

func (m *MockScholarRepository) GetByID(ctx context.Context, id string) (*models.Scholar, error) {
	return m.Scholars[id], nil
}

func (m *MockScholarRepository) GetAll(ctx context.Context) ([]models.Scholar, error) {
	ids := make([]string, 0, len(m.Scholars))
	for id := range m.Scholars {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	scholars := make([]models.Scholar, 0, len(ids))
	for _, id := range ids {
		scholars = append(scholars, *m.Scholars[id])
	}
	return scholars, nil
}

// MockSeriesRepository is a mock implementation of SeriesRepository
type MockSeriesRepository struct {
	Series      map[string]*models.Series
	CreateError error
}

var _ repository.SeriesRepository = (*MockSeriesRepository)(nil)

func NewMockSeriesRepository() *MockSeriesRepository {
	return &MockSeriesRepository{
		Series: make(map[string]*models.Series),
	}
}

func (m *MockSeriesRepository) Create(ctx context.Context, series *models.Series) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Series[series.ID] = series
	return nil
}

func (m *MockSeriesRepository) Update(ctx context.Context, series *models.Series) error {
	m.Series[series.ID] = series
	return nil
}

func (m *MockSeriesRepository) GetByID(ctx context.Context, id string) (*models.Series, error) {
	return m.Series[id], nil
}

func (m *MockSeriesRepository) GetAll(ctx context.Context) ([]models.Series, error) {
	ids := make([]string, 0, len(m.Series))
	for id := range m.Series {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]models.Series, 0, len(ids))
	for _, id := range ids {
		all = append(all, *m.Series[id])
	}
	return all, nil
}

// MockEpisodeRepository is a mock implementation of EpisodeRepository
type MockEpisodeRepository struct {
	Episodes    map[string]*models.Episode
	CreateError error
}

var _ repository.EpisodeRepository = (*MockEpisodeRepository)(nil)

func NewMockEpisodeRepository() *MockEpisodeRepository {
	return &MockEpisodeRepository{
		Episodes: make(map[string]*models.Episode),
	}
}

func (m *MockEpisodeRepository) Create(ctx context.Context, episode *models.Episode) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Episodes[episode.ID] = episode
	return nil
}

func (m *MockEpisodeRepository) GetByID(ctx context.Context, id string) (*models.Episode, error) {
	return m.Episodes[id], nil
}

func (m *MockEpisodeRepository) GetBySeries(ctx context.Context, seriesID string) ([]models.Episode, error) {
	episodes := make([]models.Episode, 0)
	for _, ep := range m.Episodes {
		if ep.SeriesID == seriesID {
			episodes = append(episodes, *ep)
		}
	}
	sort.Slice(episodes, func(i, j int) bool { return episodes[i].Number < episodes[j].Number })
	return episodes, nil
}

// MockCompanionRepository is a mock implementation of CompanionRepository
type MockCompanionRepository struct {
	Companions  map[string]*models.Companion
	EpisodeRepo *MockEpisodeRepository
	UpsertError error
	UpsertCalls int
}

var _ repository.CompanionRepository = (*MockCompanionRepository)(nil)

func NewMockCompanionRepository(episodes *MockEpisodeRepository) *MockCompanionRepository {
	return &MockCompanionRepository{
		Companions:  make(map[string]*models.Companion),
		EpisodeRepo: episodes,
	}
}

func (m *MockCompanionRepository) Upsert(ctx context.Context, episodeID string, companion *models.Companion) error {
	m.UpsertCalls++
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.Companions[episodeID] = companion
	return nil
}

func (m *MockCompanionRepository) GetByEpisode(ctx context.Context, episodeID string) (*models.Companion, error) {
	return m.Companions[episodeID], nil
}

func (m *MockCompanionRepository) GetBySeries(ctx context.Context, seriesID string) (map[string]*models.Companion, error) {
	result := make(map[string]*models.Companion)
	for episodeID, companion := range m.Companions {
		if m.EpisodeRepo != nil {
			if ep := m.EpisodeRepo.Episodes[episodeID]; ep == nil || ep.SeriesID != seriesID {
				continue
			}
		}
		result[episodeID] = companion
	}
	return result, nil
}

// NewMockRepositories bundles the mocks into a Repositories value
func NewMockRepositories() (*repository.Repositories, *MockScholarRepository, *MockSeriesRepository, *MockEpisodeRepository, *MockCompanionRepository) {
	scholars := NewMockScholarRepository()
	series := NewMockSeriesRepository()
	episodes := NewMockEpisodeRepository()
	companions := NewMockCompanionRepository(episodes)

	repos := &repository.Repositories{
		Scholar:   scholars,
		Series:    series,
		Episode:   episodes,
		Companion: companions,
	}
	return repos, scholars, series, episodes, companions
}
