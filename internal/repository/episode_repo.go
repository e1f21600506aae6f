package repository

import (
	"context"
	"database/sql"

	"github.com/mutaaf/ramadan-guide-sub002/internal/database"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

// episodeRepo is the concrete implementation of EpisodeRepository
type episodeRepo struct {
	db *database.DB
}

// NewEpisodeRepo creates a new episode repository
func NewEpisodeRepo(db *database.DB) EpisodeRepository {
	return &episodeRepo{db: db}
}

// Create inserts a new episode
func (r *episodeRepo) Create(ctx context.Context, episode *models.Episode) error {
	query := `
		INSERT INTO episodes (id, series_id, title, number, duration_label, source_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		episode.ID, episode.SeriesID, episode.Title, episode.Number,
		episode.DurationLabel, episode.SourceURL,
	)
	return err
}

// GetByID retrieves an episode by id, returning nil when not found
func (r *episodeRepo) GetByID(ctx context.Context, id string) (*models.Episode, error) {
	query := `
		SELECT id, series_id, title, number, duration_label, source_url
		FROM episodes WHERE id = $1
	`
	var episode models.Episode
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&episode.ID, &episode.SeriesID, &episode.Title, &episode.Number,
		&episode.DurationLabel, &episode.SourceURL,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

// GetBySeries retrieves the ordered episode list for a series
func (r *episodeRepo) GetBySeries(ctx context.Context, seriesID string) ([]models.Episode, error) {
	query := `
		SELECT id, series_id, title, number, duration_label, source_url
		FROM episodes WHERE series_id = $1 ORDER BY number
	`
	rows, err := r.db.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []models.Episode
	for rows.Next() {
		var episode models.Episode
		if err := rows.Scan(
			&episode.ID, &episode.SeriesID, &episode.Title, &episode.Number,
			&episode.DurationLabel, &episode.SourceURL,
		); err != nil {
			return nil, err
		}
		episodes = append(episodes, episode)
	}
	return episodes, rows.Err()
}
