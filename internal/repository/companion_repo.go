package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mutaaf/ramadan-guide-sub002/internal/database"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

// companionRepo stores companion documents as JSONB keyed by episode
type companionRepo struct {
	db *database.DB
}

// NewCompanionRepo creates a new companion repository
func NewCompanionRepo(db *database.DB) CompanionRepository {
	return &companionRepo{db: db}
}

// Upsert stores the companion for an episode, replacing any previous document
func (r *companionRepo) Upsert(ctx context.Context, episodeID string, companion *models.Companion) error {
	doc, err := json.Marshal(companion)
	if err != nil {
		return fmt.Errorf("failed to encode companion: %w", err)
	}

	query := `
		INSERT INTO companions (episode_id, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (episode_id) DO UPDATE SET document = $2, updated_at = $3
	`
	_, err = r.db.ExecContext(ctx, query, episodeID, doc, time.Now())
	return err
}

// GetByEpisode retrieves the companion for an episode, returning nil when
// generation has never completed for it
func (r *companionRepo) GetByEpisode(ctx context.Context, episodeID string) (*models.Companion, error) {
	query := `SELECT document FROM companions WHERE episode_id = $1`

	var doc []byte
	err := r.db.QueryRowContext(ctx, query, episodeID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var companion models.Companion
	if err := json.Unmarshal(doc, &companion); err != nil {
		return nil, fmt.Errorf("failed to decode companion: %w", err)
	}
	return &companion, nil
}

// GetBySeries retrieves all companions for a series keyed by episode id
func (r *companionRepo) GetBySeries(ctx context.Context, seriesID string) (map[string]*models.Companion, error) {
	query := `
		SELECT c.episode_id, c.document
		FROM companions c
		JOIN episodes e ON e.id = c.episode_id
		WHERE e.series_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companions := make(map[string]*models.Companion)
	for rows.Next() {
		var episodeID string
		var doc []byte
		if err := rows.Scan(&episodeID, &doc); err != nil {
			return nil, err
		}
		var companion models.Companion
		if err := json.Unmarshal(doc, &companion); err != nil {
			return nil, fmt.Errorf("failed to decode companion for %s: %w", episodeID, err)
		}
		companions[episodeID] = &companion
	}
	return companions, rows.Err()
}
