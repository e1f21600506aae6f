package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mutaaf/ramadan-guide-sub002/internal/database"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

// seriesRepo is the concrete implementation of SeriesRepository
type seriesRepo struct {
	db *database.DB
}

// NewSeriesRepo creates a new series repository
func NewSeriesRepo(db *database.DB) SeriesRepository {
	return &seriesRepo{db: db}
}

// Create inserts a new series
func (r *seriesRepo) Create(ctx context.Context, series *models.Series) error {
	query := `
		INSERT INTO series (id, scholar_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		series.ID, series.ScholarID, series.Title, series.Description,
		series.Status, series.CreatedAt, time.Now(),
	)
	return err
}

// Update overwrites an existing series
func (r *seriesRepo) Update(ctx context.Context, series *models.Series) error {
	query := `
		UPDATE series
		SET scholar_id = $2, title = $3, description = $4, status = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		series.ID, series.ScholarID, series.Title, series.Description, series.Status, time.Now(),
	)
	return err
}

// GetByID retrieves a series by id, returning nil when not found
func (r *seriesRepo) GetByID(ctx context.Context, id string) (*models.Series, error) {
	query := `
		SELECT id, scholar_id, title, description, status, created_at, updated_at
		FROM series WHERE id = $1
	`
	var series models.Series
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&series.ID, &series.ScholarID, &series.Title, &series.Description,
		&series.Status, &series.CreatedAt, &series.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &series, nil
}

// GetAll retrieves all series ordered by creation time
func (r *seriesRepo) GetAll(ctx context.Context) ([]models.Series, error) {
	query := `
		SELECT id, scholar_id, title, description, status, created_at, updated_at
		FROM series ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Series
	for rows.Next() {
		var series models.Series
		if err := rows.Scan(
			&series.ID, &series.ScholarID, &series.Title, &series.Description,
			&series.Status, &series.CreatedAt, &series.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, series)
	}
	return result, rows.Err()
}
