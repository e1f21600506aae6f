package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mutaaf/ramadan-guide-sub002/internal/database"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

// scholarRepo is the concrete implementation of ScholarRepository
type scholarRepo struct {
	db *database.DB
}

// NewScholarRepo creates a new scholar repository
func NewScholarRepo(db *database.DB) ScholarRepository {
	return &scholarRepo{db: db}
}

// Create inserts a new scholar
func (r *scholarRepo) Create(ctx context.Context, scholar *models.Scholar) error {
	linksJSON, _ := json.Marshal(scholar.Links)
	if scholar.Links == nil {
		linksJSON = []byte("[]")
	}

	query := `
		INSERT INTO scholars (id, name, title, bio, links, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		scholar.ID, scholar.Name, scholar.Title, scholar.Bio,
		linksJSON, scholar.CreatedAt, time.Now(),
	)
	return err
}

// Update overwrites an existing scholar's profile
func (r *scholarRepo) Update(ctx context.Context, scholar *models.Scholar) error {
	linksJSON, _ := json.Marshal(scholar.Links)
	if scholar.Links == nil {
		linksJSON = []byte("[]")
	}

	query := `
		UPDATE scholars
		SET name = $2, title = $3, bio = $4, links = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		scholar.ID, scholar.Name, scholar.Title, scholar.Bio, linksJSON, time.Now(),
	)
	return err
}

// GetByID retrieves a scholar by id, returning nil when not found
func (r *scholarRepo) GetByID(ctx context.Context, id string) (*models.Scholar, error) {
	query := `
		SELECT id, name, title, bio, links, created_at, updated_at
		FROM scholars WHERE id = $1
	`
	scholar, err := scanScholar(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return scholar, nil
}

// GetAll retrieves all scholars ordered by name
func (r *scholarRepo) GetAll(ctx context.Context) ([]models.Scholar, error) {
	query := `
		SELECT id, name, title, bio, links, created_at, updated_at
		FROM scholars ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scholars []models.Scholar
	for rows.Next() {
		scholar, err := scanScholar(rows)
		if err != nil {
			return nil, err
		}
		scholars = append(scholars, *scholar)
	}
	return scholars, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScholar(row rowScanner) (*models.Scholar, error) {
	var scholar models.Scholar
	var linksJSON []byte

	if err := row.Scan(
		&scholar.ID, &scholar.Name, &scholar.Title, &scholar.Bio,
		&linksJSON, &scholar.CreatedAt, &scholar.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(linksJSON) > 0 {
		json.Unmarshal(linksJSON, &scholar.Links)
	}
	return &scholar, nil
}
