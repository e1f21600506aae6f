package models

import (
	"time"
)

// SeriesStatus represents the publication state of a series
type SeriesStatus string

const (
	SeriesStatusDraft     SeriesStatus = "draft"
	SeriesStatusPublished SeriesStatus = "published"
)

// ValidSeriesStatuses defines allowed series statuses
var ValidSeriesStatuses = map[SeriesStatus]bool{
	SeriesStatusDraft:     true,
	SeriesStatusPublished: true,
}

// Scholar represents a lecturer referenced by one or more series.
// Series reference scholars by id; there is no ownership relation.
type Scholar struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Title     string    `json:"title,omitempty" db:"title"`
	Bio       string    `json:"bio,omitempty" db:"bio"`
	Links     []string  `json:"links,omitempty" db:"links"`
	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// Series represents a lecture series
type Series struct {
	ID          string       `json:"id" db:"id"`
	ScholarID   string       `json:"scholarId" db:"scholar_id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description,omitempty" db:"description"`
	Status      SeriesStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt,omitempty" db:"updated_at"`
}

// Episode represents a single lecture. The series index owns the ordered
// list of episodes; an episode belongs to exactly one series.
type Episode struct {
	ID            string `json:"id" db:"id"`
	SeriesID      string `json:"seriesId" db:"series_id"`
	Title         string `json:"title" db:"title"`
	Number        int    `json:"number" db:"number"`
	DurationLabel string `json:"durationLabel,omitempty" db:"duration_label"`
	SourceURL     string `json:"sourceUrl,omitempty" db:"source_url"`
}

// SeriesIndex is the root published document and the single source of truth
// for the catalog, written alongside the per-series bundles.
type SeriesIndex struct {
	Series   []Series  `json:"series"`
	Scholars []Scholar `json:"scholars"`
}

// SeriesEpisodeData is the per-series bundle published at {seriesId}/episodes.json.
// A companion exists only once generation has completed for that episode.
type SeriesEpisodeData struct {
	Episodes   []Episode             `json:"episodes"`
	Companions map[string]*Companion `json:"companions"`
}
