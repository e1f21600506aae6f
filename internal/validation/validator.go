package validation

import (
	"fmt"
	"strings"

	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RegenerateRequest is the validated input for single-section regeneration
type RegenerateRequest struct {
	Section           string            `json:"section"`
	Transcript        string            `json:"transcript"`
	ScholarName       string            `json:"scholarName"`
	SeriesTitle       string            `json:"seriesTitle"`
	EpisodeNumber     int               `json:"episodeNumber,omitempty"`
	EpisodeTitle      string            `json:"episodeTitle"`
	ExistingCompanion *models.Companion `json:"existingCompanion"`
	CustomPrompt      string            `json:"customPrompt,omitempty"`
}

// ValidateRegenerateRequest checks the regeneration request before any
// network call is made. Returns the parsed section on success.
func ValidateRegenerateRequest(req *RegenerateRequest) (models.Section, []ValidationError) {
	var errs []ValidationError

	var section models.Section
	if req.Section == "" {
		errs = append(errs, ValidationError{Field: "section", Message: "section is required"})
	} else {
		parsed, err := models.ParseSection(req.Section)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   "section",
				Message: fmt.Sprintf("invalid section, must be one of: %s", sectionList()),
				Value:   req.Section,
			})
		} else {
			section = parsed
		}
	}

	if strings.TrimSpace(req.Transcript) == "" {
		errs = append(errs, ValidationError{Field: "transcript", Message: "transcript is required"})
	}
	if strings.TrimSpace(req.ScholarName) == "" {
		errs = append(errs, ValidationError{Field: "scholarName", Message: "scholarName is required"})
	}
	if strings.TrimSpace(req.SeriesTitle) == "" {
		errs = append(errs, ValidationError{Field: "seriesTitle", Message: "seriesTitle is required"})
	}
	if strings.TrimSpace(req.EpisodeTitle) == "" {
		errs = append(errs, ValidationError{Field: "episodeTitle", Message: "episodeTitle is required"})
	}
	if req.ExistingCompanion == nil {
		errs = append(errs, ValidationError{Field: "existingCompanion", Message: "existingCompanion is required"})
	}

	return section, errs
}

func sectionList() string {
	names := make([]string, len(models.AllSections))
	for i, s := range models.AllSections {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// ValidatePublishRequest checks the publish payload before any store write
func ValidatePublishRequest(index *models.SeriesIndex, seriesData map[string]*models.SeriesEpisodeData) []ValidationError {
	var errs []ValidationError

	if index == nil {
		errs = append(errs, ValidationError{Field: "index", Message: "index is required"})
	}
	if len(seriesData) == 0 {
		errs = append(errs, ValidationError{Field: "seriesData", Message: "seriesData must contain at least one series"})
		return errs
	}

	for seriesID, data := range seriesData {
		if data == nil {
			errs = append(errs, ValidationError{Field: "seriesData", Message: "series bundle is empty", Value: seriesID})
			continue
		}
		errs = append(errs, validateConnections(seriesID, data)...)
	}

	return errs
}

// validateConnections enforces the cross-episode invariant: at most 3
// connections per companion, each pointing at an episode that exists in the
// same series. An empty list is valid and expected.
func validateConnections(seriesID string, data *models.SeriesEpisodeData) []ValidationError {
	var errs []ValidationError

	episodeIDs := make(map[string]bool, len(data.Episodes))
	for _, ep := range data.Episodes {
		episodeIDs[ep.ID] = true
	}

	for episodeID, companion := range data.Companions {
		if companion == nil {
			continue
		}
		if len(companion.Connections) > models.MaxConnections {
			errs = append(errs, ValidationError{
				Field:   "connections",
				Message: fmt.Sprintf("companion %s has %d connections, maximum is %d", episodeID, len(companion.Connections), models.MaxConnections),
				Value:   seriesID,
			})
		}
		for _, conn := range companion.Connections {
			if !episodeIDs[conn.EpisodeID] {
				errs = append(errs, ValidationError{
					Field:   "connections",
					Message: fmt.Sprintf("companion %s references unknown episode %s", episodeID, conn.EpisodeID),
					Value:   seriesID,
				})
			}
		}
	}

	return errs
}

// AuditCitations checks the anti-fabrication invariant on generated output:
// hadith and verse sources must either be a non-empty citation string or the
// literal unverified marker. Empty sources are the tell of fabricated or
// half-parsed output.
func AuditCitations(companion *models.Companion) []ValidationError {
	var errs []ValidationError

	for i, h := range companion.Hadiths {
		if strings.TrimSpace(h.Source) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("hadiths[%d].source", i),
				Message: fmt.Sprintf("source must be a citation or exactly %q", models.SourceToVerify),
			})
		}
	}
	for i, v := range companion.Verses {
		if strings.TrimSpace(v.Reference) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("verses[%d].reference", i),
				Message: fmt.Sprintf("reference must carry surah and verse or exactly %q", models.SourceToVerify),
			})
		}
	}

	return errs
}
