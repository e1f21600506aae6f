package validation

import (
	"testing"

	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

func validRegenerateRequest() *RegenerateRequest {
	return &RegenerateRequest{
		Section:           "summary",
		Transcript:        "full lecture transcript",
		ScholarName:       "Sheikh Example",
		SeriesTitle:       "Foundations",
		EpisodeTitle:      "Episode One",
		ExistingCompanion: &models.Companion{},
	}
}

func TestValidateRegenerateRequest(t *testing.T) {
	section, errs := ValidateRegenerateRequest(validRegenerateRequest())
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if section != models.SectionSummary {
		t.Errorf("Expected summary section, got %q", section)
	}
}

func TestValidateRegenerateRequestUnknownSection(t *testing.T) {
	req := validRegenerateRequest()
	req.Section = "footnotes"

	_, errs := ValidateRegenerateRequest(req)
	if len(errs) == 0 {
		t.Fatal("Expected unknown section to be rejected")
	}
	if errs[0].Field != "section" {
		t.Errorf("Expected section error, got %v", errs[0])
	}
}

func TestValidateRegenerateRequestMissingFields(t *testing.T) {
	req := &RegenerateRequest{Section: "summary"}

	_, errs := ValidateRegenerateRequest(req)
	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}

	for _, want := range []string{"transcript", "scholarName", "seriesTitle", "episodeTitle", "existingCompanion"} {
		if !fields[want] {
			t.Errorf("Expected error for missing %s", want)
		}
	}
}

func TestValidatePublishRequest(t *testing.T) {
	index := &models.SeriesIndex{}
	data := map[string]*models.SeriesEpisodeData{
		"series-1": {
			Episodes: []models.Episode{{ID: "ep-1"}, {ID: "ep-2"}},
			Companions: map[string]*models.Companion{
				"ep-1": {Connections: []models.Connection{{EpisodeID: "ep-2"}}},
			},
		},
	}

	if errs := ValidatePublishRequest(index, data); len(errs) != 0 {
		t.Errorf("Expected valid publish request, got %v", errs)
	}
}

func TestValidatePublishRequestEmpty(t *testing.T) {
	if errs := ValidatePublishRequest(&models.SeriesIndex{}, nil); len(errs) == 0 {
		t.Error("Expected empty seriesData to be rejected")
	}
}

func TestValidatePublishRequestDanglingConnection(t *testing.T) {
	data := map[string]*models.SeriesEpisodeData{
		"series-1": {
			Episodes: []models.Episode{{ID: "ep-1"}},
			Companions: map[string]*models.Companion{
				"ep-1": {Connections: []models.Connection{{EpisodeID: "ep-other-series"}}},
			},
		},
	}

	errs := ValidatePublishRequest(&models.SeriesIndex{}, data)
	if len(errs) == 0 {
		t.Fatal("Expected connection to unknown episode to be rejected")
	}
	if errs[0].Field != "connections" {
		t.Errorf("Expected connections error, got %v", errs[0])
	}
}

func TestValidatePublishRequestTooManyConnections(t *testing.T) {
	connections := []models.Connection{
		{EpisodeID: "ep-2"}, {EpisodeID: "ep-3"}, {EpisodeID: "ep-4"}, {EpisodeID: "ep-2"},
	}
	data := map[string]*models.SeriesEpisodeData{
		"series-1": {
			Episodes: []models.Episode{{ID: "ep-1"}, {ID: "ep-2"}, {ID: "ep-3"}, {ID: "ep-4"}},
			Companions: map[string]*models.Companion{
				"ep-1": {Connections: connections},
			},
		},
	}

	if errs := ValidatePublishRequest(&models.SeriesIndex{}, data); len(errs) == 0 {
		t.Error("Expected more than 3 connections to be rejected")
	}
}

func TestAuditCitations(t *testing.T) {
	companion := &models.Companion{
		Hadiths: []models.Hadith{
			{Text: "ok", Source: "Bukhari 1:1"},
			{Text: "unverified", Source: models.SourceToVerify},
			{Text: "bad", Source: ""},
		},
		Verses: []models.Verse{
			{Text: "ok", Reference: "Al-Baqarah 2:183"},
			{Text: "bad", Reference: "  "},
		},
	}

	errs := AuditCitations(companion)
	if len(errs) != 2 {
		t.Fatalf("Expected 2 citation errors, got %d: %v", len(errs), errs)
	}
}
