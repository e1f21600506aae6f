package prompts

import (
	"strings"
	"testing"

	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

var testMeta = EpisodeMeta{
	ScholarName:   "Sheikh Example",
	SeriesTitle:   "Foundations",
	EpisodeNumber: 3,
	EpisodeTitle:  "Patience",
}

func TestBuildExtraction(t *testing.T) {
	p := BuildExtraction("the transcript body", testMeta)

	if !strings.Contains(p.System, models.SourceToVerify) {
		t.Error("Extraction system prompt must carry the unverified-source marker")
	}
	if !strings.Contains(p.System, "NEVER fabricate") {
		t.Error("Extraction system prompt must carry the anti-fabrication rule")
	}
	if !strings.Contains(p.User, "the transcript body") {
		t.Error("Extraction user prompt must embed the transcript")
	}
	if !strings.Contains(p.User, "Episode 3: Patience") {
		t.Error("Extraction user prompt must describe the episode")
	}
}

func TestBuildExtractionIsPure(t *testing.T) {
	a := BuildExtraction("same input", testMeta)
	b := BuildExtraction("same input", testMeta)

	if a != b {
		t.Error("Expected identical prompts for identical input")
	}
}

func TestBuildPolish(t *testing.T) {
	extraction := &models.ExtractionResult{
		Summary: "episode summary",
		Themes:  []string{"patience", "gratitude"},
	}
	p := BuildPolish(extraction, testMeta)

	for _, category := range []string{"spiritual", "practical", "social", "study"} {
		if !strings.Contains(p.System, category) {
			t.Errorf("Polish system prompt must name the %q category", category)
		}
	}
	if !strings.Contains(p.User, "episode summary") {
		t.Error("Polish user prompt must embed the extraction")
	}
}

func TestBuildLinking(t *testing.T) {
	current := EpisodeDigest{ID: "ep-1", Title: "Patience", Themes: []string{"patience"}}
	siblings := []EpisodeDigest{
		{ID: "ep-2", Title: "Gratitude", Themes: []string{"gratitude"}},
	}
	p := BuildLinking(current, siblings)

	if !strings.Contains(p.System, "at most 3") {
		t.Error("Linking system prompt must cap connections")
	}
	if !strings.Contains(p.System, "empty list") {
		t.Error("Linking system prompt must allow an empty result")
	}
	if !strings.Contains(p.User, "ep-2") {
		t.Error("Linking user prompt must list the siblings")
	}
}

func TestBuildRegeneration(t *testing.T) {
	existing := &models.Companion{Summary: "existing summary text"}
	p := BuildRegeneration(models.SectionHadiths, "the transcript", testMeta, existing, "")

	if !strings.Contains(p.System, `"hadiths"`) {
		t.Error("Regeneration system prompt must name the target section key")
	}
	if !strings.Contains(p.System, "exactly one key") {
		t.Error("Regeneration system prompt must demand a single-key response")
	}
	if !strings.Contains(p.User, "existing summary text") {
		t.Error("Regeneration user prompt must embed the existing companion")
	}
	if strings.Contains(p.User, "Additional instructions") {
		t.Error("No custom-prompt block expected when none was given")
	}
}

func TestBuildRegenerationCustomPrompt(t *testing.T) {
	p := BuildRegeneration(models.SectionSummary, "t", testMeta, &models.Companion{}, "make it shorter")

	if !strings.Contains(p.User, "make it shorter") {
		t.Error("Custom prompt must be embedded in the user prompt")
	}
}

func TestSectionInstructionsTotal(t *testing.T) {
	for _, section := range models.AllSections {
		if sectionInstructions(section) == "" {
			t.Errorf("No instructions for section %q", section)
		}
	}
}
