package models

import (
	"encoding/json"
	"testing"
)

func TestParseSection(t *testing.T) {
	for _, s := range AllSections {
		parsed, err := ParseSection(string(s))
		if err != nil {
			t.Errorf("Expected %q to parse, got error: %v", s, err)
		}
		if parsed != s {
			t.Errorf("Expected %q, got %q", s, parsed)
		}
	}
}

func TestParseSectionRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "Hadiths", "connections", "themes", "summary "} {
		if _, err := ParseSection(name); err == nil {
			t.Errorf("Expected %q to be rejected", name)
		}
	}
}

func TestSectionMaxTokens(t *testing.T) {
	if got := SectionHadiths.MaxTokens(); got != 3000 {
		t.Errorf("Expected 3000 tokens for hadiths, got %d", got)
	}
	if got := SectionSummary.MaxTokens(); got != 800 {
		t.Errorf("Expected 800 tokens for summary, got %d", got)
	}
	if got := SectionNextSteps.MaxTokens(); got != 1500 {
		t.Errorf("Expected 1500 tokens for nextSteps, got %d", got)
	}
}

func TestParseSectionValue(t *testing.T) {
	value, err := ParseSectionValue(SectionSummary, json.RawMessage(`"a short summary"`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if value.(string) != "a short summary" {
		t.Errorf("Unexpected summary value: %v", value)
	}

	value, err = ParseSectionValue(SectionHadiths, json.RawMessage(`[{"text":"t","source":"Bukhari"}]`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	hadiths := value.([]Hadith)
	if len(hadiths) != 1 || hadiths[0].Source != "Bukhari" {
		t.Errorf("Unexpected hadiths value: %+v", hadiths)
	}

	if _, err := ParseSectionValue(SectionSummary, json.RawMessage(`["not a string"]`)); err == nil {
		t.Error("Expected wrong-shape summary to be rejected")
	}
	if _, err := ParseSectionValue(SectionNextSteps, json.RawMessage(`"not a list"`)); err == nil {
		t.Error("Expected wrong-shape nextSteps to be rejected")
	}
}

func TestApplySectionReplacesOnlyTarget(t *testing.T) {
	companion := Companion{
		Summary:   "original summary",
		Hadiths:   []Hadith{{Text: "h1", Source: "Muslim"}},
		NextSteps: []string{"step one"},
	}

	companion.ApplySection(SectionSummary, "new summary")

	if companion.Summary != "new summary" {
		t.Errorf("Expected summary to be replaced, got %q", companion.Summary)
	}
	if len(companion.Hadiths) != 1 || companion.Hadiths[0].Source != "Muslim" {
		t.Errorf("Expected hadiths untouched, got %+v", companion.Hadiths)
	}
	if len(companion.NextSteps) != 1 || companion.NextSteps[0] != "step one" {
		t.Errorf("Expected nextSteps untouched, got %+v", companion.NextSteps)
	}
}

func TestApplySectionIgnoresWrongType(t *testing.T) {
	companion := Companion{Summary: "original"}

	// A value of the wrong shape must not clobber the section
	companion.ApplySection(SectionSummary, []string{"not", "a", "string"})

	if companion.Summary != "original" {
		t.Errorf("Expected summary untouched, got %q", companion.Summary)
	}
}

func TestGenerationRunProgressMonotonic(t *testing.T) {
	run := GenerationRun{EpisodeID: "ep-1", State: GenerationStatePending}

	run.Advance(GenerationStateAnalyzing, 70)
	run.Advance(GenerationStateAnalyzing, 40)

	if run.Progress != 70 {
		t.Errorf("Expected progress to stay at 70, got %d", run.Progress)
	}
	if run.State != GenerationStateAnalyzing {
		t.Errorf("Unexpected state: %s", run.State)
	}
}

func TestGenerationRunFail(t *testing.T) {
	run := GenerationRun{EpisodeID: "ep-1", State: GenerationStateTranscribing, Progress: 10}

	run.Fail(StageTranscription, errAudio)

	if run.State != GenerationStateError {
		t.Errorf("Expected error state, got %s", run.State)
	}
	if run.FailedStage != StageTranscription {
		t.Errorf("Expected transcription stage, got %s", run.FailedStage)
	}
	if run.Error == "" {
		t.Error("Expected error message to be recorded")
	}
}

var errAudio = &testError{"audio fetch failed"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
