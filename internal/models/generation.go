package models

import (
	"time"
)

// GenerationState represents the stage a generation run is in.
// Transitions: pending -> transcribing -> analyzing -> complete, with error
// reachable from transcribing or analyzing.
type GenerationState string

const (
	GenerationStatePending      GenerationState = "pending"
	GenerationStateTranscribing GenerationState = "transcribing"
	GenerationStateAnalyzing    GenerationState = "analyzing"
	GenerationStateComplete     GenerationState = "complete"
	GenerationStateError        GenerationState = "error"
)

// GenerationStage identifies which pipeline stage a run failed in, so a retry
// can resume from that stage when prior-stage output is still available.
type GenerationStage string

const (
	StageTranscription GenerationStage = "transcription"
	StageExtraction    GenerationStage = "extraction"
	StagePolish        GenerationStage = "polish"
	StageLinking       GenerationStage = "linking"
)

// ExtractionResult is the Phase-1 output: raw citations, quotes and themes
// pulled from the transcript before any practical-takeaway synthesis.
type ExtractionResult struct {
	Summary   string     `json:"summary"`
	Hadiths   []Hadith   `json:"hadiths"`
	Verses    []Verse    `json:"verses"`
	KeyQuotes []KeyQuote `json:"keyQuotes"`
	Themes    []string   `json:"themes"`
}

// PolishResult is the Phase-2 output: practical takeaways synthesized from
// the Phase-1 extraction.
type PolishResult struct {
	ActionItems          []ActionItem `json:"actionItems"`
	NextSteps            []string     `json:"nextSteps"`
	RecommendedResources []Resource   `json:"recommendedResources"`
}

// LinkingResult is the cross-episode linking output
type LinkingResult struct {
	Connections []Connection `json:"connections"`
}

// GenerationRun is the transient per-episode run record kept in the status
// store while a generation is in flight. Stage outputs are retained so a
// retry after an error can resume from the failed stage instead of starting
// over. Runs are not persisted beyond the store's TTL.
type GenerationRun struct {
	EpisodeID   string            `json:"episodeId"`
	State       GenerationState   `json:"state"`
	Progress    int               `json:"progress"` // 0-100, monotonically non-decreasing
	FailedStage GenerationStage   `json:"failedStage,omitempty"`
	Error       string            `json:"error,omitempty"`
	Transcript  string            `json:"transcript,omitempty"`
	Extraction  *ExtractionResult `json:"extraction,omitempty"`
	StartedAt   time.Time         `json:"startedAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Advance moves the run to a new state and raises progress. Progress never
// decreases, even if a caller passes a smaller value.
func (r *GenerationRun) Advance(state GenerationState, progress int) {
	r.State = state
	if progress > r.Progress {
		r.Progress = progress
	}
	r.UpdatedAt = time.Now().UTC()
}

// Fail marks the run as terminally failed in the given stage
func (r *GenerationRun) Fail(stage GenerationStage, err error) {
	r.State = GenerationStateError
	r.FailedStage = stage
	if err != nil {
		r.Error = err.Error()
	}
	r.UpdatedAt = time.Now().UTC()
}
