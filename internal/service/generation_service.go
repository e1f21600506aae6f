package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/mutaaf/ramadan-guide-sub002/internal/ai"
	"github.com/mutaaf/ramadan-guide-sub002/internal/config"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/prompts"
	"github.com/mutaaf/ramadan-guide-sub002/internal/status"
	"github.com/mutaaf/ramadan-guide-sub002/internal/validation"
	"github.com/rs/zerolog"
)

// generationService is the concrete implementation of GenerationService.
// The run is a sequence of awaited provider calls inside one logical
// operation; progress and failure state live in the injected status store so
// the admin UI can poll them from separate requests.
type generationService struct {
	completion    ai.CompletionClient
	transcription ai.TranscriptionClient
	statusStore   status.Store
	catalog       CatalogService
	cfg           *config.Config
	audioClient   *http.Client
	log           zerolog.Logger
}

// newGenerationService creates the pipeline orchestrator
func newGenerationService(deps Deps, catalog CatalogService, cfg *config.Config, log zerolog.Logger) *generationService {
	return &generationService{
		completion:    deps.Completion,
		transcription: deps.Transcription,
		statusStore:   deps.Status,
		catalog:       catalog,
		cfg:           cfg,
		audioClient:   &http.Client{Timeout: cfg.OpenAI.StageTimeout},
		log:           log.With().Str("service", "generation").Logger(),
	}
}

// episodeContext is everything the prompt builders need about the episode
type episodeContext struct {
	episode *models.Episode
	meta    prompts.EpisodeMeta
}

// Generate runs the full pipeline for an episode from scratch
func (s *generationService) Generate(ctx context.Context, episodeID string) (*models.Companion, error) {
	run := &models.GenerationRun{
		EpisodeID: episodeID,
		State:     models.GenerationStatePending,
		StartedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.statusStore.Set(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record generation run: %w", err)
	}
	return s.run(ctx, run)
}

// Retry restarts a failed run. When the failed stage's inputs are still held
// in the run record, the pipeline resumes from that stage instead of
// repeating the work that already succeeded.
func (s *generationService) Retry(ctx context.Context, episodeID string) (*models.Companion, error) {
	run, err := s.statusStore.Get(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load generation run: %w", err)
	}
	if run == nil {
		return nil, validation.ValidationError{Field: "episodeId", Message: "no generation run to retry"}
	}
	if run.State != models.GenerationStateError {
		return nil, validation.ValidationError{Field: "episodeId", Message: "generation run is not in an error state"}
	}

	s.log.Info().
		Str("episode_id", episodeID).
		Str("failed_stage", string(run.FailedStage)).
		Msg("Retrying generation from failed stage")

	run.Error = ""
	run.FailedStage = ""
	run.UpdatedAt = time.Now().UTC()
	return s.run(ctx, run)
}

// GetStatus returns the current run record for an episode, or nil when none exists
func (s *generationService) GetStatus(ctx context.Context, episodeID string) (*models.GenerationRun, error) {
	return s.statusStore.Get(ctx, episodeID)
}

// run executes the pipeline, resuming past any stage whose output is already
// present on the run record
func (s *generationService) run(ctx context.Context, run *models.GenerationRun) (*models.Companion, error) {
	epCtx, err := s.loadEpisodeContext(ctx, run.EpisodeID)
	if err != nil {
		return nil, err
	}

	// Stage 1: transcription
	if run.Transcript == "" {
		transcript, err := s.transcribe(ctx, run, epCtx)
		if err != nil {
			return nil, err
		}
		run.Transcript = transcript
	}

	// Stage 2: Phase-1 extraction
	if run.Extraction == nil {
		extraction, err := s.extract(ctx, run, epCtx)
		if err != nil {
			return nil, err
		}
		run.Extraction = extraction
	}

	// Stage 3: Phase-2 polish
	polish, err := s.polish(ctx, run, epCtx)
	if err != nil {
		return nil, err
	}

	companion := &models.Companion{
		Summary:              run.Extraction.Summary,
		Hadiths:              run.Extraction.Hadiths,
		Verses:               run.Extraction.Verses,
		KeyQuotes:            run.Extraction.KeyQuotes,
		Themes:               run.Extraction.Themes,
		ActionItems:          polish.ActionItems,
		NextSteps:            polish.NextSteps,
		RecommendedResources: polish.RecommendedResources,
		DiscussionQuestions:  []string{},
		Glossary:             []models.GlossaryEntry{},
		Connections:          []models.Connection{},
	}

	// Stage 4: cross-episode linking. Best-effort: a linking failure does
	// not discard an otherwise complete companion.
	companion.Connections = s.link(ctx, epCtx, companion)

	if err := s.catalog.SaveCompanion(ctx, run.EpisodeID, companion); err != nil {
		s.log.Error().Err(err).Str("episode_id", run.EpisodeID).Msg("Failed to persist companion")
	}

	run.Advance(models.GenerationStateComplete, 100)
	run.Transcript = ""
	run.Extraction = nil
	if err := s.statusStore.Set(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("episode_id", run.EpisodeID).Msg("Failed to record completed run")
	}

	return companion, nil
}

// loadEpisodeContext resolves the episode, its series and the scholar name
func (s *generationService) loadEpisodeContext(ctx context.Context, episodeID string) (*episodeContext, error) {
	epData, err := s.catalog.GetEpisodeContext(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	return &episodeContext{
		episode: epData.Episode,
		meta: prompts.EpisodeMeta{
			ScholarName:   epData.ScholarName,
			SeriesTitle:   epData.SeriesTitle,
			EpisodeNumber: epData.Episode.Number,
			EpisodeTitle:  epData.Episode.Title,
		},
	}, nil
}

// transcribe fetches the episode audio and converts it to text
func (s *generationService) transcribe(ctx context.Context, run *models.GenerationRun, epCtx *episodeContext) (string, error) {
	run.Advance(models.GenerationStateTranscribing, 10)
	s.statusStore.Set(ctx, run)

	if epCtx.episode.SourceURL == "" {
		err := fmt.Errorf("episode %s has no source URL", epCtx.episode.ID)
		s.fail(ctx, run, models.StageTranscription, err)
		return "", err
	}

	stageCtx, cancel := context.WithTimeout(ctx, s.cfg.OpenAI.StageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(stageCtx, http.MethodGet, epCtx.episode.SourceURL, nil)
	if err != nil {
		s.fail(ctx, run, models.StageTranscription, err)
		return "", fmt.Errorf("failed to create audio request: %w", err)
	}
	resp, err := s.audioClient.Do(req)
	if err != nil {
		s.fail(ctx, run, models.StageTranscription, err)
		return "", fmt.Errorf("failed to fetch episode audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err := &ai.UpstreamError{StatusCode: resp.StatusCode, Message: "audio source returned non-success status"}
		s.fail(ctx, run, models.StageTranscription, err)
		return "", err
	}

	transcript, err := s.transcription.Transcribe(stageCtx, resp.Body, path.Base(epCtx.episode.SourceURL))
	if err != nil {
		s.fail(ctx, run, models.StageTranscription, err)
		return "", err
	}

	run.Advance(models.GenerationStateTranscribing, 40)
	s.statusStore.Set(ctx, run)
	return transcript, nil
}

// extract runs Phase-1: raw citation and theme extraction. A response that
// does not parse as JSON with the expected keys is an analysis failure, not
// something to silently default.
func (s *generationService) extract(ctx context.Context, run *models.GenerationRun, epCtx *episodeContext) (*models.ExtractionResult, error) {
	run.Advance(models.GenerationStateAnalyzing, 45)
	s.statusStore.Set(ctx, run)

	prompt := prompts.BuildExtraction(run.Transcript, epCtx.meta)

	stageCtx, cancel := context.WithTimeout(ctx, s.cfg.OpenAI.StageTimeout)
	defer cancel()

	raw, err := s.completion.Complete(stageCtx, ai.CompletionRequest{
		System:    prompt.System,
		User:      prompt.User,
		Model:     s.cfg.OpenAI.CompletionModel,
		MaxTokens: 4000,
		JSONMode:  true,
	})
	if err != nil {
		s.fail(ctx, run, models.StageExtraction, err)
		return nil, err
	}

	extraction, err := parseExtraction(raw)
	if err != nil {
		s.fail(ctx, run, models.StageExtraction, err)
		return nil, err
	}

	// Anti-fabrication audit: empty citations mean the model broke contract
	audit := validation.AuditCitations(&models.Companion{Hadiths: extraction.Hadiths, Verses: extraction.Verses})
	if len(audit) > 0 {
		err := fmt.Errorf("extraction violated citation contract: %s", audit[0].Error())
		s.fail(ctx, run, models.StageExtraction, err)
		return nil, err
	}

	run.Advance(models.GenerationStateAnalyzing, 70)
	s.statusStore.Set(ctx, run)
	return extraction, nil
}

// polish runs Phase-2: practical-takeaway synthesis from the extraction
func (s *generationService) polish(ctx context.Context, run *models.GenerationRun, epCtx *episodeContext) (*models.PolishResult, error) {
	prompt := prompts.BuildPolish(run.Extraction, epCtx.meta)

	stageCtx, cancel := context.WithTimeout(ctx, s.cfg.OpenAI.StageTimeout)
	defer cancel()

	raw, err := s.completion.Complete(stageCtx, ai.CompletionRequest{
		System:    prompt.System,
		User:      prompt.User,
		Model:     s.cfg.OpenAI.CompletionModel,
		MaxTokens: 2500,
		JSONMode:  true,
	})
	if err != nil {
		s.fail(ctx, run, models.StagePolish, err)
		return nil, err
	}

	var polish models.PolishResult
	if err := json.Unmarshal([]byte(raw), &polish); err != nil {
		err = fmt.Errorf("polish response is not valid JSON: %w", err)
		s.fail(ctx, run, models.StagePolish, err)
		return nil, err
	}

	// The prompt asks for at least one action item per category; compliance
	// is best-effort, so only flag gaps for the editor rather than failing.
	s.auditActionCategories(run.EpisodeID, polish.ActionItems)

	run.Advance(models.GenerationStateAnalyzing, 90)
	s.statusStore.Set(ctx, run)
	return &polish, nil
}

// link runs cross-episode linking against the episode's siblings. Returns an
// empty list when the series has no other analyzed episodes, when the model
// finds no genuine connection, or when the stage fails.
func (s *generationService) link(ctx context.Context, epCtx *episodeContext, companion *models.Companion) []models.Connection {
	siblings, err := s.catalog.GetSiblingDigests(ctx, epCtx.episode.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("episode_id", epCtx.episode.ID).Msg("Failed to load sibling episodes, skipping linking")
		return []models.Connection{}
	}
	if len(siblings) == 0 {
		return []models.Connection{}
	}

	current := prompts.EpisodeDigest{
		ID:      epCtx.episode.ID,
		Title:   epCtx.episode.Title,
		Themes:  companion.Themes,
		Summary: companion.Summary,
	}
	prompt := prompts.BuildLinking(current, siblings)

	stageCtx, cancel := context.WithTimeout(ctx, s.cfg.OpenAI.StageTimeout)
	defer cancel()

	raw, err := s.completion.Complete(stageCtx, ai.CompletionRequest{
		System:    prompt.System,
		User:      prompt.User,
		Model:     s.cfg.OpenAI.CompletionModel,
		MaxTokens: 1000,
		JSONMode:  true,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("episode_id", epCtx.episode.ID).Msg("Linking stage failed, continuing without connections")
		return []models.Connection{}
	}

	var linking models.LinkingResult
	if err := json.Unmarshal([]byte(raw), &linking); err != nil {
		s.log.Warn().Err(err).Str("episode_id", epCtx.episode.ID).Msg("Linking response is not valid JSON, continuing without connections")
		return []models.Connection{}
	}

	return repairConnections(linking.Connections, siblings)
}

// repairConnections drops connections pointing outside the sibling set and
// caps the list at the maximum
func repairConnections(connections []models.Connection, siblings []prompts.EpisodeDigest) []models.Connection {
	siblingIDs := make(map[string]bool, len(siblings))
	for _, sib := range siblings {
		siblingIDs[sib.ID] = true
	}

	repaired := make([]models.Connection, 0, models.MaxConnections)
	for _, conn := range connections {
		if !siblingIDs[conn.EpisodeID] {
			continue
		}
		repaired = append(repaired, conn)
		if len(repaired) == models.MaxConnections {
			break
		}
	}
	return repaired
}

// parseExtraction strictly parses the Phase-1 response: valid JSON with all
// expected keys present
func parseExtraction(raw string) (*models.ExtractionResult, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, fmt.Errorf("extraction response is not valid JSON: %w", err)
	}
	for _, required := range []string{"summary", "hadiths", "verses", "keyQuotes", "themes"} {
		if _, ok := keys[required]; !ok {
			return nil, fmt.Errorf("extraction response is missing key %q", required)
		}
	}

	var extraction models.ExtractionResult
	if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
		return nil, fmt.Errorf("extraction response has wrong shape: %w", err)
	}
	return &extraction, nil
}

// auditActionCategories logs which of the four categories came back empty
func (s *generationService) auditActionCategories(episodeID string, items []models.ActionItem) {
	seen := make(map[models.ActionCategory]bool, len(items))
	for _, item := range items {
		seen[item.Category] = true
	}
	for category := range models.ValidActionCategories {
		if !seen[category] {
			s.log.Warn().
				Str("episode_id", episodeID).
				Str("category", string(category)).
				Msg("Action items missing a category the prompt asked for")
		}
	}
}

// fail records a terminal stage failure on the run
func (s *generationService) fail(ctx context.Context, run *models.GenerationRun, stage models.GenerationStage, err error) {
	run.Fail(stage, err)
	if storeErr := s.statusStore.Set(ctx, run); storeErr != nil {
		s.log.Error().Err(storeErr).Str("episode_id", run.EpisodeID).Msg("Failed to record run failure")
	}
	s.log.Error().
		Err(err).
		Str("episode_id", run.EpisodeID).
		Str("stage", string(stage)).
		Msg("Generation stage failed")
}
