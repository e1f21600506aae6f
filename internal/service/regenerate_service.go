package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mutaaf/ramadan-guide-sub002/internal/ai"
	"github.com/mutaaf/ramadan-guide-sub002/internal/config"
	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
	"github.com/mutaaf/ramadan-guide-sub002/internal/prompts"
	"github.com/mutaaf/ramadan-guide-sub002/internal/validation"
	"github.com/rs/zerolog"
)

// ParseError marks a provider response that came back but could not be
// turned into a usable section value. Distinct from UpstreamError: the
// provider succeeded, the content did not.
type ParseError struct {
	Section models.Section
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse regenerated %s: %s", e.Section, e.Reason)
}

// regenerateService re-runs generation for one named section of an existing
// companion. It never mutates the companion it is given; the caller decides
// what to do with the returned value.
type regenerateService struct {
	completion ai.CompletionClient
	cfg        *config.Config
	log        zerolog.Logger
}

// newRegenerateService creates the section regeneration service
func newRegenerateService(completion ai.CompletionClient, cfg *config.Config, log zerolog.Logger) *regenerateService {
	return &regenerateService{
		completion: completion,
		cfg:        cfg,
		log:        log.With().Str("service", "regenerate").Logger(),
	}
}

// Regenerate validates the request, re-runs the model for the named section
// and returns the section together with its freshly generated value
func (s *regenerateService) Regenerate(ctx context.Context, req *validation.RegenerateRequest) (models.Section, interface{}, error) {
	section, errs := validation.ValidateRegenerateRequest(req)
	if len(errs) > 0 {
		return "", nil, errs[0]
	}

	meta := prompts.EpisodeMeta{
		ScholarName:   req.ScholarName,
		SeriesTitle:   req.SeriesTitle,
		EpisodeNumber: req.EpisodeNumber,
		EpisodeTitle:  req.EpisodeTitle,
	}
	prompt := prompts.BuildRegeneration(section, req.Transcript, meta, req.ExistingCompanion, req.CustomPrompt)

	s.log.Info().
		Str("section", string(section)).
		Bool("custom_prompt", req.CustomPrompt != "").
		Msg("Regenerating section")

	raw, err := s.completion.Complete(ctx, ai.CompletionRequest{
		System:    prompt.System,
		User:      prompt.User,
		Model:     s.cfg.OpenAI.RegenerationModel,
		MaxTokens: section.MaxTokens(),
		JSONMode:  true,
	})
	if err != nil {
		return "", nil, err
	}

	value, err := parseSectionResponse(section, raw)
	if err != nil {
		s.log.Error().Err(err).Str("section", string(section)).Msg("Regeneration response unusable")
		return "", nil, err
	}

	if err := auditRegeneratedCitations(section, value); err != nil {
		s.log.Error().Err(err).Str("section", string(section)).Msg("Regenerated section violated citation contract")
		return "", nil, err
	}

	return section, value, nil
}

// auditRegeneratedCitations applies the citation contract to regenerated
// hadiths and verses; no other section carries citations. Violations are
// generation failures, same as a malformed response.
func auditRegeneratedCitations(section models.Section, value interface{}) error {
	var companion models.Companion
	switch section {
	case models.SectionHadiths:
		companion.Hadiths, _ = value.([]models.Hadith)
	case models.SectionVerses:
		companion.Verses, _ = value.([]models.Verse)
	default:
		return nil
	}

	if errs := validation.AuditCitations(&companion); len(errs) > 0 {
		return &ParseError{Section: section, Reason: errs[0].Error()}
	}
	return nil
}

// parseSectionResponse extracts the section's value from the model response.
// The contract is a JSON object with exactly the section key; anything else
// is a parse failure, never a silent default.
func parseSectionResponse(section models.Section, raw string) (interface{}, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &outer); err != nil {
		return nil, &ParseError{Section: section, Reason: "response is not a JSON object"}
	}

	inner, ok := outer[section.Key()]
	if !ok {
		return nil, &ParseError{Section: section, Reason: fmt.Sprintf("response object has no %q key", section.Key())}
	}

	value, err := models.ParseSectionValue(section, inner)
	if err != nil {
		return nil, &ParseError{Section: section, Reason: err.Error()}
	}
	return value, nil
}
