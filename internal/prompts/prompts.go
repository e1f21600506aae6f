// Package prompts builds the prompt pairs for every generation stage.
// All builders are pure: same input, same prompt, no side effects.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mutaaf/ramadan-guide-sub002/internal/models"
)

// Prompt is a system/user prompt pair ready for the completion client
type Prompt struct {
	System string
	User   string
}

// EpisodeMeta identifies the episode a prompt is built for
type EpisodeMeta struct {
	ScholarName   string
	SeriesTitle   string
	EpisodeNumber int
	EpisodeTitle  string
}

func (m EpisodeMeta) describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Series: %s\n", m.SeriesTitle)
	if m.EpisodeNumber > 0 {
		fmt.Fprintf(&b, "Episode %d: %s\n", m.EpisodeNumber, m.EpisodeTitle)
	} else {
		fmt.Fprintf(&b, "Episode: %s\n", m.EpisodeTitle)
	}
	fmt.Fprintf(&b, "Speaker: %s\n", m.ScholarName)
	return b.String()
}

const extractionSystem = `You are a meticulous Islamic studies editor preparing an episode companion from a lecture transcript.

Rules you must never break:
- NEVER fabricate a hadith. Only include hadiths the speaker actually cites or quotes.
- If the speaker cites a hadith without naming its collection, set its "source" to exactly "` + models.SourceToVerify + `". Do not invent a collection, book or number.
- Every Quranic verse must carry the surah name and verse number in its "reference" field. If the speaker does not identify the verse, set the reference to exactly "` + models.SourceToVerify + `".
- Key quotes must be near-verbatim from the transcript. Do not paraphrase into the speaker's mouth.
- Themes are short topic tags (two to four words each). Keep the list small.

Respond with a single JSON object with exactly these keys:
{"summary": string, "hadiths": [{"text", "source", "narrator", "context"}], "verses": [{"text", "reference", "context"}], "keyQuotes": [{"quote", "context", "significance"}], "themes": [string]}`

// BuildExtraction builds the Phase-1 prompt: raw citation and theme
// extraction from the transcript.
func BuildExtraction(transcript string, meta EpisodeMeta) Prompt {
	var user strings.Builder
	user.WriteString(meta.describe())
	user.WriteString("\nTranscript:\n\"\"\"\n")
	user.WriteString(transcript)
	user.WriteString("\n\"\"\"\n\nExtract the companion data as specified. Return only the JSON object.")

	return Prompt{System: extractionSystem, User: user.String()}
}

const polishSystem = `You are an Islamic studies editor turning extracted lecture material into practical takeaways for listeners.

Rules:
- actionItems: every item carries a "category" that is exactly one of "spiritual", "practical", "social", "study". Include at least one item for each of the four categories.
- nextSteps: short, concrete follow-ups a listener can do this week.
- recommendedResources: every resource carries a "type" that is exactly one of "book", "article", "video", "tafsir", "hadith-collection". Only recommend resources that genuinely relate to the episode's themes; do not invent titles.

Respond with a single JSON object with exactly these keys:
{"actionItems": [{"category", "action", "details"}], "nextSteps": [string], "recommendedResources": [{"type", "title", "author", "description"}]}`

// BuildPolish builds the Phase-2 prompt: practical-takeaway synthesis from
// the Phase-1 extraction.
func BuildPolish(extraction *models.ExtractionResult, meta EpisodeMeta) Prompt {
	extracted, _ := json.MarshalIndent(extraction, "", "  ")

	var user strings.Builder
	user.WriteString(meta.describe())
	user.WriteString("\nExtracted episode material:\n")
	user.Write(extracted)
	user.WriteString("\n\nProduce the practical takeaways as specified. Return only the JSON object.")

	return Prompt{System: polishSystem, User: user.String()}
}

// EpisodeDigest is the cross-episode linking shape: enough of an episode to
// judge thematic overlap without re-reading transcripts.
type EpisodeDigest struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Themes  []string `json:"themes"`
	Summary string   `json:"summary"`
}

const linkingSystem = `You find genuine thematic connections between episodes of the same lecture series.

Rules:
- Suggest at most 3 connections.
- Only connect episodes with a real, specific thematic link. A shared religion or a shared series is not a connection.
- If no genuine connection exists, return an empty list. Never force one.
- Each connection's "episodeId" must be the id of one of the sibling episodes provided.

Respond with a single JSON object: {"connections": [{"episodeId", "episodeTitle", "connection"}]}`

// BuildLinking builds the cross-episode linking prompt
func BuildLinking(current EpisodeDigest, siblings []EpisodeDigest) Prompt {
	currentJSON, _ := json.MarshalIndent(current, "", "  ")
	siblingsJSON, _ := json.MarshalIndent(siblings, "", "  ")

	var user strings.Builder
	user.WriteString("Current episode:\n")
	user.Write(currentJSON)
	user.WriteString("\n\nOther episodes in the same series:\n")
	user.Write(siblingsJSON)
	user.WriteString("\n\nReturn only the JSON object.")

	return Prompt{System: linkingSystem, User: user.String()}
}

// sectionInstructions returns the section-specific contract for regeneration.
// The switch is total over the Section enum.
func sectionInstructions(section models.Section) string {
	switch section {
	case models.SectionHadiths:
		return `Regenerate the "hadiths" list. NEVER fabricate a hadith; only include hadiths cited in the transcript. Unresolved sources must be exactly "` + models.SourceToVerify + `". Shape: [{"text", "source", "narrator", "context"}]`
	case models.SectionVerses:
		return `Regenerate the "verses" list. Every verse needs surah name and verse number in "reference", or exactly "` + models.SourceToVerify + `" if the speaker did not identify it. Shape: [{"text", "reference", "context"}]`
	case models.SectionKeyQuotes:
		return `Regenerate the "keyQuotes" list with near-verbatim quotes from the transcript. Shape: [{"quote", "context", "significance"}]`
	case models.SectionActionItems:
		return `Regenerate the "actionItems" list. Each category is exactly one of "spiritual", "practical", "social", "study"; cover all four. Shape: [{"category", "action", "details"}]`
	case models.SectionNextSteps:
		return `Regenerate the "nextSteps" list: short, concrete follow-ups. Shape: [string]`
	case models.SectionDiscussionQuestions:
		return `Regenerate the "discussionQuestions" list: open questions for a study circle, grounded in this episode. Shape: [string]`
	case models.SectionGlossary:
		return `Regenerate the "glossary" list defining Arabic or technical terms used in the episode. Shape: [{"term", "definition"}]`
	case models.SectionRecommendedResources:
		return `Regenerate the "recommendedResources" list. Each type is exactly one of "book", "article", "video", "tafsir", "hadith-collection". Do not invent titles. Shape: [{"type", "title", "author", "description"}]`
	case models.SectionSummary:
		return `Regenerate the "summary": one coherent paragraph capturing the episode's core message. Shape: string`
	}
	return ""
}

// BuildRegeneration builds the single-section regeneration prompt. The
// existing companion is embedded so the regenerated section stays consistent
// in style and tone with the rest of the document.
func BuildRegeneration(section models.Section, transcript string, meta EpisodeMeta, existing *models.Companion, customPrompt string) Prompt {
	existingJSON, _ := json.MarshalIndent(existing, "", "  ")

	system := `You are an Islamic studies editor regenerating exactly one section of an existing episode companion document.

` + sectionInstructions(section) + `

Respond with a single JSON object containing exactly one key, "` + section.Key() + `", whose value is the regenerated section. Do not return any other section.`

	var user strings.Builder
	user.WriteString(meta.describe())
	user.WriteString("\nExisting companion document (for style and tone; regenerate only the \"" + section.Key() + "\" section):\n")
	user.Write(existingJSON)
	user.WriteString("\n\nTranscript:\n\"\"\"\n")
	user.WriteString(transcript)
	user.WriteString("\n\"\"\"\n")
	if customPrompt != "" {
		user.WriteString("\nAdditional instructions from the editor: ")
		user.WriteString(customPrompt)
		user.WriteString("\n")
	}
	user.WriteString("\nReturn only the JSON object.")

	return Prompt{System: system, User: user.String()}
}
