package models

// SourceToVerify is the literal marker a generated hadith or verse must carry
// when the model could not resolve a real citation. Anything else in the
// source field is expected to be an actual citation string.
const SourceToVerify = "Source to be verified"

// ActionCategory tags an action item with one of exactly four categories
type ActionCategory string

const (
	ActionCategorySpiritual ActionCategory = "spiritual"
	ActionCategoryPractical ActionCategory = "practical"
	ActionCategorySocial    ActionCategory = "social"
	ActionCategoryStudy     ActionCategory = "study"
)

// ValidActionCategories defines allowed action item categories
var ValidActionCategories = map[ActionCategory]bool{
	ActionCategorySpiritual: true,
	ActionCategoryPractical: true,
	ActionCategorySocial:    true,
	ActionCategoryStudy:     true,
}

// ResourceType tags a recommended resource
type ResourceType string

const (
	ResourceTypeBook             ResourceType = "book"
	ResourceTypeArticle          ResourceType = "article"
	ResourceTypeVideo            ResourceType = "video"
	ResourceTypeTafsir           ResourceType = "tafsir"
	ResourceTypeHadithCollection ResourceType = "hadith-collection"
)

// ValidResourceTypes defines allowed resource types
var ValidResourceTypes = map[ResourceType]bool{
	ResourceTypeBook:             true,
	ResourceTypeArticle:          true,
	ResourceTypeVideo:            true,
	ResourceTypeTafsir:           true,
	ResourceTypeHadithCollection: true,
}

// Hadith is a prophetic narration cited in the lecture
type Hadith struct {
	Text     string `json:"text"`
	Source   string `json:"source"`
	Narrator string `json:"narrator,omitempty"`
	Context  string `json:"context,omitempty"`
}

// Verse is a Quranic verse cited in the lecture
type Verse struct {
	Text      string `json:"text"`
	Reference string `json:"reference"` // surah name and verse number
	Context   string `json:"context,omitempty"`
}

// KeyQuote is a near-verbatim quote from the speaker
type KeyQuote struct {
	Quote        string `json:"quote"`
	Context      string `json:"context,omitempty"`
	Significance string `json:"significance,omitempty"`
}

// ActionItem is a practical takeaway tagged with a category
type ActionItem struct {
	Category ActionCategory `json:"category"`
	Action   string         `json:"action"`
	Details  string         `json:"details,omitempty"`
}

// Resource is a recommended follow-up resource
type Resource struct {
	Type        ResourceType `json:"type"`
	Title       string       `json:"title"`
	Author      string       `json:"author,omitempty"`
	Description string       `json:"description,omitempty"`
}

// GlossaryEntry defines a term used in the lecture
type GlossaryEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// MaxConnections caps the cross-episode connections a companion may carry
const MaxConnections = 3

// Connection is a discovered thematic link to another episode in the same series
type Connection struct {
	EpisodeID    string `json:"episodeId"`
	EpisodeTitle string `json:"episodeTitle"`
	Connection   string `json:"connection"`
}

// Companion is the generated artifact attached to one episode
type Companion struct {
	Summary              string          `json:"summary"`
	Hadiths              []Hadith        `json:"hadiths"`
	Verses               []Verse         `json:"verses"`
	KeyQuotes            []KeyQuote      `json:"keyQuotes"`
	Themes               []string        `json:"themes"`
	ActionItems          []ActionItem    `json:"actionItems"`
	NextSteps            []string        `json:"nextSteps"`
	RecommendedResources []Resource      `json:"recommendedResources"`
	DiscussionQuestions  []string        `json:"discussionQuestions"`
	Glossary             []GlossaryEntry `json:"glossary"`
	Connections          []Connection    `json:"connections"`
}

// ApplySection replaces exactly one section of the companion with the given
// value, leaving all other sections untouched. The value must be the typed
// shape returned by ParseSectionValue for the same section.
func (c *Companion) ApplySection(section Section, value interface{}) {
	switch section {
	case SectionSummary:
		if v, ok := value.(string); ok {
			c.Summary = v
		}
	case SectionHadiths:
		if v, ok := value.([]Hadith); ok {
			c.Hadiths = v
		}
	case SectionVerses:
		if v, ok := value.([]Verse); ok {
			c.Verses = v
		}
	case SectionKeyQuotes:
		if v, ok := value.([]KeyQuote); ok {
			c.KeyQuotes = v
		}
	case SectionActionItems:
		if v, ok := value.([]ActionItem); ok {
			c.ActionItems = v
		}
	case SectionNextSteps:
		if v, ok := value.([]string); ok {
			c.NextSteps = v
		}
	case SectionDiscussionQuestions:
		if v, ok := value.([]string); ok {
			c.DiscussionQuestions = v
		}
	case SectionGlossary:
		if v, ok := value.([]GlossaryEntry); ok {
			c.Glossary = v
		}
	case SectionRecommendedResources:
		if v, ok := value.([]Resource); ok {
			c.RecommendedResources = v
		}
	}
}
