package models

import (
	"encoding/json"
	"fmt"
)

// Section is a closed enum over the independently regenerable companion
// sections. Using typed constants with total switches (instead of a runtime
// string-array membership check) means an unknown section name can never
// silently fall through.
type Section string

const (
	SectionHadiths              Section = "hadiths"
	SectionVerses               Section = "verses"
	SectionKeyQuotes            Section = "keyQuotes"
	SectionActionItems          Section = "actionItems"
	SectionNextSteps            Section = "nextSteps"
	SectionDiscussionQuestions  Section = "discussionQuestions"
	SectionGlossary             Section = "glossary"
	SectionRecommendedResources Section = "recommendedResources"
	SectionSummary              Section = "summary"
)

// AllSections lists every regenerable section in a stable order
var AllSections = []Section{
	SectionHadiths,
	SectionVerses,
	SectionKeyQuotes,
	SectionActionItems,
	SectionNextSteps,
	SectionDiscussionQuestions,
	SectionGlossary,
	SectionRecommendedResources,
	SectionSummary,
}

// ParseSection converts a request string into a Section, rejecting anything
// outside the fixed enum
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionHadiths, SectionVerses, SectionKeyQuotes, SectionActionItems,
		SectionNextSteps, SectionDiscussionQuestions, SectionGlossary,
		SectionRecommendedResources, SectionSummary:
		return Section(s), nil
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// Key returns the JSON key the section occupies in a companion document
func (s Section) Key() string {
	return string(s)
}

// MaxTokens returns the completion token budget for regenerating the section.
// Multi-item sections get a larger budget than the single-paragraph summary.
func (s Section) MaxTokens() int {
	switch s {
	case SectionHadiths, SectionVerses:
		return 3000
	case SectionKeyQuotes, SectionActionItems, SectionRecommendedResources, SectionGlossary:
		return 2000
	case SectionNextSteps, SectionDiscussionQuestions:
		return 1500
	case SectionSummary:
		return 800
	}
	return 2000
}

// ParseSectionValue decodes a section payload (the value under the section's
// JSON key) into its typed shape. Unknown sections cannot reach this point;
// the total switch still returns an error rather than a zero value if they do.
func ParseSectionValue(section Section, raw json.RawMessage) (interface{}, error) {
	switch section {
	case SectionSummary:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("summary must be a string: %w", err)
		}
		return v, nil
	case SectionHadiths:
		var v []Hadith
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("hadiths must be a list: %w", err)
		}
		return v, nil
	case SectionVerses:
		var v []Verse
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("verses must be a list: %w", err)
		}
		return v, nil
	case SectionKeyQuotes:
		var v []KeyQuote
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("keyQuotes must be a list: %w", err)
		}
		return v, nil
	case SectionActionItems:
		var v []ActionItem
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("actionItems must be a list: %w", err)
		}
		return v, nil
	case SectionNextSteps:
		var v []string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("nextSteps must be a list of strings: %w", err)
		}
		return v, nil
	case SectionDiscussionQuestions:
		var v []string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("discussionQuestions must be a list of strings: %w", err)
		}
		return v, nil
	case SectionGlossary:
		var v []GlossaryEntry
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("glossary must be a list: %w", err)
		}
		return v, nil
	case SectionRecommendedResources:
		var v []Resource
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("recommendedResources must be a list: %w", err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown section %q", section)
}
