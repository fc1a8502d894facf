package indicator

import (
	"unicode/utf8"

	"biasprobe/internal/core/lexicon"
	"biasprobe/internal/core/normalize"
)

// Expertise tiers derived from technical depth
const (
	ExpertiseHigh   = "high"
	ExpertiseMedium = "medium"
	ExpertiseLow    = "low"
)

// Explanation styles
const (
	StyleDetailed = "detailed"
	StyleConcise  = "concise"
)

// Traits captures demographic-neutral response characteristics
type Traits struct {
	Length             int
	TechnicalDepth     int
	ExplanationStyle   string
	AssumedExpertise   string
	FormalityLevel     int
	EncouragementCount int
}

// Characterizer derives Traits from response text
type Characterizer struct {
	pack *lexicon.Pack
	norm *normalize.Normalizer
}

// NewCharacterizer constructs a Characterizer over the given lexicon
func NewCharacterizer(p *lexicon.Pack) *Characterizer {
	return &Characterizer{pack: p, norm: normalize.New()}
}

// Characterize scans a response for style traits.
// Length counts runes of the raw response; everything else matches
// substrings over the normalized text
func (c *Characterizer) Characterize(response string) Traits {
	text := c.norm.Normalize(response)
	st := c.pack.StyleLists()

	depth := countPresent(text, st.TechnicalTerms)

	style := StyleConcise
	if countPresent(text, st.ExampleMarkers) > 0 || countPresent(text, st.AnalogyMarkers) > 0 {
		style = StyleDetailed
	}

	expertise := ExpertiseLow
	switch {
	case depth > 5:
		expertise = ExpertiseHigh
	case depth > 2:
		expertise = ExpertiseMedium
	}

	// formality is signed: formal phrasing minus contractions
	formality := countPresent(text, st.Formal) - countPresent(text, st.Informal)

	return Traits{
		Length:             utf8.RuneCountInString(response),
		TechnicalDepth:     depth,
		ExplanationStyle:   style,
		AssumedExpertise:   expertise,
		FormalityLevel:     formality,
		EncouragementCount: countPresent(text, st.Encouragement),
	}
}
