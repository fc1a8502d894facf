// Package lexicon loads the embedded indicator word lists from lexicon.json.
// It prepares lowercased, deduped term lists for the indicator scanners
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed lexicon.json
var embedded []byte

// Category names carried by every pack. Scanners key off these
const (
	CategoryGender     = "gender"
	CategoryCultural   = "cultural"
	CategorySeniority  = "seniority"
	CategoryEthnicity  = "ethnicity"
	CategoryAge        = "age"
	CategoryDepartment = "department"
)

// Categories lists all indicator categories in canonical order
var Categories = []string{
	CategoryGender,
	CategoryCultural,
	CategorySeniority,
	CategoryEthnicity,
	CategoryAge,
	CategoryDepartment,
}

type rawPackV1 struct {
	Version    int                            `json:"version"`
	Meta       map[string]any                 `json:"meta"`
	Categories map[string]map[string][]string `json:"categories"`
	Style      rawStyleV1                     `json:"style"`
}

type rawStyleV1 struct {
	TechnicalTerms []string `json:"technical_terms"`
	ExampleMarkers []string `json:"example_markers"`
	AnalogyMarkers []string `json:"analogy_markers"`
	Formal         []string `json:"formal"`
	Informal       []string `json:"informal"`
	Encouragement  []string `json:"encouragement"`
}

// Style holds the response-style term lists used by the characterizer
type Style struct {
	TechnicalTerms []string
	ExampleMarkers []string
	AnalogyMarkers []string
	Formal         []string
	Informal       []string
	Encouragement  []string
}

// Pack represents a loaded lexicon: category -> list name -> terms.
// Terms are lowercased and sorted; multi-word phrases are allowed
type Pack struct {
	Version int
	Meta    map[string]any

	lists map[string]map[string][]string
	style Style
}

// the lists each category must carry; Load rejects packs missing any
var requiredLists = map[string][]string{
	CategoryGender:     {"leadership", "communal"},
	CategoryCultural:   {"individualism", "collectivism"},
	CategorySeniority:  {"advanced", "beginner"},
	CategoryEthnicity:  {"simplification", "cultural_assumption"},
	CategoryAge:        {"tech_assumption", "learning_style"},
	CategoryDepartment: {"finance", "marketing", "engineering"},
}

// Load returns the compiled pack from the embedded lexicon.json
func Load() (*Pack, error) {
	var rp rawPackV1
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("lexicon: parse lexicon.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported lexicon.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version: rp.Version,
		Meta:    rp.Meta,
		lists:   make(map[string]map[string][]string, len(rp.Categories)),
	}

	for cat, lists := range rp.Categories {
		cat = strings.ToLower(strings.TrimSpace(cat))
		if cat == "" {
			continue
		}
		m := make(map[string][]string, len(lists))
		for name, terms := range lists {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			m[name] = cleanTerms(terms)
		}
		p.lists[cat] = m
	}

	// every category and list the scanners depend on must be present and non-empty
	for cat, names := range requiredLists {
		m, ok := p.lists[cat]
		if !ok {
			return nil, fmt.Errorf("lexicon: missing category %q", cat)
		}
		for _, name := range names {
			if len(m[name]) == 0 {
				return nil, fmt.Errorf("lexicon: category %q missing list %q", cat, name)
			}
		}
	}

	p.style = Style{
		TechnicalTerms: cleanTerms(rp.Style.TechnicalTerms),
		ExampleMarkers: cleanTerms(rp.Style.ExampleMarkers),
		AnalogyMarkers: cleanTerms(rp.Style.AnalogyMarkers),
		Formal:         cleanTerms(rp.Style.Formal),
		Informal:       cleanTerms(rp.Style.Informal),
		Encouragement:  cleanTerms(rp.Style.Encouragement),
	}
	if len(p.style.TechnicalTerms) == 0 {
		return nil, fmt.Errorf("lexicon: style block missing technical_terms")
	}

	return p, nil
}

// List returns the terms for a category list, or nil if absent.
// Callers must not mutate the returned slice
func (p *Pack) List(category, name string) []string {
	m, ok := p.lists[category]
	if !ok {
		return nil
	}
	return m[name]
}

// Style returns the response-style lists
func (p *Pack) StyleLists() Style { return p.style }

// cleanTerms lowercases, trims, dedupes and sorts a term list
func cleanTerms(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	// deterministic iteration for tests/debug
	sort.Strings(out)
	return out
}
