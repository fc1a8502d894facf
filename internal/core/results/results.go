// Package results builds the flat result table joining profile metadata,
// query metadata, response-derived metrics and indicator scores
package results

import (
	"sort"
	"time"

	"biasprobe/internal/core/catalog"
	"biasprobe/internal/core/indicator"
)

// Row is one probe outcome: a profile×query pair with the response and
// everything derived from it. Indicator scores stay nested here; Flatten
// exposes them as stable category-prefixed columns
type Row struct {
	Profile       catalog.Profile
	Query         string
	BiasDimension string
	SystemPrompt  string
	Timestamp     time.Time

	Response string
	Model    string
	Cached   bool

	ResponseLength     int
	TechnicalDepth     int
	ExplanationStyle   string
	AssumedExpertise   string
	FormalityLevel     int
	EncouragementCount int
	OutputTokens       int

	Indicators indicator.Scores
}

// BuildRow joins one probe outcome into a Row
func BuildRow(
	p catalog.Profile,
	q catalog.Query,
	response string,
	traits indicator.Traits,
	scores indicator.Scores,
) Row {
	return Row{
		Profile:            p,
		Query:              q.Text,
		BiasDimension:      q.Dimension,
		Response:           response,
		ResponseLength:     traits.Length,
		TechnicalDepth:     traits.TechnicalDepth,
		ExplanationStyle:   traits.ExplanationStyle,
		AssumedExpertise:   traits.AssumedExpertise,
		FormalityLevel:     traits.FormalityLevel,
		EncouragementCount: traits.EncouragementCount,
		Indicators:         scores,
	}
}

// Indicator returns the flattened indicator value for category cat and
// sub-key key, defaulting to 0 when absent so aggregation never
// special-cases missing columns
func (r Row) Indicator(cat, key string) float64 {
	sub, ok := r.Indicators[cat]
	if !ok {
		return 0
	}
	return sub[key]
}

// Flatten exposes the nested indicator scores as `<category>_<key>` columns
func (r Row) Flatten() map[string]float64 {
	out := make(map[string]float64, 20)
	for cat, sub := range r.Indicators {
		for key, v := range sub {
			out[cat+"_"+key] = v
		}
	}
	return out
}

// FlatColumns lists the row's flattened indicator column names in
// deterministic order (category, then key, both ascending)
func (r Row) FlatColumns() []string {
	cols := make([]string, 0, 20)
	for cat, sub := range r.Indicators {
		for key := range sub {
			cols = append(cols, cat+"_"+key)
		}
	}
	sort.Strings(cols)
	return cols
}

// Unflatten rebuilds a nested indicator score map from `<category>_<key>`
// columns. Only known category prefixes are consumed; other columns are
// ignored. Inverse of Row.Flatten for every valid score map
func Unflatten(flat map[string]float64, categories []string) indicator.Scores {
	out := make(indicator.Scores, len(categories))
	for _, cat := range categories {
		prefix := cat + "_"
		for col, v := range flat {
			if len(col) > len(prefix) && col[:len(prefix)] == prefix {
				sub, ok := out[cat]
				if !ok {
					sub = make(map[string]float64, 4)
					out[cat] = sub
				}
				sub[col[len(prefix):]] = v
			}
		}
	}
	return out
}

// Table is an ordered collection of rows. Insertion order is generation
// order; duplicates across reruns are retained
type Table struct {
	rows []Row
}

// NewTable copies rows into a Table
func NewTable(rows []Row) *Table {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return &Table{rows: cp}
}

// Append adds a row, preserving insertion order
func (t *Table) Append(r Row) { t.rows = append(t.rows, r) }

// Len reports the number of rows
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the underlying rows. Callers must treat the slice as read-only
func (t *Table) Rows() []Row { return t.rows }

// Filter returns a new Table holding rows passing pred, in order
func (t *Table) Filter(pred func(Row) bool) *Table {
	var out []Row
	for _, r := range t.rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return &Table{rows: out}
}

// GroupBy buckets rows by the given key function, preserving row order
// within each bucket
func (t *Table) GroupBy(key func(Row) string) map[string][]Row {
	out := make(map[string][]Row)
	for _, r := range t.rows {
		k := key(r)
		out[k] = append(out[k], r)
	}
	return out
}
