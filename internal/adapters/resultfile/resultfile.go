// Package resultfile reads and writes probe result tables as CSV. The
// profile travels as a JSON object in its own column so a table round-trips
// without a side channel for profile fields
package resultfile

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"biasprobe/internal/core/catalog"
	"biasprobe/internal/core/results"
	perr "biasprobe/internal/platform/errors"
)

var fixedColumns = []string{
	"profile",
	"query",
	"bias_dimension",
	"system_prompt",
	"timestamp",
	"response",
	"model",
	"cached",
	"response_length",
	"technical_depth",
	"explanation_style",
	"assumed_expertise",
	"formality_level",
	"encouragement_count",
	"output_tokens",
}

// Write emits the table as CSV. Indicator scores occupy one column per
// flattened category_key pair, in sorted order after the fixed columns
func Write(w io.Writer, t *results.Table) error {
	cw := csv.NewWriter(w)

	var flat []string
	if t.Len() > 0 {
		flat = t.Rows()[0].FlatColumns()
	}
	header := append(append([]string{}, fixedColumns...), flat...)
	if err := cw.Write(header); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "write csv header")
	}

	for _, row := range t.Rows() {
		rec, err := record(row, flat)
		if err != nil {
			return err
		}
		if err := cw.Write(rec); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeStorage, "write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "flush csv")
	}
	return nil
}

// WriteFile writes the table to path, truncating any existing file
func WriteFile(path string, t *results.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorage, "create %s", path)
	}
	defer f.Close()
	if err := Write(f, t); err != nil {
		return err
	}
	return f.Close()
}

func record(row results.Row, flat []string) ([]string, error) {
	pj, err := json.Marshal(row.Profile)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "marshal profile %q", row.Profile.Name)
	}
	scores := row.Flatten()
	rec := []string{
		string(pj),
		row.Query,
		row.BiasDimension,
		row.SystemPrompt,
		row.Timestamp.UTC().Format(time.RFC3339Nano),
		row.Response,
		row.Model,
		strconv.FormatBool(row.Cached),
		strconv.Itoa(row.ResponseLength),
		strconv.Itoa(row.TechnicalDepth),
		row.ExplanationStyle,
		row.AssumedExpertise,
		strconv.Itoa(row.FormalityLevel),
		strconv.Itoa(row.EncouragementCount),
		strconv.Itoa(row.OutputTokens),
	}
	for _, col := range flat {
		rec = append(rec, strconv.FormatFloat(scores[col], 'g', -1, 64))
	}
	return rec, nil
}

// Read parses a CSV written by Write back into a table. Columns beyond the
// fixed set are treated as flattened indicator scores and regrouped under
// categories. Malformed cells fail the whole read rather than silently
// dropping rows
func Read(r io.Reader, categories []string) (*results.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return results.NewTable(nil), nil
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeMalformedInput, "read csv header")
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range fixedColumns {
		if _, ok := idx[name]; !ok {
			return nil, perr.MalformedInputf("results csv missing column %q", name)
		}
	}

	t := results.NewTable(nil)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeMalformedInput, "read csv line %d", line)
		}
		row, err := parseRow(rec, header, idx, line)
		if err != nil {
			return nil, err
		}
		flat, err := flatScores(rec, header, line)
		if err != nil {
			return nil, err
		}
		row.Indicators = results.Unflatten(flat, categories)
		t.Append(row)
	}
	return t, nil
}

// ReadFile reads a results table from path
func ReadFile(path string, categories []string) (*results.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "open %s", path)
	}
	defer f.Close()
	return Read(f, categories)
}

func parseRow(rec, header []string, idx map[string]int, line int) (results.Row, error) {
	get := func(name string) string { return rec[idx[name]] }

	var p catalog.Profile
	if err := json.Unmarshal([]byte(get("profile")), &p); err != nil {
		return results.Row{}, perr.Wrapf(err, perr.ErrorCodeMalformedInput, "line %d: profile json", line)
	}
	ts, err := time.Parse(time.RFC3339Nano, get("timestamp"))
	if err != nil {
		return results.Row{}, perr.Wrapf(err, perr.ErrorCodeMalformedInput, "line %d: timestamp", line)
	}
	cached, err := strconv.ParseBool(get("cached"))
	if err != nil {
		return results.Row{}, perr.Wrapf(err, perr.ErrorCodeMalformedInput, "line %d: cached", line)
	}
	ints := make(map[string]int, 5)
	for _, name := range []string{"response_length", "technical_depth", "formality_level", "encouragement_count", "output_tokens"} {
		v, err := strconv.Atoi(get(name))
		if err != nil {
			return results.Row{}, perr.Wrapf(err, perr.ErrorCodeMalformedInput, "line %d: %s", line, name)
		}
		ints[name] = v
	}

	return results.Row{
		Profile:            p,
		Query:              get("query"),
		BiasDimension:      get("bias_dimension"),
		SystemPrompt:       get("system_prompt"),
		Timestamp:          ts,
		Response:           get("response"),
		Model:              get("model"),
		Cached:             cached,
		ResponseLength:     ints["response_length"],
		TechnicalDepth:     ints["technical_depth"],
		ExplanationStyle:   get("explanation_style"),
		AssumedExpertise:   get("assumed_expertise"),
		FormalityLevel:     ints["formality_level"],
		EncouragementCount: ints["encouragement_count"],
		OutputTokens:       ints["output_tokens"],
	}, nil
}

func flatScores(rec, header []string, line int) (map[string]float64, error) {
	fixed := make(map[string]bool, len(fixedColumns))
	for _, name := range fixedColumns {
		fixed[name] = true
	}
	out := make(map[string]float64)
	for i, name := range header {
		if fixed[name] {
			continue
		}
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeMalformedInput, "line %d: %s", line, name)
		}
		out[name] = v
	}
	return out, nil
}
