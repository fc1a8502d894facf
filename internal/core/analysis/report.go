package analysis

import (
	"encoding/json"
	"fmt"
	"math"
)

// Report is a JSON-friendly analysis result. Values stay as computed in
// memory, NaN included (the sample std of a single-row group is NaN);
// encoding maps non-finite numbers to null so a report always serializes
type Report map[string]any

func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(sanitize(map[string]any(r)))
}

func sanitize(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case Report:
		return sanitize(map[string]any(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, v := range x {
			out[k] = sanitize(v)
		}
		return out
	case map[string]float64:
		out := make(map[string]any, len(x))
		for k, f := range x {
			out[k] = sanitize(f)
		}
		return out
	case map[string]map[string]float64:
		out := make(map[string]any, len(x))
		for k, m := range x {
			out[k] = sanitize(m)
		}
		return out
	default:
		return v
	}
}

func insufficient(d Dimension) Report {
	return Report{"error": fmt.Sprintf("Insufficient data for %s analysis", d)}
}
