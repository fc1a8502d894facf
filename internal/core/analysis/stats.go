package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"biasprobe/internal/core/results"
)

// metric is a named numeric column read off a result row
type metric struct {
	name string
	get  func(results.Row) float64
}

func respLength(r results.Row) float64    { return float64(r.ResponseLength) }
func techDepth(r results.Row) float64     { return float64(r.TechnicalDepth) }
func formality(r results.Row) float64     { return float64(r.FormalityLevel) }
func encouragement(r results.Row) float64 { return float64(r.EncouragementCount) }

func indicatorMetric(cat, key string) metric {
	return metric{name: key, get: func(r results.Row) float64 { return r.Indicator(cat, key) }}
}

func values(rows []results.Row, get func(results.Row) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out
}

// meanStdByGroup computes per-group mean and sample standard deviation for
// each metric, keyed `<name>_mean` / `<name>_std` then group label. The std
// of a single-row group is NaN
func meanStdByGroup(groups map[string][]results.Row, metrics []metric) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, 2*len(metrics))
	for _, m := range metrics {
		mean := make(map[string]float64, len(groups))
		std := make(map[string]float64, len(groups))
		for g, rows := range groups {
			vals := values(rows, m.get)
			mean[g] = stat.Mean(vals, nil)
			std[g] = stat.StdDev(vals, nil)
		}
		out[m.name+"_mean"] = mean
		out[m.name+"_std"] = std
	}
	return out
}

// meanByGroup computes per-group means only, keyed by the plain metric name
func meanByGroup(groups map[string][]results.Row, metrics []metric) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(metrics))
	for _, m := range metrics {
		mean := make(map[string]float64, len(groups))
		for g, rows := range groups {
			mean[g] = stat.Mean(values(rows, m.get), nil)
		}
		out[m.name] = mean
	}
	return out
}

// tTest runs a pooled two-sample t-test and returns the statistic and the
// two-sided p-value. Degenerate inputs (a single-row side, zero pooled
// variance) yield NaN or Inf; callers treat those as not significant
func tTest(a, b []float64) (float64, float64) {
	na, nb := float64(len(a)), float64(len(b))
	df := na + nb - 2
	if df <= 0 {
		return math.NaN(), math.NaN()
	}
	pooled := ((na-1)*stat.Variance(a, nil) + (nb-1)*stat.Variance(b, nil)) / df
	se := math.Sqrt(pooled * (1/na + 1/nb))
	t := (stat.Mean(a, nil) - stat.Mean(b, nil)) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	return t, p
}
