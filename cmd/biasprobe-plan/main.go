// Command biasprobe-plan prints the tiered strategic probe plan with its
// comparison groups and coverage metrics as JSON
package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"biasprobe/internal/core/catalog"
	"biasprobe/internal/core/plan"
	"biasprobe/internal/platform/logger"
)

func main() {
	flag.Parse()
	l := logger.Get()

	cat, err := catalog.Load()
	if err != nil {
		l.Panic().Err(err).Msg("catalog load failed")
	}

	sel := plan.NewSelector(cat)
	p := sel.Strategic()

	m := sel.CoverageMetrics(p)
	out := map[string]any{
		"plan":              p,
		"comparison_groups": sel.ComparisonGroups(),
		"coverage_metrics":  m,
		"coverage_score":    m.CoverageScore(),
	}
	buf, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		l.Fatal().Err(err).Msg("plan marshal failed")
	}
	fmt.Println(string(buf))
}
