// Command biasprobe-analyze recomputes bias statistics from a previously
// written result table, without touching the chat boundary
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"biasprobe/internal/adapters/resultfile"
	"biasprobe/internal/core/analysis"
	"biasprobe/internal/core/lexicon"
	"biasprobe/internal/platform/logger"
)

func main() {
	var (
		in     = flag.String("in", "bias_results.csv", "result table to analyze")
		dim    = flag.String("dimension", "all", "dimension to analyze (all, gender, seniority, department, cultural, ethnicity, age, intersectional)")
		report = flag.String("report", "", "write the report to this path instead of stdout")
	)
	flag.Parse()

	_ = godotenv.Load()
	l := logger.Get()

	tbl, err := resultfile.ReadFile(*in, lexicon.Categories)
	if err != nil {
		l.Fatal().Err(err).Str("path", *in).Msg("result read failed")
	}
	l.Info().Str("path", *in).Int("rows", tbl.Len()).Msg("results loaded")

	var rep analysis.Report
	if *dim == "all" {
		rep = analysis.AnalyzeAll(tbl)
	} else {
		d, ok := analysis.ParseDimension(*dim)
		if !ok {
			l.Fatal().Str("dimension", *dim).Msg("unknown dimension")
		}
		rep = analysis.Analyze(tbl, d)
	}

	buf, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		l.Fatal().Err(err).Msg("report marshal failed")
	}
	if *report == "" {
		fmt.Println(string(buf))
		return
	}
	if err := os.WriteFile(*report, buf, 0o644); err != nil {
		l.Fatal().Err(err).Str("path", *report).Msg("report write failed")
	}
	l.Info().Str("path", *report).Msg("report written")
}
