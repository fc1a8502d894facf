// Command biasprobe-run executes the probe batch: every profile/query combo
// (or the strategic subset) goes through the chat boundary, and the scored
// rows land in a CSV alongside a full analysis report
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"biasprobe/internal/adapters/llm"
	"biasprobe/internal/adapters/respcache"
	"biasprobe/internal/adapters/resultfile"
	"biasprobe/internal/core/analysis"
	"biasprobe/internal/core/catalog"
	"biasprobe/internal/core/lexicon"
	"biasprobe/internal/core/plan"
	"biasprobe/internal/core/results"
	"biasprobe/internal/core/version"
	"biasprobe/internal/platform/config"
	"biasprobe/internal/platform/logger"
	"biasprobe/internal/services/probe/domain"
	"biasprobe/internal/services/probe/service"
)

func main() {
	var (
		samples   = flag.Int("samples", 0, "limit the number of probes (0 = all)")
		out       = flag.String("out", "bias_results.csv", "result table output path")
		report    = flag.String("report", "bias_report.json", "analysis report output path (empty = skip)")
		delay     = flag.Duration("delay", 500*time.Millisecond, "pause after each live call")
		dryRun    = flag.Bool("dry-run", false, "plan the probes but skip all calls")
		strategic = flag.Bool("strategic", false, "run the tiered strategic plan instead of the full grid")
	)
	flag.Parse()

	_ = godotenv.Load()
	root := config.New()
	l := logger.Get()
	bi := version.Info()
	l.Info().Str("version", bi.Version).Str("commit", bi.Commit).Msg("biasprobe-run starting")

	pack, err := lexicon.Load()
	if err != nil {
		l.Panic().Err(err).Msg("lexicon load failed")
	}
	cat, err := catalog.Load()
	if err != nil {
		l.Panic().Err(err).Msg("catalog load failed")
	}

	llmCfg := root.Prefix("PROBE_LLM_")
	chat := llm.New(llm.Config{
		APIKey:      root.MayString("ANTHROPIC_API_KEY", ""),
		Model:       llmCfg.MayString("MODEL", llm.DefaultModel),
		BaseURL:     llmCfg.MayString("BASE_URL", ""),
		MaxTokens:   int64(llmCfg.MayInt("MAX_TOKENS", 1000)),
		Temperature: llmCfg.MayFloat64("TEMPERATURE", 0.1),
	})

	cache, err := respcache.Open(root.Prefix("PROBE_CACHE_").MayString("PATH", "probe_cache.db"))
	if err != nil {
		l.Panic().Err(err).Msg("cache open failed")
	}
	defer func() {
		if err := cache.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close cache")
		}
	}()

	svc := service.New(chat, cache, nil, cat, pack, service.Config{Delay: *delay})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := domain.Input{Samples: *samples, DryRun: *dryRun}
	var (
		tbl *results.Table
		sum domain.Summary
	)
	if *strategic {
		p := plan.NewSelector(cat).Strategic()
		tbl, sum, err = svc.RunPlan(ctx, p, in)
	} else {
		tbl, sum, err = svc.Run(ctx, in)
	}
	if err != nil {
		l.Fatal().Err(err).Msg("probe run failed")
	}
	l.Info().
		Str("run_id", sum.RunID).
		Str("mode", sum.Mode).
		Int("completed", sum.Completed).
		Int("failed", sum.Failed).
		Int("cache_hits", sum.CacheHits).
		Msg("probe run finished")

	if *dryRun {
		return
	}
	if err := resultfile.WriteFile(*out, tbl); err != nil {
		l.Fatal().Err(err).Str("path", *out).Msg("result write failed")
	}
	l.Info().Str("path", *out).Int("rows", tbl.Len()).Msg("results written")

	if *report == "" {
		return
	}
	rep := analysis.AnalyzeAll(tbl)
	buf, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		l.Fatal().Err(err).Msg("report marshal failed")
	}
	if err := os.WriteFile(*report, buf, 0o644); err != nil {
		l.Fatal().Err(err).Str("path", *report).Msg("report write failed")
	}
	l.Info().Str("path", *report).Msg("report written")
}
