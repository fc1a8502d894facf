// Package service implements the probe batch runner
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"biasprobe/internal/core/catalog"
	"biasprobe/internal/core/indicator"
	"biasprobe/internal/core/lexicon"
	"biasprobe/internal/core/plan"
	"biasprobe/internal/core/results"
	"biasprobe/internal/platform/logger"
	"biasprobe/internal/services/probe/domain"
)

// Config for the probe service
type Config struct {
	Delay time.Duration // applied after live calls only; 0 = no pacing
}

// Service implements domain.RunnerPort. Execution is strictly sequential:
// one outstanding call at a time, the result table mutated only by this
// goroutine
type Service struct {
	Chat      domain.ChatPort
	Cache     domain.CachePort
	Retriever domain.RetrieverPort
	Cat       *catalog.Catalog
	Cfg       Config

	ext  *indicator.Extractor
	char *indicator.Characterizer
}

// New constructs a probe service. A nil retriever falls back to the
// built-in keyword snippets
func New(chat domain.ChatPort, cache domain.CachePort, retr domain.RetrieverPort, cat *catalog.Catalog, pack *lexicon.Pack, cfg Config) *Service {
	if retr == nil {
		retr = KeywordRetriever{}
	}
	return &Service{
		Chat:      chat,
		Cache:     cache,
		Retriever: retr,
		Cat:       cat,
		Cfg:       cfg,
		ext:       indicator.NewExtractor(pack),
		char:      indicator.NewCharacterizer(pack),
	}
}

// CacheKey derives the cache identity of one probe from everything that
// shapes the response
func CacheKey(model, systemPrompt, query, ragContext string) string {
	h := sha256.New()
	for _, part := range []string{model, systemPrompt, query, ragContext} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Run probes the full profile×query grid in catalog order
func (s *Service) Run(ctx context.Context, in domain.Input) (*results.Table, domain.Summary, error) {
	profiles := s.Cat.Profiles()
	queries := s.Cat.Queries()
	combos := make([]plan.Combo, 0, len(profiles)*len(queries))
	for _, p := range profiles {
		for _, q := range queries {
			combos = append(combos, plan.Combo{Profile: p, Query: q})
		}
	}
	return s.RunCombos(ctx, combos, in)
}

// RunPlan probes a strategic plan's combos, tier order
func (s *Service) RunPlan(ctx context.Context, p plan.Plan, in domain.Input) (*results.Table, domain.Summary, error) {
	return s.RunCombos(ctx, p.Combos(), in)
}

// RunCombos probes the given combos sequentially. A failed call is logged
// and skipped, never aborting the batch; only context cancellation stops it
func (s *Service) RunCombos(ctx context.Context, combos []plan.Combo, in domain.Input) (*results.Table, domain.Summary, error) {
	if in.Samples > 0 && in.Samples < len(combos) {
		combos = combos[:in.Samples]
	}

	sum := domain.Summary{
		RunID: uuid.NewString(),
		Mode:  s.Chat.Mode(),
		Total: len(combos),
	}
	ctx = logger.WithRun(ctx, sum.RunID, "")
	log := logger.C(ctx)
	log.Info().
		Int("combos", sum.Total).
		Str("mode", sum.Mode).
		Bool("dry_run", in.DryRun).
		Msg("probe batch starting")

	tbl := results.NewTable(nil)
	for i, c := range combos {
		if err := ctx.Err(); err != nil {
			return tbl, sum, err
		}
		if in.DryRun {
			log.Debug().
				Int("n", i+1).
				Str("profile", c.Profile.Name).
				Str("dimension", c.Query.Dimension).
				Msg("dry run, skipping call")
			continue
		}

		row, cached, err := s.probeOne(ctx, c)
		if err != nil {
			sum.Failed++
			log.Warn().Err(err).
				Int("n", i+1).
				Str("profile", c.Profile.Name).
				Str("dimension", c.Query.Dimension).
				Msg("probe failed, row skipped")
			continue
		}
		if cached {
			sum.CacheHits++
		}
		sum.Completed++
		tbl.Append(row)

		if !cached && s.Cfg.Delay > 0 {
			if err := sleep(ctx, s.Cfg.Delay); err != nil {
				return tbl, sum, err
			}
		}
	}

	log.Info().
		Int("completed", sum.Completed).
		Int("failed", sum.Failed).
		Int("cache_hits", sum.CacheHits).
		Msg("probe batch finished")
	return tbl, sum, nil
}

// probeOne resolves one combo through the cache or the chat port and
// builds its result row
func (s *Service) probeOne(ctx context.Context, c plan.Combo) (results.Row, bool, error) {
	prompt := PersonalizedPrompt(c.Profile)
	ragCtx := s.Retriever.Retrieve(c.Query.Text)
	key := CacheKey(s.Chat.Model(), prompt, c.Query.Text, ragCtx)

	var (
		res    domain.ChatResult
		cached bool
	)
	if s.Cache != nil {
		entry, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			logger.C(ctx).Warn().Err(err).Msg("cache read failed, calling through")
		} else if ok {
			res = domain.ChatResult{
				Response:     entry.Response,
				Model:        entry.Model,
				OutputTokens: entry.OutputTokens,
				Timestamp:    entry.CachedAt,
			}
			cached = true
		}
	}
	if !cached {
		var err error
		res, err = s.Chat.Chat(ctx, domain.ChatRequest{
			SystemPrompt: prompt,
			Query:        c.Query.Text,
			Context:      ragCtx,
		})
		if err != nil {
			return results.Row{}, false, err
		}
		if s.Cache != nil {
			err := s.Cache.Set(ctx, key, domain.CacheEntry{
				Response:     res.Response,
				Model:        res.Model,
				OutputTokens: res.OutputTokens,
				CachedAt:     res.Timestamp,
			})
			if err != nil {
				logger.C(ctx).Warn().Err(err).Msg("cache write failed")
			}
		}
	}

	row := results.BuildRow(c.Profile, c.Query, res.Response, s.char.Characterize(res.Response), s.ext.Extract(res.Response))
	row.SystemPrompt = prompt
	row.Model = res.Model
	row.Timestamp = res.Timestamp
	row.OutputTokens = res.OutputTokens
	row.Cached = cached
	return row, cached, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
