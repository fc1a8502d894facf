package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"biasprobe/internal/core/catalog"
	"biasprobe/internal/core/lexicon"
	"biasprobe/internal/core/plan"
	perr "biasprobe/internal/platform/errors"
	"biasprobe/internal/services/probe/domain"
)

var fixedTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

type stubChat struct {
	calls    int
	failWhen string // fail any request whose query contains this
}

func (s *stubChat) Chat(_ context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	s.calls++
	if s.failWhen != "" && strings.Contains(req.Query, s.failWhen) {
		return domain.ChatResult{}, perr.ExternalCallf("upstream rejected request")
	}
	return domain.ChatResult{
		Response:     "You will lead the team. " + req.Query,
		Model:        "test-model",
		OutputTokens: 7,
		Timestamp:    fixedTime,
	}, nil
}

func (s *stubChat) Model() string { return "test-model" }
func (s *stubChat) Mode() string  { return "mock" }

type stubCache struct {
	entries map[string]domain.CacheEntry
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]domain.CacheEntry)}
}

func (c *stubCache) Get(_ context.Context, key string) (domain.CacheEntry, bool, error) {
	e, ok := c.entries[key]
	return e, ok, nil
}

func (c *stubCache) Set(_ context.Context, key string, e domain.CacheEntry) error {
	c.sets++
	c.entries[key] = e
	return nil
}

func fixtures(t *testing.T) (*catalog.Catalog, *lexicon.Pack) {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	pack, err := lexicon.Load()
	if err != nil {
		t.Fatalf("lexicon.Load: %v", err)
	}
	return cat, pack
}

func combosFor(t *testing.T, cat *catalog.Catalog, n int) []plan.Combo {
	t.Helper()
	var out []plan.Combo
	for _, p := range cat.Profiles() {
		for _, q := range cat.Queries() {
			out = append(out, plan.Combo{Profile: p, Query: q})
			if len(out) == n {
				return out
			}
		}
	}
	return out
}

func TestRun_SampleLimit(t *testing.T) {
	cat, pack := fixtures(t)
	chat := &stubChat{}
	svc := New(chat, newStubCache(), nil, cat, pack, Config{})

	tbl, sum, err := svc.Run(context.Background(), domain.Input{Samples: 3})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Total != 3 || sum.Completed != 3 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if chat.calls != 3 {
		t.Fatalf("chat calls = %d, want 3", chat.calls)
	}
	if tbl.Len() != 3 {
		t.Fatalf("rows = %d, want 3", tbl.Len())
	}
	if sum.RunID == "" || sum.Mode != "mock" {
		t.Fatalf("run id / mode = %q / %q", sum.RunID, sum.Mode)
	}
}

func TestRunCombos_RowContents(t *testing.T) {
	cat, pack := fixtures(t)
	svc := New(&stubChat{}, newStubCache(), nil, cat, pack, Config{})
	combos := combosFor(t, cat, 1)

	tbl, _, err := svc.RunCombos(context.Background(), combos, domain.Input{})
	if err != nil {
		t.Fatalf("RunCombos: %v", err)
	}
	r := tbl.Rows()[0]
	if r.Profile.Name != combos[0].Profile.Name {
		t.Fatalf("row profile = %q", r.Profile.Name)
	}
	if !strings.Contains(r.SystemPrompt, "Current user context:") {
		t.Fatalf("system prompt missing context block: %q", r.SystemPrompt)
	}
	if r.Model != "test-model" || r.OutputTokens != 7 || !r.Timestamp.Equal(fixedTime) {
		t.Fatalf("row call metadata = %+v", r)
	}
	if r.Cached {
		t.Fatalf("fresh row marked cached")
	}
	if r.ResponseLength == 0 || r.Indicator("gender", "leadership_language_count") == 0 {
		t.Fatalf("row not characterized: %+v", r)
	}
}

func TestRunCombos_CacheHit(t *testing.T) {
	cat, pack := fixtures(t)
	chat := &stubChat{}
	cache := newStubCache()
	svc := New(chat, cache, nil, cat, pack, Config{})
	combos := combosFor(t, cat, 2)

	// first pass fills the cache
	if _, sum, err := svc.RunCombos(context.Background(), combos, domain.Input{}); err != nil || sum.CacheHits != 0 {
		t.Fatalf("first pass: %v, %+v", err, sum)
	}
	if cache.sets != 2 {
		t.Fatalf("cache writes = %d, want 2", cache.sets)
	}

	// second pass must not call out at all
	tbl, sum, err := svc.RunCombos(context.Background(), combos, domain.Input{})
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if chat.calls != 2 {
		t.Fatalf("chat calls = %d, want 2 (no calls on the cached pass)", chat.calls)
	}
	if sum.CacheHits != 2 || sum.Completed != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	for _, r := range tbl.Rows() {
		if !r.Cached {
			t.Fatalf("cached pass produced uncached row")
		}
	}
}

func TestRunCombos_SkipOnError(t *testing.T) {
	cat, pack := fixtures(t)
	queries := cat.Queries()
	chat := &stubChat{failWhen: queries[1].Text}
	svc := New(chat, newStubCache(), nil, cat, pack, Config{})
	combos := combosFor(t, cat, 3)

	tbl, sum, err := svc.RunCombos(context.Background(), combos, domain.Input{})
	if err != nil {
		t.Fatalf("RunCombos: %v", err)
	}
	if sum.Failed != 1 || sum.Completed != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	if tbl.Len() != 2 {
		t.Fatalf("rows = %d, want 2 (failed row skipped)", tbl.Len())
	}
}

func TestRunCombos_DryRun(t *testing.T) {
	cat, pack := fixtures(t)
	chat := &stubChat{}
	svc := New(chat, newStubCache(), nil, cat, pack, Config{})
	combos := combosFor(t, cat, 5)

	tbl, sum, err := svc.RunCombos(context.Background(), combos, domain.Input{DryRun: true})
	if err != nil {
		t.Fatalf("RunCombos: %v", err)
	}
	if chat.calls != 0 {
		t.Fatalf("dry run called out %d times", chat.calls)
	}
	if tbl.Len() != 0 || sum.Total != 5 {
		t.Fatalf("rows = %d, summary = %+v", tbl.Len(), sum)
	}
}

func TestRunCombos_Cancelled(t *testing.T) {
	cat, pack := fixtures(t)
	svc := New(&stubChat{}, newStubCache(), nil, cat, pack, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.RunCombos(ctx, combosFor(t, cat, 2), domain.Input{})
	if err == nil {
		t.Fatalf("cancelled run returned nil error")
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("m", "sys", "q", "ctx")
	if a != CacheKey("m", "sys", "q", "ctx") {
		t.Fatalf("cache key not deterministic")
	}
	if a == CacheKey("m2", "sys", "q", "ctx") {
		t.Fatalf("model not part of cache identity")
	}
	if a == CacheKey("m", "sys", "qc", "tx") {
		t.Fatalf("field boundaries not separated")
	}
}

func TestPersonalizedPrompt(t *testing.T) {
	cat, _ := fixtures(t)
	p, ok := cat.ProfileByName("Sarah Chen")
	if !ok {
		t.Fatalf("profile missing")
	}
	got := PersonalizedPrompt(p)
	if !strings.HasPrefix(got, BaseSystemPrompt) {
		t.Fatalf("base prompt not preserved")
	}
	if !strings.Contains(got, "Current user context:\nUser: Sarah Chen") {
		t.Fatalf("context block missing: %q", got)
	}
}

func TestKeywordRetriever(t *testing.T) {
	r := KeywordRetriever{}
	if got := r.Retrieve("How does our Authentication flow refresh tokens?"); !strings.Contains(got, "OAuth2") {
		t.Fatalf("authentication snippet not selected: %q", got)
	}
	if got := r.Retrieve("Explain our microservices architecture"); !strings.Contains(got, "Kubernetes orchestration") {
		t.Fatalf("microservices snippet not selected: %q", got)
	}
	if got := r.Retrieve("What is the dress code?"); got != NoContextFound {
		t.Fatalf("fallback = %q", got)
	}
}
