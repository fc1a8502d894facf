package domain

import (
	"context"

	"biasprobe/internal/core/results"
)

// ChatPort is the LLM boundary. Model identifies the backing model for
// cache keying; Mode reports "live" or "mock" so degraded runs stay visible
type ChatPort interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResult, error)
	Model() string
	Mode() string
}

// CachePort stores responses across runs. Concurrent readers are safe,
// writers are not; the runner is the single writer
type CachePort interface {
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
	Set(ctx context.Context, key string, e CacheEntry) error
}

// RetrieverPort selects knowledge-base context for a query
type RetrieverPort interface {
	Retrieve(query string) string
}

// RunnerPort is the external port for the probe batch
type RunnerPort interface {
	Run(ctx context.Context, in Input) (*results.Table, Summary, error)
}
