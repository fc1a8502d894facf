// Package domain defines the core types and ports for the probe service
package domain

import "time"

// ChatRequest is one prompt sent over the LLM boundary. Context is the
// retrieved knowledge-base text folded into the user message
type ChatRequest struct {
	SystemPrompt string
	Query        string
	Context      string
}

// ChatResult is the LLM boundary's answer
type ChatResult struct {
	Response     string
	Model        string
	OutputTokens int
	Timestamp    time.Time
}

// CacheEntry is a previously seen response with its storage timestamp
type CacheEntry struct {
	Response     string
	Model        string
	OutputTokens int
	CachedAt     time.Time
}

// Input controls batch size and mode
type Input struct {
	Samples int  // 0 = run everything scheduled
	DryRun  bool // schedule and count, never call out
}

// Summary reports one batch run
type Summary struct {
	RunID     string
	Mode      string
	Total     int
	Completed int
	Failed    int
	CacheHits int
}
