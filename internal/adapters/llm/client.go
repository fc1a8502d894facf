// Package llm implements the chat boundary against the Anthropic Messages
// API, with a deterministic mock fallback when no key is configured
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	perr "biasprobe/internal/platform/errors"
	"biasprobe/internal/platform/logger"
	"biasprobe/internal/services/probe/domain"
)

// DefaultModel is used when the config names none
const DefaultModel = "claude-sonnet-4-20250514"

// seam for tests
var now = func() time.Time { return time.Now().UTC() }

// Config for the chat boundary
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int64   // default 1000
	Temperature float64 // default 0.1, low for run-to-run consistency
}

// New returns a live client when an API key is configured, otherwise a
// deterministic mock. The degradation is loud: it logs and the returned
// port reports Mode() == "mock"
func New(cfg Config) domain.ChatPort {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIKey == "" {
		logger.Named("llm").Warn().Msg("no API key configured, degrading to deterministic mock")
		return NewMock()
	}
	return newClient(cfg)
}

// Client calls the Anthropic Messages API. It implements domain.ChatPort
type Client struct {
	api anthropic.Client
	cfg Config
}

func newClient(cfg Config) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{api: anthropic.NewClient(opts...), cfg: cfg}
}

func (c *Client) Model() string { return c.cfg.Model }
func (c *Client) Mode() string  { return "live" }

// Chat sends one probe and collects the text response with token usage
func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: anthropic.Float(c.cfg.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage(req))),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Type: "text", Text: req.SystemPrompt}}
	}

	resp, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return domain.ChatResult{}, perr.Wrapf(err, perr.ErrorCodeExternalCall, "messages api call failed")
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	return domain.ChatResult{
		Response:     text,
		Model:        string(resp.Model),
		OutputTokens: int(resp.Usage.OutputTokens),
		Timestamp:    now(),
	}, nil
}

// userMessage folds the retrieved context into the user turn, mirroring a
// RAG pipeline's final prompt assembly
func userMessage(req domain.ChatRequest) string {
	return fmt.Sprintf(`Based on the following context from our knowledge base:

%s

Please answer the following question: %s`, req.Context, req.Query)
}
