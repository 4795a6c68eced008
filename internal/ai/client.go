// Package ai provides the text-completion port and its provider
// implementations. Callers depend on CompletionClient only; the concrete
// provider is selected by configuration at startup.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

// Usage reports token accounting for one completion call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	EstimatedCostUSD float64
}

// Request describes one completion call. When ResponseSchema is non-nil the
// provider must constrain the response to that JSON schema and the returned
// string is guaranteed to parse as JSON.
type Request struct {
	SystemPrompt   string
	UserInput      string
	Temperature    float32
	MaxTokens      int
	SchemaName     string
	ResponseSchema map[string]interface{}
}

// CompletionClient is the text-completion port.
type CompletionClient interface {
	Complete(ctx context.Context, req Request) (string, Usage, error)
}

// Config selects and tunes the completion provider.
type Config struct {
	Provider   string
	APIKey     string
	BaseURL    string
	Model      string
	OllamaHost string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	RateEvery  time.Duration
	RateBurst  int
}

func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Timeout <= 0 {
		c.Timeout = 120 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 2 * time.Second
	}
	if c.RateEvery <= 0 {
		c.RateEvery = time.Second
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 2
	}
}

// New builds the provider named by cfg.Provider ("openai" or "ollama").
func New(cfg Config) (CompletionClient, error) {
	cfg.applyDefaults()

	switch cfg.Provider {
	case "", "openai":
		return newOpenAIClient(cfg)
	case "ollama":
		return newOllamaClient(cfg)
	default:
		return nil, fmt.Errorf("unknown ai provider: %q", cfg.Provider)
	}
}

func newLimiter(cfg Config) *rate.Limiter {
	return rate.NewLimiter(rate.Every(cfg.RateEvery), cfg.RateBurst)
}

// backoff waits out the attempt-scaled retry delay, returning early with
// the context error when the caller is cancelled mid-wait.
func backoff(ctx context.Context, attempt int, delay time.Duration) error {
	timer := time.NewTimer(time.Duration(attempt) * delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// validJSON reports whether s parses as a JSON value.
func validJSON(s string) bool {
	return json.Valid([]byte(s))
}

// estimateTokens approximates the token count of text for providers that do
// not report usage.
func estimateTokens(text string) int {
	tke, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		log.Warn().Err(err).Msg("tiktoken encoding unavailable, estimating by length")
		return len(text) / 4
	}
	return len(tke.Encode(text, nil, nil))
}
