package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"golang.org/x/time/rate"
)

// ollamaClient implements CompletionClient against a local ollama server.
// Structured output uses the request format field, which ollama constrains
// at generation time the same way the json_schema response format does.
type ollamaClient struct {
	client     *api.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
}

func newOllamaClient(cfg Config) (*ollamaClient, error) {
	host := cfg.OllamaHost
	if host == "" {
		host = "http://localhost:11434"
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}

	return &ollamaClient{
		client:     api.NewClient(base, http.DefaultClient),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		limiter:    newLimiter(cfg),
	}, nil
}

func (c *ollamaClient) Complete(ctx context.Context, req Request) (string, Usage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream := false
	chatReq := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserInput},
		},
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": float64(req.Temperature),
		},
	}
	if req.MaxTokens > 0 {
		chatReq.Options["num_predict"] = req.MaxTokens
	}
	if req.ResponseSchema != nil {
		rawSchema, err := json.Marshal(req.ResponseSchema)
		if err != nil {
			return "", Usage{}, fmt.Errorf("marshal response schema: %w", err)
		}
		chatReq.Format = json.RawMessage(rawSchema)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", Usage{}, fmt.Errorf("rate limiter: %w", err)
		}

		start := time.Now()
		var content strings.Builder
		var metrics api.Metrics
		err := c.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
			content.WriteString(resp.Message.Content)
			if resp.Done {
				metrics = resp.Metrics
			}
			return nil
		})
		duration := time.Since(start)

		if err != nil {
			observeError(c.model, "error")
			log.Warn().Err(err).Str("model", c.model).Int("attempt", attempt).
				Msg("ollama chat request failed")
			lastErr = err
			if backoff(ctx, attempt, c.retryDelay) != nil {
				break
			}
			continue
		}

		text := content.String()
		if strings.TrimSpace(text) == "" {
			observeError(c.model, "error_empty_response")
			lastErr = errors.New("empty response from ollama")
			if backoff(ctx, attempt, c.retryDelay) != nil {
				break
			}
			continue
		}
		if req.ResponseSchema != nil && !validJSON(StripJSONFences(text)) {
			observeError(c.model, "error_invalid_json")
			lastErr = errors.New("schema-constrained response is not valid JSON")
			if backoff(ctx, attempt, c.retryDelay) != nil {
				break
			}
			continue
		}

		usage := Usage{
			PromptTokens:     metrics.PromptEvalCount,
			CompletionTokens: metrics.EvalCount,
		}
		if usage.PromptTokens == 0 {
			usage.PromptTokens = estimateTokens(req.SystemPrompt + req.UserInput)
		}
		if usage.CompletionTokens == 0 {
			usage.CompletionTokens = estimateTokens(text)
		}
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens

		observeSuccess(c.model, duration.Seconds(), usage)
		return text, usage, nil
	}

	return "", Usage{}, fmt.Errorf("ollama completion failed after %d attempts: %w", c.maxRetries, lastErr)
}
