package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// openAIClient implements CompletionClient over any OpenAI-compatible API.
type openAIClient struct {
	client     *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
}

func newOpenAIClient(cfg Config) (*openAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ai: api key is not set")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openAIClient{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		limiter:    newLimiter(cfg),
	}, nil
}

func (c *openAIClient) Complete(ctx context.Context, req Request) (string, Usage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserInput},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	if req.ResponseSchema != nil {
		rawSchema, err := json.Marshal(req.ResponseSchema)
		if err != nil {
			return "", Usage{}, fmt.Errorf("marshal response schema: %w", err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: json.RawMessage(rawSchema),
				Strict: true,
			},
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", Usage{}, fmt.Errorf("rate limiter: %w", err)
		}

		start := time.Now()
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		duration := time.Since(start)

		if err != nil {
			observeError(c.model, "error")
			log.Warn().Err(err).Str("model", c.model).Int("attempt", attempt).
				Dur("duration", duration).Msg("completion request failed")
			lastErr = err
			if backoff(ctx, attempt, c.retryDelay) != nil {
				break
			}
			continue
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			observeError(c.model, "error_empty_response")
			lastErr = errors.New("empty response from completion API")
			if backoff(ctx, attempt, c.retryDelay) != nil {
				break
			}
			continue
		}

		content := resp.Choices[0].Message.Content
		if req.ResponseSchema != nil && !validJSON(StripJSONFences(content)) {
			observeError(c.model, "error_invalid_json")
			lastErr = errors.New("schema-constrained response is not valid JSON")
			if backoff(ctx, attempt, c.retryDelay) != nil {
				break
			}
			continue
		}

		usage := Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
		if usage.TotalTokens == 0 {
			usage.PromptTokens = estimateTokens(req.SystemPrompt + req.UserInput)
			usage.CompletionTokens = estimateTokens(content)
			usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
		}
		usage.EstimatedCostUSD = calculateCost(usage.PromptTokens, usage.CompletionTokens)

		observeSuccess(c.model, duration.Seconds(), usage)
		log.Debug().Str("model", c.model).Dur("duration", duration).
			Int("total_tokens", usage.TotalTokens).Msg("completion request succeeded")
		return content, usage, nil
	}

	return "", Usage{}, fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries, lastErr)
}
