// Package video drives video generation: submission, fixed-interval polling
// and in-memory job tracking.
package video

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"prompt-architect-server/internal/models"
)

// Operation is one in-flight or finished video generation on the provider
// side.
type Operation struct {
	ID       string
	Done     bool
	VideoURI string
	Error    string
}

// GenerationClient is the video-generation port. Submit must only ever be
// called with a video-eligible aspect ratio; the gate lives in the Manager.
type GenerationClient interface {
	Submit(ctx context.Context, prompt string, aspectRatio models.AspectRatio) (Operation, error)
	Poll(ctx context.Context, op Operation) (Operation, error)
}

var _ GenerationClient = (*genaiClient)(nil)

// genaiClient implements GenerationClient on the Gemini API Veo models. The
// provider operation handles are kept by name so Poll can resume them.
type genaiClient struct {
	client *genai.Client
	model  string

	mu  sync.Mutex
	ops map[string]*genai.GenerateVideosOperation
}

// NewGenaiClient builds a Veo-backed GenerationClient.
func NewGenaiClient(ctx context.Context, apiKey, model string) (GenerationClient, error) {
	if model == "" {
		model = "veo-2.0-generate-001"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &genaiClient{
		client: client,
		model:  model,
		ops:    make(map[string]*genai.GenerateVideosOperation),
	}, nil
}

func (c *genaiClient) Submit(ctx context.Context, prompt string, aspectRatio models.AspectRatio) (Operation, error) {
	op, err := c.client.Models.GenerateVideos(ctx, c.model, prompt, nil, &genai.GenerateVideosConfig{
		AspectRatio: string(aspectRatio),
	})
	if err != nil {
		return Operation{}, classifyError(err)
	}

	c.mu.Lock()
	c.ops[op.Name] = op
	c.mu.Unlock()

	return c.toOperation(op), nil
}

func (c *genaiClient) Poll(ctx context.Context, op Operation) (Operation, error) {
	c.mu.Lock()
	raw, ok := c.ops[op.ID]
	c.mu.Unlock()
	if !ok {
		return Operation{}, models.ErrVideoNotFound
	}

	updated, err := c.client.Operations.GetVideosOperation(ctx, raw, nil)
	if err != nil {
		return Operation{}, classifyError(err)
	}

	c.mu.Lock()
	c.ops[op.ID] = updated
	if updated.Done {
		delete(c.ops, op.ID)
	}
	c.mu.Unlock()

	return c.toOperation(updated), nil
}

func (c *genaiClient) toOperation(op *genai.GenerateVideosOperation) Operation {
	out := Operation{ID: op.Name, Done: op.Done}
	if op.Error != nil {
		out.Error = fmt.Sprintf("%v", op.Error["message"])
		return out
	}
	if op.Response != nil && len(op.Response.GeneratedVideos) > 0 {
		if v := op.Response.GeneratedVideos[0].Video; v != nil {
			out.VideoURI = v.URI
		}
	}
	return out
}

// classifyError separates the invalid-credential class from everything
// else. "Requested entity was not found" is what the API returns for a
// revoked or mis-scoped key; retrying it can never succeed.
func classifyError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "entity was not found") ||
		strings.Contains(msg, "entity not found") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "api key not valid") {
		return fmt.Errorf("%w: %v", models.ErrVideoCredentialInvalid, err)
	}
	return fmt.Errorf("%w: %v", models.ErrVideoGenerationFailed, err)
}
