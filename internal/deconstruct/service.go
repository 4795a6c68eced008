// Package deconstruct turns free-form prompt text back into a structured
// scene through a schema-constrained completion call.
package deconstruct

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"prompt-architect-server/internal/ai"
	"prompt-architect-server/internal/models"
	"prompt-architect-server/internal/options"
	"prompt-architect-server/internal/schemas"
)

const systemInstructionTemplate = `You are an expert film director and AI prompt engineer. Your task is to deconstruct a user-provided text-to-video prompt into a structured JSON object. Analyze the prompt to identify the main scene, break it down into logical shots, and extract every possible cinematic, audio, physical and animation parameter.

Your response MUST be a single JSON object that strictly adheres to the provided schema.

Key instructions:
1. sceneDescription: Create a comprehensive summary of the entire prompt's theme, mood, and setting.
2. shots: Identify distinct moments or camera perspectives in the prompt and treat each as a separate shot object. If the prompt describes one continuous action, create a single shot.
3. parameters: For each shot, fill in the parameter fields. Infer values where possible (e.g. a "dark alley" implies 'low-key' lighting). You MUST choose the closest valid option from the lists provided below. Do not invent new values. If a parameter is not mentioned and cannot be inferred, use its first listed value.
4. audio, physics and animation: Extract any mention of sounds, music, dialogue, physical interactions or animated looks and place them in the appropriate fields.
5. aspectRatio: Infer if possible (e.g. "vertical video" means "9:16"). If not specified, use "16:9".
6. cameos: List any named characters or people.

Here are the valid options for the parameters. YOU MUST USE THESE VALUES:
%s`

// Service orchestrates one deconstruction at a time. Overlapping calls on
// the same instance are rejected rather than queued.
type Service struct {
	client   ai.CompletionClient
	logger   *zap.Logger
	inFlight atomic.Bool
}

func NewService(client ai.CompletionClient, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger.Named("deconstruct"),
	}
}

// Deconstruct parses text into a normalized scene. Only a total failure to
// obtain or parse a response is an error; any field the model missed is
// silently defaulted.
func (s *Service) Deconstruct(ctx context.Context, text string) (models.SceneData, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return models.SceneData{}, models.ErrDeconstructionPending
	}
	defer s.inFlight.Store(false)

	req := ai.Request{
		SystemPrompt:   fmt.Sprintf(systemInstructionTemplate, options.ValidOptionsText()),
		UserInput:      text,
		Temperature:    0.2,
		SchemaName:     schemas.SceneSchemaName,
		ResponseSchema: schemas.SceneSchemaObject(),
	}

	response, usage, err := s.client.Complete(ctx, req)
	if err != nil {
		s.logger.Warn("deconstruction completion failed", zap.Error(err))
		return models.SceneData{}, fmt.Errorf("%w: %v", models.ErrDeconstructionFailed, err)
	}

	var raw rawScene
	if err := json.Unmarshal([]byte(ai.StripJSONFences(response)), &raw); err != nil {
		s.logger.Warn("deconstruction returned unparseable payload", zap.Error(err))
		return models.SceneData{}, fmt.Errorf("%w: invalid payload: %v", models.ErrDeconstructionFailed, err)
	}

	scene := reconcile(raw)
	s.logger.Info("prompt deconstructed",
		zap.Int("shots", len(scene.Shots)),
		zap.Int("total_tokens", usage.TotalTokens))
	return scene, nil
}
