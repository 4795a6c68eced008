// Package prompt turns an authored scene into a camera-ready prompt or into
// targeted improvement suggestions.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"prompt-architect-server/internal/ai"
	"prompt-architect-server/internal/encoder"
	"prompt-architect-server/internal/models"
)

const generateInstructionTemplate = `You are an expert director of photography and prompt engineer for advanced text-to-video AI models. Your task is to interpret a structured "shooting script" containing a scene description, characters, sound design, physics, animation, consent information, and a detailed shot list with specific constraints and genres. Synthesize all this information into a single, cohesive, and vivid paragraph. The final prompt should be rich with descriptive detail, capturing the mood, atmosphere, physical interactions, and cinematic qualities specified. Do not add any preamble, explanation, or markdown formatting; just return the final, camera-ready prompt itself. Your final response MUST be in %s.`

const suggestInstructionTemplate = `You are a creative assistant and expert filmmaker. Analyze the provided "shooting script" and offer 3-5 concise, actionable suggestions for improvement. Your suggestions must be highly targeted and context-aware: pay close attention to the selected parameters for each shot, such as genre, style, lighting, and camera movement. For example, if the genre is 'horror', suggest darker lighting, unsettling camera angles like a dutch-angle, or slow creeping camera movements. The goal is specific advice that enhances the chosen aesthetic, not generic feedback. Present your suggestions as a simple unnumbered bulleted list using "-" for each point. Do not add any preamble or conclusion. Your response MUST be in %s.`

var responseLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
}

// Service runs the generation-side completion calls.
type Service struct {
	client ai.CompletionClient
	logger *zap.Logger
}

func NewService(client ai.CompletionClient, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger.Named("prompt"),
	}
}

func responseLanguage(code string) string {
	if name, ok := responseLanguages[code]; ok {
		return name
	}
	return "English"
}

// Generate encodes scene and asks the model for the final prompt. The scene
// is left untouched on failure. Scenes naming cameos must carry consent
// before any call is made.
func (s *Service) Generate(ctx context.Context, scene models.SceneData, language string) (string, error) {
	if strings.TrimSpace(scene.SceneDescription) == "" {
		return "", models.ErrEmptyDescription
	}
	if !scene.CameoConsentSatisfied() {
		return "", models.ErrConsentRequired
	}

	req := ai.Request{
		SystemPrompt: fmt.Sprintf(generateInstructionTemplate, responseLanguage(language)),
		UserInput:    encoder.Encode(scene),
		Temperature:  0.9,
	}

	text, usage, err := s.client.Complete(ctx, req)
	if err != nil {
		s.logger.Warn("prompt generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", models.ErrGenerationFailed)
	}

	s.logger.Info("prompt generated",
		zap.Int("shots", len(scene.Shots)),
		zap.Int("total_tokens", usage.TotalTokens))
	return text, nil
}

// Suggest returns a bulleted list of improvements for the encoded scene.
func (s *Service) Suggest(ctx context.Context, scene models.SceneData, language string) (string, error) {
	if strings.TrimSpace(scene.SceneDescription) == "" {
		return "", models.ErrEmptyDescription
	}

	req := ai.Request{
		SystemPrompt: fmt.Sprintf(suggestInstructionTemplate, responseLanguage(language)),
		UserInput:    encoder.Encode(scene),
		Temperature:  0.7,
	}

	text, _, err := s.client.Complete(ctx, req)
	if err != nil {
		s.logger.Warn("suggestion request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrSuggestionFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", models.ErrSuggestionFailed)
	}
	return text, nil
}
