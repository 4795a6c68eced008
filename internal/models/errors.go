package models

import "errors"

// Domain errors. Handlers map these onto HTTP status codes and every
// internal failure is wrapped before crossing a service boundary so the
// raw provider error never reaches a caller.
var (
	ErrGenerationFailed      = errors.New("prompt generation failed")
	ErrDeconstructionFailed  = errors.New("prompt deconstruction failed")
	ErrDeconstructionPending = errors.New("deconstruction already in progress")
	ErrSuggestionFailed      = errors.New("scene suggestion failed")

	ErrVideoGenerationFailed  = errors.New("video generation failed")
	ErrVideoCredentialInvalid = errors.New("video credential rejected")
	ErrVideoNotFound          = errors.New("video operation not found")
	ErrAspectRatioUnsupported = errors.New("aspect ratio not supported for video")

	ErrConsentRequired  = errors.New("cameo consent required")
	ErrPromptNotFound   = errors.New("prompt not found")
	ErrVersionNotFound  = errors.New("version not found")
	ErrNothingToSave    = errors.New("no generated prompt to save")
	ErrLastShot         = errors.New("scene must keep at least one shot")
	ErrEmptyDescription = errors.New("scene description is empty")
)
