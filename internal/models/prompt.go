package models

// Visibility of a saved prompt lineage.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Toggle flips between the two visibility states.
func (v Visibility) Toggle() Visibility {
	if v == VisibilityPublic {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

// PromptVersion captures the scene state and the prompt it produced.
// Immutable once created: versions are only ever prepended to a lineage.
type PromptVersion struct {
	SceneData
	Prompt       string `json:"prompt"`
	VersionNotes string `json:"versionNotes,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

// SavedPrompt is one saved lineage: a stable id, its version history
// newest-first, and a visibility state.
type SavedPrompt struct {
	ID         string          `json:"id"`
	Versions   []PromptVersion `json:"versions"`
	Visibility Visibility      `json:"visibility"`
}

// QueryRecord is one entry of the append-only deconstruction history.
type QueryRecord struct {
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}
