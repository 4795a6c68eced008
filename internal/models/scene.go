package models

import (
	"strings"

	"github.com/google/uuid"

	"prompt-architect-server/internal/options"
)

// AspectRatio is one of the fixed output ratios.
type AspectRatio string

const (
	AspectWide      AspectRatio = "16:9"
	AspectVertical  AspectRatio = "9:16"
	AspectSquare    AspectRatio = "1:1"
	AspectClassic   AspectRatio = "4:3"
	AspectAnamorphic AspectRatio = "2.39:1"
)

// AspectRatios returns the supported ratios in display order.
func AspectRatios() []AspectRatio {
	return []AspectRatio{AspectWide, AspectVertical, AspectSquare, AspectClassic, AspectAnamorphic}
}

// IsValidAspectRatio reports whether r is one of the enumerated ratios.
func IsValidAspectRatio(r AspectRatio) bool {
	for _, v := range AspectRatios() {
		if v == r {
			return true
		}
	}
	return false
}

// VideoEligible reports whether r may be submitted for video generation.
// Only the two primary ratios are accepted by the video models.
func VideoEligible(r AspectRatio) bool {
	return r == AspectWide || r == AspectVertical
}

// ShotParameters holds the 15 per-shot cinematic fields, each an option
// registry value.
type ShotParameters struct {
	ShotType       string `json:"shotType"`
	CameraAngle    string `json:"cameraAngle"`
	CameraMovement string `json:"cameraMovement"`
	Lens           string `json:"lens"`
	Composition    string `json:"composition"`
	Lighting       string `json:"lighting"`
	Style          string `json:"style"`
	FilmQuality    string `json:"filmQuality"`
	Pacing         string `json:"pacing"`
	TimeOfDay      string `json:"timeOfDay"`
	Location       string `json:"location"`
	DepthOfField   string `json:"depthOfField"`
	Texture        string `json:"texture"`
	ColorPalette   string `json:"colorPalette"`
	Genre          string `json:"genre"`
}

// Get returns the parameter value for an options field.
func (p ShotParameters) Get(field options.Field) string {
	switch field {
	case options.FieldShotType:
		return p.ShotType
	case options.FieldCameraAngle:
		return p.CameraAngle
	case options.FieldCameraMovement:
		return p.CameraMovement
	case options.FieldLens:
		return p.Lens
	case options.FieldComposition:
		return p.Composition
	case options.FieldLighting:
		return p.Lighting
	case options.FieldStyle:
		return p.Style
	case options.FieldFilmQuality:
		return p.FilmQuality
	case options.FieldPacing:
		return p.Pacing
	case options.FieldTimeOfDay:
		return p.TimeOfDay
	case options.FieldLocation:
		return p.Location
	case options.FieldDepthOfField:
		return p.DepthOfField
	case options.FieldTexture:
		return p.Texture
	case options.FieldColorPalette:
		return p.ColorPalette
	case options.FieldGenre:
		return p.Genre
	}
	return ""
}

// Set assigns the parameter value for an options field.
func (p *ShotParameters) Set(field options.Field, value string) {
	switch field {
	case options.FieldShotType:
		p.ShotType = value
	case options.FieldCameraAngle:
		p.CameraAngle = value
	case options.FieldCameraMovement:
		p.CameraMovement = value
	case options.FieldLens:
		p.Lens = value
	case options.FieldComposition:
		p.Composition = value
	case options.FieldLighting:
		p.Lighting = value
	case options.FieldStyle:
		p.Style = value
	case options.FieldFilmQuality:
		p.FilmQuality = value
	case options.FieldPacing:
		p.Pacing = value
	case options.FieldTimeOfDay:
		p.TimeOfDay = value
	case options.FieldLocation:
		p.Location = value
	case options.FieldDepthOfField:
		p.DepthOfField = value
	case options.FieldTexture:
		p.Texture = value
	case options.FieldColorPalette:
		p.ColorPalette = value
	case options.FieldGenre:
		p.Genre = value
	}
}

// DefaultShotParameters returns an all-sentinel parameter set.
func DefaultShotParameters() ShotParameters {
	var p ShotParameters
	for _, f := range options.ShotParameterFields {
		p.Set(f, options.SentinelOf(f))
	}
	return p
}

// Shot is one camera take within a scene.
type Shot struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Constraints string         `json:"constraints"`
	Parameters  ShotParameters `json:"parameters"`
}

// NewShot creates a shot with a fresh id, empty text and sentinel parameters.
func NewShot() Shot {
	return Shot{
		ID:         uuid.NewString(),
		Parameters: DefaultShotParameters(),
	}
}

// AudioData describes the scene's sound design. Dialogue, sound effects and
// music are free text; the two style fields are registry values.
type AudioData struct {
	Dialogue     string `json:"dialogue"`
	SoundEffects string `json:"soundEffects"`
	SfxStyle     string `json:"sfxStyle"`
	Music        string `json:"music"`
	MusicStyle   string `json:"musicStyle"`
}

// DefaultAudio returns an empty audio block with sentinel styles.
func DefaultAudio() AudioData {
	return AudioData{
		SfxStyle:   options.SentinelOf(options.FieldSfxStyle),
		MusicStyle: options.SentinelOf(options.FieldMusicStyle),
	}
}

// PhysicsData describes scene-wide physical behavior, all registry values.
type PhysicsData struct {
	WeightAndRigidity    string `json:"weightAndRigidity"`
	MaterialInteractions string `json:"materialInteractions"`
	EnvironmentalForces  string `json:"environmentalForces"`
}

// DefaultPhysics returns an all-sentinel physics block.
func DefaultPhysics() PhysicsData {
	return PhysicsData{
		WeightAndRigidity:    options.SentinelOf(options.FieldWeightAndRigidity),
		MaterialInteractions: options.SentinelOf(options.FieldMaterialInteractions),
		EnvironmentalForces:  options.SentinelOf(options.FieldEnvironmentalForces),
	}
}

// AnimationData describes the animated-look settings, all registry values.
type AnimationData struct {
	AnimationStyle  string `json:"animationStyle"`
	CharacterDesign string `json:"characterDesign"`
	BackgroundStyle string `json:"backgroundStyle"`
	RenderingStyle  string `json:"renderingStyle"`
	FrameRate       string `json:"frameRate"`
}

// DefaultAnimation returns an all-sentinel animation block.
func DefaultAnimation() AnimationData {
	return AnimationData{
		AnimationStyle:  options.SentinelOf(options.FieldAnimationStyle),
		CharacterDesign: options.SentinelOf(options.FieldCharacterDesign),
		BackgroundStyle: options.SentinelOf(options.FieldBackgroundStyle),
		RenderingStyle:  options.SentinelOf(options.FieldRenderingStyle),
		FrameRate:       options.SentinelOf(options.FieldFrameRate),
	}
}

// CameraEffectsData carries scene-wide camera defaults. The last four fields
// override the per-shot values when set; they share the per-shot field
// vocabularies.
type CameraEffectsData struct {
	DepthOfField    string `json:"depthOfField"`
	CameraMovement  string `json:"cameraMovement"`
	CameraAnimation string `json:"cameraAnimation"`
	ShotType        string `json:"shotType,omitempty"`
	CameraAngle     string `json:"cameraAngle,omitempty"`
	Lens            string `json:"lens,omitempty"`
	Composition     string `json:"composition,omitempty"`
}

// DefaultCameraEffects returns an all-sentinel camera-effects block.
func DefaultCameraEffects() CameraEffectsData {
	return CameraEffectsData{
		DepthOfField:    options.SentinelOf(options.FieldDepthOfField),
		CameraMovement:  options.SentinelOf(options.FieldCameraMovement),
		CameraAnimation: options.SentinelOf(options.FieldCameraAnimation),
		ShotType:        options.SentinelOf(options.FieldShotType),
		CameraAngle:     options.SentinelOf(options.FieldCameraAngle),
		Lens:            options.SentinelOf(options.FieldLens),
		Composition:     options.SentinelOf(options.FieldComposition),
	}
}

// SceneData is the canonical in-memory representation of one authoring
// session.
type SceneData struct {
	SceneDescription string            `json:"sceneDescription"`
	Shots            []Shot            `json:"shots"`
	Cameos           string            `json:"cameos"`
	CameoDescription string            `json:"cameoDescription"`
	Audio            AudioData         `json:"audio"`
	Physics          PhysicsData       `json:"physics"`
	Animation        AnimationData     `json:"animation"`
	CameraEffects    CameraEffectsData `json:"cameraEffects"`
	AspectRatio      AspectRatio       `json:"aspectRatio"`
	CameoConsent     bool              `json:"cameoConsent"`
}

// DefaultScene returns a fresh editable scene with one empty shot.
func DefaultScene() SceneData {
	return SceneData{
		Shots:         []Shot{NewShot()},
		Audio:         DefaultAudio(),
		Physics:       DefaultPhysics(),
		Animation:     DefaultAnimation(),
		CameraEffects: DefaultCameraEffects(),
		AspectRatio:   AspectWide,
	}
}

// Normalized returns a copy of s with every defaulting rule applied. It is
// the single entry point used on decode, remix and load-from-storage, so
// older-shaped payloads and partially-populated responses always come out as
// a fully-typed scene: invalid registry values become sentinels, empty
// nested fields are filled, the aspect ratio falls back to 16:9 and the
// scene keeps at least one shot with a non-empty id.
func (s SceneData) Normalized() SceneData {
	out := s.Clone()

	if !IsValidAspectRatio(out.AspectRatio) {
		out.AspectRatio = AspectWide
	}

	out.Audio.SfxStyle = options.Coerce(options.FieldSfxStyle, out.Audio.SfxStyle)
	out.Audio.MusicStyle = options.Coerce(options.FieldMusicStyle, out.Audio.MusicStyle)

	out.Physics.WeightAndRigidity = options.Coerce(options.FieldWeightAndRigidity, out.Physics.WeightAndRigidity)
	out.Physics.MaterialInteractions = options.Coerce(options.FieldMaterialInteractions, out.Physics.MaterialInteractions)
	out.Physics.EnvironmentalForces = options.Coerce(options.FieldEnvironmentalForces, out.Physics.EnvironmentalForces)

	out.Animation.AnimationStyle = options.Coerce(options.FieldAnimationStyle, out.Animation.AnimationStyle)
	out.Animation.CharacterDesign = options.Coerce(options.FieldCharacterDesign, out.Animation.CharacterDesign)
	out.Animation.BackgroundStyle = options.Coerce(options.FieldBackgroundStyle, out.Animation.BackgroundStyle)
	out.Animation.RenderingStyle = options.Coerce(options.FieldRenderingStyle, out.Animation.RenderingStyle)
	out.Animation.FrameRate = options.Coerce(options.FieldFrameRate, out.Animation.FrameRate)

	out.CameraEffects.DepthOfField = options.Coerce(options.FieldDepthOfField, out.CameraEffects.DepthOfField)
	out.CameraEffects.CameraMovement = options.Coerce(options.FieldCameraMovement, out.CameraEffects.CameraMovement)
	out.CameraEffects.CameraAnimation = options.Coerce(options.FieldCameraAnimation, out.CameraEffects.CameraAnimation)
	out.CameraEffects.ShotType = options.Coerce(options.FieldShotType, out.CameraEffects.ShotType)
	out.CameraEffects.CameraAngle = options.Coerce(options.FieldCameraAngle, out.CameraEffects.CameraAngle)
	out.CameraEffects.Lens = options.Coerce(options.FieldLens, out.CameraEffects.Lens)
	out.CameraEffects.Composition = options.Coerce(options.FieldComposition, out.CameraEffects.Composition)

	if len(out.Shots) == 0 {
		out.Shots = []Shot{NewShot()}
	}
	for i := range out.Shots {
		if out.Shots[i].ID == "" {
			out.Shots[i].ID = uuid.NewString()
		}
		for _, f := range options.ShotParameterFields {
			out.Shots[i].Parameters.Set(f, options.Coerce(f, out.Shots[i].Parameters.Get(f)))
		}
	}

	return out
}

// Clone returns a deep copy of s. Versions copy scene state at save time,
// never alias it.
func (s SceneData) Clone() SceneData {
	out := s
	out.Shots = make([]Shot, len(s.Shots))
	copy(out.Shots, s.Shots)
	return out
}

// CanDeleteShot reports whether a shot may be removed. A scene always keeps
// at least one shot; the mutation is refused rather than raised.
func (s SceneData) CanDeleteShot() bool {
	return len(s.Shots) > 1
}

// DeleteShot removes the shot with the given id. Removing an unknown id is
// a no-op; removing the only remaining shot returns ErrLastShot.
func (s *SceneData) DeleteShot(id string) error {
	idx := -1
	for i := range s.Shots {
		if s.Shots[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	if !s.CanDeleteShot() {
		return ErrLastShot
	}
	shots := make([]Shot, 0, len(s.Shots)-1)
	shots = append(shots, s.Shots[:idx]...)
	shots = append(shots, s.Shots[idx+1:]...)
	s.Shots = shots
	return nil
}

// CameoConsentSatisfied is the submission gate: whenever cameos are named,
// consent must have been acknowledged.
func (s SceneData) CameoConsentSatisfied() bool {
	return strings.TrimSpace(s.Cameos) == "" || s.CameoConsent
}
