package deconstruct

import (
	"strings"

	"prompt-architect-server/internal/models"
	"prompt-architect-server/internal/options"
)

// rawScene mirrors the constrained completion payload. Every nested object
// is optional: the model contract says they are all present, but the
// reconciliation never relies on it.
type rawScene struct {
	SceneDescription string            `json:"sceneDescription"`
	Shots            []rawShot         `json:"shots"`
	Cameos           string            `json:"cameos"`
	CameoDescription string            `json:"cameoDescription"`
	Audio            *rawAudio         `json:"audio"`
	Physics          *rawPhysics       `json:"physics"`
	Animation        *rawAnimation     `json:"animation"`
	CameraEffects    *rawCameraEffects `json:"cameraEffects"`
	AspectRatio      string            `json:"aspectRatio"`
}

type rawShot struct {
	Description string            `json:"description"`
	Constraints string            `json:"constraints"`
	Parameters  map[string]string `json:"parameters"`
}

type rawAudio struct {
	Dialogue     string `json:"dialogue"`
	SoundEffects string `json:"soundEffects"`
	SfxStyle     string `json:"sfxStyle"`
	Music        string `json:"music"`
	MusicStyle   string `json:"musicStyle"`
}

type rawPhysics struct {
	WeightAndRigidity    string `json:"weightAndRigidity"`
	MaterialInteractions string `json:"materialInteractions"`
	EnvironmentalForces  string `json:"environmentalForces"`
}

type rawAnimation struct {
	AnimationStyle  string `json:"animationStyle"`
	CharacterDesign string `json:"characterDesign"`
	BackgroundStyle string `json:"backgroundStyle"`
	RenderingStyle  string `json:"renderingStyle"`
	FrameRate       string `json:"frameRate"`
}

type rawCameraEffects struct {
	DepthOfField    string `json:"depthOfField"`
	CameraMovement  string `json:"cameraMovement"`
	CameraAnimation string `json:"cameraAnimation"`
}

// reconcile maps a raw payload onto a fully-typed scene. Missing objects
// stay at their sentinel defaults, registry values are coerced, every shot
// gets a fresh id, and consent is derived from the presence of cameos (the
// human still confirms consent at the generation gate).
func reconcile(raw rawScene) models.SceneData {
	scene := models.DefaultScene()

	scene.SceneDescription = strings.TrimSpace(raw.SceneDescription)
	scene.Cameos = strings.TrimSpace(raw.Cameos)
	scene.CameoDescription = strings.TrimSpace(raw.CameoDescription)
	scene.AspectRatio = models.AspectRatio(raw.AspectRatio)
	scene.CameoConsent = scene.Cameos != ""

	if raw.Audio != nil {
		scene.Audio.Dialogue = raw.Audio.Dialogue
		scene.Audio.SoundEffects = raw.Audio.SoundEffects
		scene.Audio.SfxStyle = raw.Audio.SfxStyle
		scene.Audio.Music = raw.Audio.Music
		scene.Audio.MusicStyle = raw.Audio.MusicStyle
	}
	if raw.Physics != nil {
		scene.Physics.WeightAndRigidity = raw.Physics.WeightAndRigidity
		scene.Physics.MaterialInteractions = raw.Physics.MaterialInteractions
		scene.Physics.EnvironmentalForces = raw.Physics.EnvironmentalForces
	}
	if raw.Animation != nil {
		scene.Animation.AnimationStyle = raw.Animation.AnimationStyle
		scene.Animation.CharacterDesign = raw.Animation.CharacterDesign
		scene.Animation.BackgroundStyle = raw.Animation.BackgroundStyle
		scene.Animation.RenderingStyle = raw.Animation.RenderingStyle
		scene.Animation.FrameRate = raw.Animation.FrameRate
	}
	if raw.CameraEffects != nil {
		scene.CameraEffects.DepthOfField = raw.CameraEffects.DepthOfField
		scene.CameraEffects.CameraMovement = raw.CameraEffects.CameraMovement
		scene.CameraEffects.CameraAnimation = raw.CameraEffects.CameraAnimation
	}

	if len(raw.Shots) > 0 {
		shots := make([]models.Shot, 0, len(raw.Shots))
		for _, rs := range raw.Shots {
			shot := models.NewShot()
			shot.Description = strings.TrimSpace(rs.Description)
			shot.Constraints = strings.TrimSpace(rs.Constraints)
			for _, f := range options.ShotParameterFields {
				if v, ok := rs.Parameters[string(f)]; ok {
					shot.Parameters.Set(f, v)
				}
			}
			shots = append(shots, shot)
		}
		scene.Shots = shots
	}

	return scene.Normalized()
}
