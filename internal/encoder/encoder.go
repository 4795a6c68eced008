// Package encoder flattens a scene into the deterministic shooting-script
// document fed to the completion models. Encoding is a pure function of the
// scene value: sentinel-valued fields never appear in the output, so two
// scenes differing only in sentinels encode identically.
package encoder

import (
	"fmt"
	"strings"

	"prompt-architect-server/internal/models"
	"prompt-architect-server/internal/options"
)

type fieldValue struct {
	field options.Field
	value string
}

// Encode serializes scene into a single text document. Section order is
// fixed: header, scene-wide camera block, cameos, animation, sound design,
// physics, shot list. Blocks whose fields are all sentinel are omitted
// entirely.
func Encode(scene models.SceneData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SCENE DESCRIPTION: %s\n", scene.SceneDescription)
	fmt.Fprintf(&b, "ASPECT RATIO: %s\n\n", scene.AspectRatio)

	writeCameraEffects(&b, scene.CameraEffects)
	writeCameos(&b, scene)
	writeAnimation(&b, scene.Animation)
	writeSoundDesign(&b, scene.Audio)
	writePhysics(&b, scene.Physics)
	writeShotList(&b, scene.Shots)

	return b.String()
}

func nonSentinel(fields []fieldValue) []fieldValue {
	out := make([]fieldValue, 0, len(fields))
	for _, fv := range fields {
		if fv.value != "" && fv.value != options.SentinelOf(fv.field) {
			out = append(out, fv)
		}
	}
	return out
}

func writeFieldLines(b *strings.Builder, fields []fieldValue) {
	for _, fv := range fields {
		fmt.Fprintf(b, "  - %s: %s\n", options.Label(fv.field), options.HumanizeValue(fv.value))
	}
}

func writeCameraEffects(b *strings.Builder, fx models.CameraEffectsData) {
	set := nonSentinel([]fieldValue{
		{options.FieldCameraMovement, fx.CameraMovement},
		{options.FieldDepthOfField, fx.DepthOfField},
		{options.FieldCameraAnimation, fx.CameraAnimation},
		{options.FieldShotType, fx.ShotType},
		{options.FieldCameraAngle, fx.CameraAngle},
		{options.FieldLens, fx.Lens},
		{options.FieldComposition, fx.Composition},
	})
	if len(set) == 0 {
		return
	}
	b.WriteString("SCENE-WIDE CAMERA EFFECTS (Defaults for all shots unless specified otherwise):\n")
	writeFieldLines(b, set)
	b.WriteString("\n")
}

func writeCameos(b *strings.Builder, scene models.SceneData) {
	cameos := strings.TrimSpace(scene.Cameos)
	if cameos == "" {
		return
	}
	if desc := strings.TrimSpace(scene.CameoDescription); desc != "" {
		fmt.Fprintf(b, "CHARACTERS/CAMEOS: %s (%s)\n", cameos, desc)
	} else {
		fmt.Fprintf(b, "CHARACTERS/CAMEOS: %s\n", cameos)
	}
	// The consent line is always present once cameos exist; generation
	// policy downstream depends on the model seeing it.
	if scene.CameoConsent {
		b.WriteString("CAMEO CONSENT: User has acknowledged consent requirements.\n\n")
	} else {
		b.WriteString("CAMEO CONSENT: Consent not specified.\n\n")
	}
}

func writeAnimation(b *strings.Builder, anim models.AnimationData) {
	set := nonSentinel([]fieldValue{
		{options.FieldAnimationStyle, anim.AnimationStyle},
		{options.FieldCharacterDesign, anim.CharacterDesign},
		{options.FieldBackgroundStyle, anim.BackgroundStyle},
		{options.FieldRenderingStyle, anim.RenderingStyle},
		{options.FieldFrameRate, anim.FrameRate},
	})
	if len(set) == 0 {
		return
	}
	b.WriteString("ANIMATION STYLE:\n")
	writeFieldLines(b, set)
	b.WriteString("\n")
}

func styleTagged(field options.Field, style, text string) string {
	if style == "" || style == options.SentinelOf(field) {
		return text
	}
	tag := fmt.Sprintf("[Style: %s]", options.HumanizeValue(style))
	if text == "" {
		return tag
	}
	return tag + " " + text
}

func writeSoundDesign(b *strings.Builder, audio models.AudioData) {
	dialogue := strings.TrimSpace(audio.Dialogue)
	sfx := styleTagged(options.FieldSfxStyle, audio.SfxStyle, strings.TrimSpace(audio.SoundEffects))
	music := styleTagged(options.FieldMusicStyle, audio.MusicStyle, strings.TrimSpace(audio.Music))

	if dialogue == "" && sfx == "" && music == "" {
		return
	}
	b.WriteString("SOUND DESIGN:\n")
	if dialogue != "" {
		fmt.Fprintf(b, "  - Dialogue: %s\n", dialogue)
	}
	if sfx != "" {
		fmt.Fprintf(b, "  - SFX: %s\n", sfx)
	}
	if music != "" {
		fmt.Fprintf(b, "  - Music: %s\n", music)
	}
	b.WriteString("\n")
}

func writePhysics(b *strings.Builder, physics models.PhysicsData) {
	set := nonSentinel([]fieldValue{
		{options.FieldWeightAndRigidity, physics.WeightAndRigidity},
		{options.FieldMaterialInteractions, physics.MaterialInteractions},
		{options.FieldEnvironmentalForces, physics.EnvironmentalForces},
	})
	if len(set) == 0 {
		return
	}
	b.WriteString("PHYSICS & INTERACTIONS:\n")
	writeFieldLines(b, set)
	b.WriteString("\n")
}

func writeShotList(b *strings.Builder, shots []models.Shot) {
	b.WriteString("--- SHOT LIST ---\n\n")

	for i, shot := range shots {
		fmt.Fprintf(b, "SHOT %d:\n", i+1)
		if desc := strings.TrimSpace(shot.Description); desc != "" {
			fmt.Fprintf(b, "  Description: %s\n", desc)
		}
		if constraints := strings.TrimSpace(shot.Constraints); constraints != "" {
			fmt.Fprintf(b, "  Constraints: %s\n", constraints)
		}
		b.WriteString("  Parameters:\n")
		for _, f := range options.ShotParameterFields {
			value := shot.Parameters.Get(f)
			if value == "" || value == options.SentinelOf(f) {
				continue
			}
			fmt.Fprintf(b, "    - %s: %s\n", options.Label(f), options.HumanizeValue(value))
		}
		b.WriteString("\n")
	}
}
