// Package schemas builds the JSON schemas sent with constrained completion
// requests. The deconstruction schema is derived mechanically from the
// option registry so the decode path can never accept a vocabulary the
// encoder does not emit.
package schemas

import (
	"prompt-architect-server/internal/options"
)

// SceneSchemaName identifies the deconstruction schema in provider requests.
const SceneSchemaName = "deconstruct_scene"

func enumString(field options.Field, description string) map[string]interface{} {
	values := options.AllowedValues(field)
	enum := make([]interface{}, 0, len(values))
	for _, v := range values {
		enum = append(enum, v)
	}
	return map[string]interface{}{
		"type":        "string",
		"enum":        enum,
		"description": description,
	}
}

func freeString(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

// SceneSchemaObject returns the deconstruction response schema as a
// map[string]interface{} suitable for the OpenAI response_format.json_schema
// field and for the ollama structured-output format field.
func SceneSchemaObject() map[string]interface{} {
	parameterProperties := map[string]interface{}{}
	parameterRequired := make([]interface{}, 0, len(options.ShotParameterFields))
	for _, f := range options.ShotParameterFields {
		parameterProperties[string(f)] = enumString(f, "The "+options.Label(f)+" for the shot.")
		parameterRequired = append(parameterRequired, string(f))
	}

	aspectRatios := []interface{}{"16:9", "9:16", "1:1", "4:3", "2.39:1"}

	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]interface{}{
			"sceneDescription": freeString("A detailed, top-level summary of the entire scene, its mood, environment, and core concept."),
			"shots": map[string]interface{}{
				"type":        "array",
				"description": "A list of distinct camera shots that make up the scene.",
				"items": map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]interface{}{
						"description": freeString("A specific description of the action and subjects within this single shot."),
						"constraints": freeString("Any negative prompts or explicit limitations for this shot, e.g. 'no people', 'avoid bright colors'."),
						"parameters": map[string]interface{}{
							"type":                 "object",
							"additionalProperties": false,
							"description":          "Cinematic parameters for this shot. Only use valid values from the provided lists.",
							"properties":           parameterProperties,
							"required":             parameterRequired,
						},
					},
					"required": []interface{}{"description", "constraints", "parameters"},
				},
			},
			"cameos":           freeString("A comma-separated list of any specific characters, actors, or personas mentioned."),
			"cameoDescription": freeString("A short description of how the named characters appear."),
			"audio": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]interface{}{
					"dialogue":     freeString("Any spoken dialogue."),
					"soundEffects": freeString("Specific sound effects mentioned, e.g. 'rain hitting pavement'."),
					"sfxStyle":     enumString(options.FieldSfxStyle, "The overall style of the sound effects."),
					"music":        freeString("Description of the score or ambient music."),
					"musicStyle":   enumString(options.FieldMusicStyle, "The overall style of the music."),
				},
				"required": []interface{}{"dialogue", "soundEffects", "sfxStyle", "music", "musicStyle"},
			},
			"physics": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]interface{}{
					"weightAndRigidity":    enumString(options.FieldWeightAndRigidity, "Object weight, stiffness or physical behavior."),
					"materialInteractions": enumString(options.FieldMaterialInteractions, "How materials interact, e.g. glass shattering."),
					"environmentalForces":  enumString(options.FieldEnvironmentalForces, "Forces like wind, gravity or water."),
				},
				"required": []interface{}{"weightAndRigidity", "materialInteractions", "environmentalForces"},
			},
			"animation": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]interface{}{
					"animationStyle":  enumString(options.FieldAnimationStyle, "The overall animation technique, if the scene is animated."),
					"characterDesign": enumString(options.FieldCharacterDesign, "The character design school."),
					"backgroundStyle": enumString(options.FieldBackgroundStyle, "The background art style."),
					"renderingStyle":  enumString(options.FieldRenderingStyle, "The rendering treatment."),
					"frameRate":       enumString(options.FieldFrameRate, "The perceived frame-rate feel."),
				},
				"required": []interface{}{"animationStyle", "characterDesign", "backgroundStyle", "renderingStyle", "frameRate"},
			},
			"cameraEffects": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]interface{}{
					"depthOfField":    enumString(options.FieldDepthOfField, "The overall depth of field for the scene."),
					"cameraMovement":  enumString(options.FieldCameraMovement, "A default camera movement for the whole scene."),
					"cameraAnimation": enumString(options.FieldCameraAnimation, "A default camera animation for the whole scene."),
				},
				"required": []interface{}{"depthOfField", "cameraMovement", "cameraAnimation"},
			},
			"aspectRatio": map[string]interface{}{
				"type":        "string",
				"enum":        aspectRatios,
				"description": "The aspect ratio. Default to '16:9' if not specified.",
			},
		},
		"required": []interface{}{"sceneDescription", "shots", "cameos", "cameoDescription", "audio", "physics", "animation", "cameraEffects", "aspectRatio"},
	}
}
