package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-architect-server/internal/options"
)

func TestSceneSchemaObject(t *testing.T) {
	schema := SceneSchemaObject()

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)

	for _, key := range []string{"sceneDescription", "shots", "cameos", "audio", "physics", "animation", "cameraEffects", "aspectRatio"} {
		assert.Contains(t, props, key)
	}

	shots := props["shots"].(map[string]interface{})
	items := shots["items"].(map[string]interface{})
	params := items["properties"].(map[string]interface{})["parameters"].(map[string]interface{})
	paramProps := params["properties"].(map[string]interface{})

	require.Len(t, paramProps, len(options.ShotParameterFields))
	for _, f := range options.ShotParameterFields {
		field := paramProps[string(f)].(map[string]interface{})
		enum := field["enum"].([]interface{})

		allowed := options.AllowedValues(f)
		require.Len(t, enum, len(allowed), "field %s", f)
		for i, v := range allowed {
			assert.Equal(t, v, enum[i])
		}
	}
}

// Strict structured outputs reject any object whose required list does not
// name every key in properties. Walk the whole schema so a new field can
// never reintroduce the mismatch at any nesting level.
func TestSceneSchemaRequiredCoversProperties(t *testing.T) {
	var walk func(t *testing.T, path string, node map[string]interface{})
	walk = func(t *testing.T, path string, node map[string]interface{}) {
		props, ok := node["properties"].(map[string]interface{})
		if !ok {
			if items, ok := node["items"].(map[string]interface{}); ok {
				walk(t, path+".items", items)
			}
			return
		}

		assert.Equal(t, false, node["additionalProperties"], "%s must close the object", path)

		required := map[string]bool{}
		for _, r := range node["required"].([]interface{}) {
			required[r.(string)] = true
		}
		for key, child := range props {
			assert.True(t, required[key], "%s: property %q missing from required", path, key)
			if childMap, ok := child.(map[string]interface{}); ok {
				walk(t, path+"."+key, childMap)
			}
		}
	}

	walk(t, "$", SceneSchemaObject())
}

func TestSceneSchemaObjectMarshals(t *testing.T) {
	raw, err := json.Marshal(SceneSchemaObject())
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"additionalProperties":false`)
	assert.Contains(t, string(raw), `"16:9"`)
	assert.Contains(t, string(raw), `"dutch-angle"`)
}
