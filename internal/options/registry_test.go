package options

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryConsistency(t *testing.T) {
	for _, f := range Fields() {
		values := AllowedValues(f)
		require.NotEmpty(t, values, "field %s has no values", f)

		assert.True(t, IsValid(f, SentinelOf(f)), "sentinel of %s must be listed", f)

		seen := make(map[string]bool)
		for _, v := range values {
			assert.False(t, seen[v], "duplicate value %q in %s", v, f)
			seen[v] = true
		}
	}
}

func TestShotParameterFields(t *testing.T) {
	require.Len(t, ShotParameterFields, 15)
	assert.Equal(t, FieldShotType, ShotParameterFields[0])
	assert.Equal(t, FieldGenre, ShotParameterFields[14])
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(FieldLighting, "neon"))
	assert.False(t, IsValid(FieldLighting, "ultraviolet"))
	assert.False(t, IsValid(Field("nonexistent"), "anything"))
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, "dutch-angle", Coerce(FieldCameraAngle, "dutch-angle"))
	assert.Equal(t, "none", Coerce(FieldCameraAngle, "worm-eye"))
	assert.Equal(t, "normal", Coerce(FieldPacing, ""))
	assert.Equal(t, "unspecified", Coerce(FieldTimeOfDay, "noonish"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "shot type", Label(FieldShotType))
	assert.Equal(t, "depth of field", Label(FieldDepthOfField))
	assert.Equal(t, "lens", Label(FieldLens))
	assert.Equal(t, "weight and rigidity", Label(FieldWeightAndRigidity))
}

func TestHumanizeValue(t *testing.T) {
	assert.Equal(t, "slow pan left", HumanizeValue("slow-pan-left"))
	assert.Equal(t, "neon", HumanizeValue("neon"))
	assert.Equal(t, "rule of thirds", HumanizeValue("rule-of-thirds"))
}

func TestValidOptionsText(t *testing.T) {
	text := ValidOptionsText()

	for _, f := range Fields() {
		assert.Contains(t, text, "- "+string(f)+": [")
	}
	assert.Contains(t, text, "medium-shot")
	assert.False(t, strings.HasSuffix(text, "\n"))
}
