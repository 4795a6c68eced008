package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt-architect-server/internal/options"
)

func TestDefaultScene(t *testing.T) {
	scene := DefaultScene()

	require.Len(t, scene.Shots, 1)
	assert.NotEmpty(t, scene.Shots[0].ID)
	assert.Equal(t, AspectWide, scene.AspectRatio)
	assert.Equal(t, "none", scene.Shots[0].Parameters.Lighting)
	assert.Equal(t, "normal", scene.Shots[0].Parameters.Pacing)
	assert.Equal(t, "natural", scene.CameraEffects.DepthOfField)
	assert.False(t, scene.CameoConsent)
}

func TestNewShotIDsAreUnique(t *testing.T) {
	a := NewShot()
	b := NewShot()
	assert.NotEqual(t, a.ID, b.ID)
}

func TestShotParametersGetSet(t *testing.T) {
	p := DefaultShotParameters()

	for _, f := range options.ShotParameterFields {
		assert.Equal(t, options.SentinelOf(f), p.Get(f), "field %s", f)
	}

	p.Set(options.FieldLighting, "neon")
	assert.Equal(t, "neon", p.Lighting)
	assert.Equal(t, "neon", p.Get(options.FieldLighting))
}

func TestNormalized(t *testing.T) {
	t.Run("coerces invalid registry values to sentinels", func(t *testing.T) {
		scene := DefaultScene()
		scene.Shots[0].Parameters.Lighting = "ultraviolet"
		scene.Physics.EnvironmentalForces = "tornado"

		out := scene.Normalized()

		assert.Equal(t, "none", out.Shots[0].Parameters.Lighting)
		assert.Equal(t, "none", out.Physics.EnvironmentalForces)
	})

	t.Run("fills empty nested fields", func(t *testing.T) {
		scene := SceneData{SceneDescription: "a quiet street"}

		out := scene.Normalized()

		assert.Equal(t, DefaultAudio(), out.Audio)
		assert.Equal(t, DefaultPhysics(), out.Physics)
		assert.Equal(t, DefaultAnimation(), out.Animation)
		assert.Equal(t, DefaultCameraEffects(), out.CameraEffects)
		assert.Equal(t, AspectWide, out.AspectRatio)
		require.Len(t, out.Shots, 1)
		assert.NotEmpty(t, out.Shots[0].ID)
	})

	t.Run("assigns ids to shots that lack one", func(t *testing.T) {
		scene := DefaultScene()
		scene.Shots = append(scene.Shots, Shot{Description: "second take"})

		out := scene.Normalized()

		require.Len(t, out.Shots, 2)
		assert.NotEmpty(t, out.Shots[1].ID)
		assert.NotEqual(t, out.Shots[0].ID, out.Shots[1].ID)
	})

	t.Run("keeps valid values untouched", func(t *testing.T) {
		scene := DefaultScene()
		scene.Shots[0].Parameters.Genre = "sci-fi"
		scene.AspectRatio = AspectVertical
		scene.CameraEffects.CameraAnimation = "handheld-shake"

		out := scene.Normalized()

		assert.Equal(t, "sci-fi", out.Shots[0].Parameters.Genre)
		assert.Equal(t, AspectVertical, out.AspectRatio)
		assert.Equal(t, "handheld-shake", out.CameraEffects.CameraAnimation)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		scene := DefaultScene()
		scene.Shots[0].Parameters.Lighting = "bogus"

		_ = scene.Normalized()

		assert.Equal(t, "bogus", scene.Shots[0].Parameters.Lighting)
	})
}

func TestClone(t *testing.T) {
	scene := DefaultScene()
	scene.Shots[0].Description = "original"

	copied := scene.Clone()
	copied.Shots[0].Description = "changed"
	copied.SceneDescription = "changed too"

	assert.Equal(t, "original", scene.Shots[0].Description)
	assert.Empty(t, scene.SceneDescription)
}

func TestCanDeleteShot(t *testing.T) {
	scene := DefaultScene()
	assert.False(t, scene.CanDeleteShot())

	scene.Shots = append(scene.Shots, NewShot())
	assert.True(t, scene.CanDeleteShot())
}

func TestDeleteShot(t *testing.T) {
	t.Run("removes the shot by id", func(t *testing.T) {
		scene := DefaultScene()
		scene.Shots = append(scene.Shots, NewShot())
		keep := scene.Shots[1].ID

		require.NoError(t, scene.DeleteShot(scene.Shots[0].ID))
		require.Len(t, scene.Shots, 1)
		assert.Equal(t, keep, scene.Shots[0].ID)
	})

	t.Run("refuses to remove the last shot", func(t *testing.T) {
		scene := DefaultScene()
		err := scene.DeleteShot(scene.Shots[0].ID)
		assert.ErrorIs(t, err, ErrLastShot)
		assert.Len(t, scene.Shots, 1)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		scene := DefaultScene()
		require.NoError(t, scene.DeleteShot("missing"))
		assert.Len(t, scene.Shots, 1)
	})
}

func TestCameoConsentSatisfied(t *testing.T) {
	scene := DefaultScene()
	assert.True(t, scene.CameoConsentSatisfied())

	scene.Cameos = "Ana de Armas"
	assert.False(t, scene.CameoConsentSatisfied())

	scene.CameoConsent = true
	assert.True(t, scene.CameoConsentSatisfied())

	scene.Cameos = "   "
	scene.CameoConsent = false
	assert.True(t, scene.CameoConsentSatisfied())
}

func TestVideoEligible(t *testing.T) {
	assert.True(t, VideoEligible(AspectWide))
	assert.True(t, VideoEligible(AspectVertical))
	assert.False(t, VideoEligible(AspectSquare))
	assert.False(t, VideoEligible(AspectClassic))
	assert.False(t, VideoEligible(AspectAnamorphic))
}

func TestVisibilityToggleIsInvolution(t *testing.T) {
	assert.Equal(t, VisibilityPrivate, VisibilityPublic.Toggle())
	assert.Equal(t, VisibilityPublic, VisibilityPrivate.Toggle())
	assert.Equal(t, VisibilityPrivate, VisibilityPrivate.Toggle().Toggle())
}
