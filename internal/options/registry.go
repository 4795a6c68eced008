package options

import (
	"fmt"
	"strings"
	"unicode"
)

// Field identifies one controlled-vocabulary parameter.
type Field string

// Per-shot cinematic parameters.
const (
	FieldShotType       Field = "shotType"
	FieldCameraAngle    Field = "cameraAngle"
	FieldCameraMovement Field = "cameraMovement"
	FieldLens           Field = "lens"
	FieldComposition    Field = "composition"
	FieldLighting       Field = "lighting"
	FieldStyle          Field = "style"
	FieldFilmQuality    Field = "filmQuality"
	FieldPacing         Field = "pacing"
	FieldTimeOfDay      Field = "timeOfDay"
	FieldLocation       Field = "location"
	FieldDepthOfField   Field = "depthOfField"
	FieldTexture        Field = "texture"
	FieldColorPalette   Field = "colorPalette"
	FieldGenre          Field = "genre"
)

// Scene-wide fields.
const (
	FieldCameraAnimation       Field = "cameraAnimation"
	FieldSfxStyle              Field = "sfxStyle"
	FieldMusicStyle            Field = "musicStyle"
	FieldAnimationStyle        Field = "animationStyle"
	FieldCharacterDesign       Field = "characterDesign"
	FieldBackgroundStyle       Field = "backgroundStyle"
	FieldRenderingStyle        Field = "renderingStyle"
	FieldFrameRate             Field = "frameRate"
	FieldWeightAndRigidity     Field = "weightAndRigidity"
	FieldMaterialInteractions  Field = "materialInteractions"
	FieldEnvironmentalForces   Field = "environmentalForces"
)

type fieldSpec struct {
	field    Field
	sentinel string
	values   []string
}

// The catalog is the single source of truth for both the encoder and the
// decode schema. Order matters: AllowedValues and Fields must be stable
// because the deconstruction schema and instruction text are built from them.
var catalog = []fieldSpec{
	{FieldShotType, "none", []string{"none", "extreme-close-up", "close-up", "medium-shot", "long-shot", "establishing-shot", "pov"}},
	{FieldCameraAngle, "none", []string{"none", "eye-level", "high-angle", "low-angle", "dutch-angle", "birds-eye-view"}},
	{FieldCameraMovement, "none", []string{"none", "pan", "tilt", "dolly-zoom", "crane-shot", "handheld", "drone-shot", "gimbal"}},
	{FieldLens, "none", []string{"none", "24mm", "35mm", "50mm", "85mm", "135mm"}},
	{FieldComposition, "none", []string{"none", "rule-of-thirds", "leading-lines", "centered", "symmetry", "frame-within-frame"}},
	{FieldLighting, "none", []string{"none", "cinematic", "golden-hour", "blue-hour", "high-key", "low-key", "neon", "backlight", "studio"}},
	{FieldStyle, "none", []string{"none", "photorealistic", "cinematic-film", "style-of-denis-villeneuve", "style-of-wes-anderson", "style-of-quentin-tarantino", "anime", "documentary", "found-footage", "3d-render", "macro-photography", "fantasy-art", "vaporwave"}},
	{FieldFilmQuality, "none", []string{"none", "4k", "8k", "35mm-film-grain", "16mm-film-grain", "vhs", "imax"}},
	{FieldPacing, "normal", []string{"normal", "slow-motion", "fast-motion", "time-lapse"}},
	{FieldTimeOfDay, "unspecified", []string{"unspecified", "daytime", "nighttime", "dawn", "dusk", "midnight"}},
	{FieldLocation, "unspecified", []string{"unspecified", "cityscape", "forest", "ocean", "mountains", "desert", "sci-fi-interior"}},
	{FieldDepthOfField, "natural", []string{"natural", "shallow", "deep", "rack-focus"}},
	{FieldTexture, "standard", []string{"standard", "smooth", "rough", "heavy-grain", "sharp"}},
	{FieldColorPalette, "none", []string{"none", "vibrant", "muted", "monochromatic", "pastel", "neon", "warm-tones", "cool-tones"}},
	{FieldGenre, "none", []string{"none", "drama", "action", "comedy", "sci-fi", "horror", "fantasy", "documentary", "thriller"}},

	{FieldCameraAnimation, "none", []string{"none", "slow-pan-left", "slow-pan-right", "slow-tilt-up", "slow-tilt-down", "rapid-zoom-in", "rapid-zoom-out", "handheld-shake", "smooth-dolly-in", "smooth-dolly-out"}},
	{FieldSfxStyle, "none", []string{"none", "realistic", "cinematic", "cartoon", "sci-fi", "fantasy"}},
	{FieldMusicStyle, "none", []string{"none", "orchestral", "synth", "lo-fi", "ambient", "rock", "jazz"}},
	{FieldAnimationStyle, "none", []string{"none", "2d-traditional", "3d-cgi", "stop-motion", "anime", "motion-graphics", "cut-out", "claymation", "pixel-art", "oil-painting", "charcoal-sketch", "comic-book"}},
	{FieldCharacterDesign, "none", []string{"none", "pixar", "ghibli", "looney-tunes", "90s-anime", "calarts", "south-park", "rick-and-morty"}},
	{FieldBackgroundStyle, "none", []string{"none", "watercolor", "matte-painting", "ghibli", "vector-art", "stylized-3d"}},
	{FieldRenderingStyle, "none", []string{"none", "cel-shaded", "claymation", "paper-cut-out", "glitch-art", "rotoscoping", "pixel-art"}},
	{FieldFrameRate, "none", []string{"none", "on-twos", "smooth-24fps", "variable", "low-choppy"}},
	{FieldWeightAndRigidity, "normal", []string{"normal", "low-gravity", "high-gravity", "lightweight", "heavy"}},
	{FieldMaterialInteractions, "none", []string{"none", "realistic", "cartoonish", "brittle", "soft"}},
	{FieldEnvironmentalForces, "none", []string{"none", "strong-wind", "gentle-breeze", "underwater", "magnetic"}},
}

var index = func() map[Field]fieldSpec {
	m := make(map[Field]fieldSpec, len(catalog))
	for _, s := range catalog {
		m[s.field] = s
	}
	return m
}()

// ShotParameterFields lists the 15 per-shot fields in encoding order.
var ShotParameterFields = []Field{
	FieldShotType, FieldCameraAngle, FieldCameraMovement, FieldLens,
	FieldComposition, FieldLighting, FieldStyle, FieldFilmQuality,
	FieldPacing, FieldTimeOfDay, FieldLocation, FieldDepthOfField,
	FieldTexture, FieldColorPalette, FieldGenre,
}

// Fields returns every registered field in catalog order.
func Fields() []Field {
	out := make([]Field, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, s.field)
	}
	return out
}

// AllowedValues returns the ordered allowed values for a field.
// The returned slice must not be mutated.
func AllowedValues(field Field) []string {
	return index[field].values
}

// IsValid reports whether value is listed for field.
func IsValid(field Field, value string) bool {
	for _, v := range index[field].values {
		if v == value {
			return true
		}
	}
	return false
}

// SentinelOf returns the field's "not meaningfully set" value.
func SentinelOf(field Field) string {
	return index[field].sentinel
}

// Coerce returns value when it is valid for field and the sentinel otherwise.
// The decode path must never pass a model-supplied value through unchecked.
func Coerce(field Field, value string) string {
	if IsValid(field, value) {
		return value
	}
	return SentinelOf(field)
}

// Label converts a field name to space-separated lower-case words,
// e.g. "shotType" -> "shot type".
func Label(field Field) string {
	var b strings.Builder
	for _, r := range string(field) {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HumanizeValue converts internal hyphenation to spaces,
// e.g. "slow-pan-left" -> "slow pan left".
func HumanizeValue(value string) string {
	return strings.ReplaceAll(value, "-", " ")
}

// ValidOptionsText renders the full vocabulary as the "valid options" block
// embedded in the deconstruction system instruction. The model must choose
// from these lists and nothing else.
func ValidOptionsText() string {
	var b strings.Builder
	for _, s := range catalog {
		b.WriteString(fmt.Sprintf("- %s: [%s]\n", s.field, strings.Join(s.values, ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}
