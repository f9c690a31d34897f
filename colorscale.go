package molmap

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// scaleSteps is the number of discrete colors a scale is interpolated into
// for lookup.
const scaleSteps = 100

// ColorScale is one of three variants resolved at the start of field
// rendering into three anchor colors (low, mid, high): a registry name, a
// continuous sampler, or an explicit 3-color list.
type ColorScale interface {
	anchors() ([3]colorful.Color, error)
}

// NamedScale selects a scale from the built-in registry.
type NamedScale string

// namedScales maps registry names to their anchors. The "alarm" scale is
// the diverging default: far from zero in either direction maps to the
// same alarm hue, near zero to white.
var namedScales = map[NamedScale][3]colorful.Color{
	"alarm": {
		{R: 1, G: 0.2, B: 0.2},
		{R: 1, G: 1, B: 1},
		{R: 1, G: 0.2, B: 0.2},
	},
	"bluewhitered": {
		{R: 0.2, G: 0.2, B: 1},
		{R: 1, G: 1, B: 1},
		{R: 1, G: 0.2, B: 0.2},
	},
}

func (n NamedScale) anchors() ([3]colorful.Color, error) {
	cs, ok := namedScales[n]
	if !ok {
		return [3]colorful.Color{}, &UnsupportedColorScaleError{Scale: string(n)}
	}
	return cs, nil
}

// ContinuousScale samples a continuous colormap; it is resolved by probing
// the field fractions 0, 0.5 and 1.
type ContinuousScale func(t float64) color.Color

func (f ContinuousScale) anchors() ([3]colorful.Color, error) {
	if f == nil {
		return [3]colorful.Color{}, &UnsupportedColorScaleError{Scale: "nil continuous scale"}
	}
	var out [3]colorful.Color
	for i, t := range []float64{0, 0.5, 1} {
		c, ok := colorful.MakeColor(f(t))
		if !ok {
			return out, &UnsupportedColorScaleError{Scale: "continuous scale produced a fully transparent color"}
		}
		out[i] = c
	}
	return out, nil
}

// ExplicitColors supplies the three anchors directly.
type ExplicitColors [3]color.Color

func (e ExplicitColors) anchors() ([3]colorful.Color, error) {
	var out [3]colorful.Color
	for i, c := range e {
		if c == nil {
			return out, &UnsupportedColorScaleError{Scale: "explicit color list with nil entry"}
		}
		cc, ok := colorful.MakeColor(c)
		if !ok {
			return out, &UnsupportedColorScaleError{Scale: "explicit color list with fully transparent entry"}
		}
		out[i] = cc
	}
	return out, nil
}

// DefaultScale returns the diverging alarm-white-alarm scale used for
// uncertainty depiction.
func DefaultScale() ColorScale { return NamedScale("alarm") }

// colorLookup is a resolved scale: anchors blended into scaleSteps discrete
// entries, low anchor at index 0, mid at the center, high at the end.
type colorLookup struct {
	steps [scaleSteps]colorful.Color
}

func resolveScale(cs ColorScale) (*colorLookup, error) {
	if cs == nil {
		return nil, &UnsupportedColorScaleError{Scale: "nil"}
	}
	anchors, err := cs.anchors()
	if err != nil {
		return nil, err
	}
	lut := &colorLookup{}
	for i := 0; i < scaleSteps; i++ {
		t := float64(i) / float64(scaleSteps-1)
		if t < 0.5 {
			lut.steps[i] = anchors[0].BlendRgb(anchors[1], t*2)
		} else {
			lut.steps[i] = anchors[1].BlendRgb(anchors[2], (t-0.5)*2)
		}
	}
	return lut, nil
}

// at maps a field value, normalized against the field's largest magnitude,
// onto the lookup table: negative extremes to the low anchor, zero to the
// mid anchor, positive extremes to the high anchor.
func (l *colorLookup) at(v, maxAbs float64) color.Color {
	t := 0.5
	if maxAbs > 0 {
		t += v / (2 * maxAbs)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return l.steps[int(t*float64(scaleSteps-1)+0.5)]
}
