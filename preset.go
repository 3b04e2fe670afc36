package colorlegend

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Control colors for the built-in presets. Interpolation happens in HCL
// space so the ramps stay perceptually even.
var presetStops = map[string][][3]uint8{
	// The BuGn sequential scheme from the ColorBrewer palettes.
	"bugn": {
		{237, 248, 251}, {204, 236, 230}, {153, 216, 201}, {102, 194, 164},
		{65, 174, 118}, {35, 139, 69}, {0, 88, 36},
	},
	"gray": {
		{0, 0, 0}, {255, 255, 255},
	},
	"fire": {
		{0, 0, 0}, {255, 0, 0}, {255, 255, 0}, {255, 255, 255},
	},
}

// PresetNames returns the available preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presetStops))
	for name := range presetStops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset builds an n-entry LUT for a named preset by interpolating its
// control colors. Unknown names are an error.
func Preset(name string, n int) (LUT, error) {
	stops, ok := presetStops[name]
	if !ok {
		return nil, fmt.Errorf("unknown LUT preset %q", name)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: preset size %d", ErrInvalidShape, n)
	}
	return interpolateStops(stops, n), nil
}

func interpolateStops(stops [][3]uint8, n int) LUT {
	lut := make(LUT, n)
	if n == 1 || len(stops) == 1 {
		for i := range lut {
			lut[i] = stops[0]
		}
		return lut
	}
	for i := 0; i < n; i++ {
		// Position in the stop list for output entry i.
		pos := float64(i) / float64(n-1) * float64(len(stops)-1)
		lo := int(pos)
		if lo >= len(stops)-1 {
			lo = len(stops) - 2
		}
		t := pos - float64(lo)
		// Control colors themselves must come through exactly, without a
		// round trip through HCL.
		if t <= 0 {
			lut[i] = stops[lo]
			continue
		}
		if t >= 1 {
			lut[i] = stops[lo+1]
			continue
		}
		c1 := stopColor(stops[lo])
		c2 := stopColor(stops[lo+1])
		c := c1.BlendHcl(c2, t).Clamped()
		r, g, b := c.RGB255()
		lut[i] = [3]uint8{r, g, b}
	}
	return lut
}

func stopColor(c [3]uint8) colorful.Color {
	return colorful.Color{
		R: float64(c[0]) / 255.0,
		G: float64(c[1]) / 255.0,
		B: float64(c[2]) / 255.0,
	}
}
