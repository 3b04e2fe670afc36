package colorlegend

import (
	"log"
	"math"
)

// Levels is the (min, max) value range mapped onto the color gradient.
// Min < Max in normal operation; equal values are a legal degenerate
// state that range adjustments must not collapse further.
type Levels struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Span returns Max - Min.
func (l Levels) Span() float64 {
	return l.Max - l.Min
}

// SetLevels sets the value range of the legend. This is the single
// authoritative entry point for level changes: it updates the displayed
// axis range to (min - padding*span, max + padding*span) and the
// resulting range change pushes the levels to the linked image item and
// notifies listeners, all before SetLevels returns.
//
// padding is the fraction of the span added on each side; use 0 for an
// exact range.
func (cl *ColorLegendItem) SetLevels(levels Levels, padding float64) {
	if cl.notifying {
		// A levels-changed listener is calling back in. Completing the call
		// would notify the listeners again and loop forever.
		log.Printf("colorlegend: SetLevels called from a levels-changed listener; ignored")
		return
	}
	pad := padding * levels.Span()
	cl.display = Levels{Min: levels.Min - pad, Max: levels.Max + pad}
	cl.onRangeChanged()
}

// SetLevelsAuto sets the value range with an automatic padding chosen
// from the widget height, the way plot views suggest padding.
func (cl *ColorLegendItem) SetLevelsAuto(levels Levels) {
	cl.SetLevels(levels, cl.suggestPadding())
}

func (cl *ColorLegendItem) suggestPadding() float64 {
	h := cl.bounds.BarH
	if h <= 0 {
		h = 200
	}
	return clampFloat(1/math.Sqrt(float64(h)), 0.02, 0.1)
}

// Levels returns the value range of the legend. By construction this is
// the displayed axis range; there is no second copy to drift out of sync.
func (cl *ColorLegendItem) Levels() Levels {
	return cl.display
}

// onRangeChanged runs after the displayed range changed. It reads the
// range back out, pushes it to the image item and notifies listeners.
// It must never call SetLevels again: that would loop forever.
func (cl *ColorLegendItem) onRangeChanged() {
	if cl.notifying {
		return
	}
	levels := cl.Levels()
	if cl.image != nil {
		cl.image.SetLevels(levels)
	}

	cl.notifying = true
	for _, fn := range cl.listeners {
		fn(levels)
	}
	cl.notifying = false
}

// OnLevelsChanged registers fn to be called with the new levels after
// every level change. fn must not call SetLevels; such calls are dropped.
func (cl *ColorLegendItem) OnLevelsChanged(fn func(Levels)) {
	cl.listeners = append(cl.listeners, fn)
}

// ResetFromImage sets the levels to the finite min and max of the linked
// image, or to (0, 1) when no image is present.
func (cl *ColorLegendItem) ResetFromImage() {
	debugf("reset color levels from image")
	var img *ImageData
	if cl.image != nil {
		img = cl.image.Image()
	}
	levels := Levels{Min: 0, Max: 1}
	if mn, mx, ok := finiteRange(img); ok {
		levels = Levels{Min: mn, Max: mx}
	}
	cl.SetLevels(levels, 0)
}

// SetMinLevel sets only the lower level, keeping the current upper level.
// If the result would not be increasing, the upper level is moved to
// min+1 so the interval stays strictly increasing.
func (cl *ColorLegendItem) SetMinLevel(v float64) {
	levels := cl.Levels()
	levels.Min = v
	if levels.Max <= levels.Min {
		levels.Max = levels.Min + 1
	}
	cl.SetLevels(levels, 0)
}

// SetMaxLevel sets only the upper level, keeping the current lower level.
// If the result would not be increasing, the lower level is moved to
// max-1.
func (cl *ColorLegendItem) SetMaxLevel(v float64) {
	levels := cl.Levels()
	levels.Max = v
	if levels.Max <= levels.Min {
		levels.Min = levels.Max - 1
	}
	cl.SetLevels(levels, 0)
}
