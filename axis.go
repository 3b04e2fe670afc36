package colorlegend

import (
	"math"
	"strconv"
)

// Axis tick placement for the value axis next to the color bar.

type tick struct {
	Value float64
	Label string
}

// axisTicks returns tick positions covering [min, max] at a step of
// 1, 2 or 5 times a power of ten, aiming for roughly target ticks.
func axisTicks(min, max float64, target int) []tick {
	if target < 2 {
		target = 2
	}
	span := max - min
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return []tick{{Value: min, Label: tickLabel(min, 0)}}
	}
	step := niceStep(span / float64(target))
	first := math.Ceil(min/step) * step

	var ticks []tick
	for v := first; v <= max+step*1e-9; v += step {
		// Snap values that should be exact to the step grid, so labels do
		// not show accumulated float error.
		v = math.Round(v/step) * step
		ticks = append(ticks, tick{Value: v, Label: tickLabel(v, step)})
	}
	return ticks
}

// niceStep rounds raw up to the nearest 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// tickLabel formats a tick value with just enough decimals for the step.
func tickLabel(v, step float64) string {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}
	if decimals > 6 {
		decimals = 6
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if s == "-0" {
		s = "0"
	}
	return s
}
