package colorlegend

import "math"

// Edge markers. The markers live in the bar's visual coordinate system,
// which runs from 0 to len(lut): dragging one marker while the other
// stays fixed rescales the value range by the factor the visual extent
// changed by.

type edge int

const (
	edgeNone edge = iota
	edgeMin
	edgeMax
)

// minDragFactor floors the rescale factor so a drag can never collapse or
// invert the range.
const minDragFactor = 0.01

// dragEdgeTo moves one marker to a visual position as part of a user
// drag. The first move of a drag snaps the markers to the nominal extent
// and records the levels at drag start; subsequent moves rescale against
// that baseline.
func (cl *ColorLegendItem) dragEdgeTo(which edge, pos float64) {
	if len(cl.lut) == 0 {
		debugf("no LUT set; ignoring edge drag")
		return
	}
	if cl.dragStart == nil {
		cl.resetEdgeMarkers()
		start := cl.Levels()
		cl.dragStart = &start
		debugf("edge range at drag start: %v", start)
	}
	switch which {
	case edgeMin:
		cl.markerMin = pos
	case edgeMax:
		cl.markerMax = pos
	default:
		panic("colorlegend: unexpected edge marker")
	}
	cl.onEdgeMarkerMoved(which)
}

// onEdgeMarkerMoved recomputes the levels from the marker positions.
// Programmatic repositioning (the reset at drag end) sets suppressMarkers
// and must not land here; only user-initiated moves count.
func (cl *ColorLegendItem) onEdgeMarkerMoved(which edge) {
	if cl.suppressMarkers || cl.dragStart == nil {
		return
	}

	orgVisualSpan := float64(len(cl.lut))
	curVisualSpan := cl.markerMax - cl.markerMin
	factor := math.Max(minDragFactor, curVisualSpan/orgVisualSpan)

	// Extending the visual extent by a factor contracts the value span by
	// the same factor, zooming the gradient into a narrower range.
	orgMin, orgMax := cl.dragStart.Min, cl.dragStart.Max
	orgSpan := math.Abs(orgMax - orgMin)

	var levels Levels
	switch which {
	case edgeMin:
		levels = Levels{Min: orgMax - orgSpan/factor, Max: orgMax}
	case edgeMax:
		levels = Levels{Min: orgMin, Max: orgMin + orgSpan/factor}
	}
	cl.SetLevels(levels, 0)
}

// onEdgeDragFinished resets the markers to the nominal 0..len(lut) extent
// and leaves drag-tracking state.
func (cl *ColorLegendItem) onEdgeDragFinished() {
	cl.resetEdgeMarkers()
	cl.dragStart = nil
}

// resetEdgeMarkers repositions both markers without re-triggering level
// updates.
func (cl *ColorLegendItem) resetEdgeMarkers() {
	cl.suppressMarkers = true
	cl.markerMin = 0
	if len(cl.lut) > 0 {
		cl.markerMax = float64(len(cl.lut))
	} else {
		cl.markerMax = 1
	}
	cl.suppressMarkers = false
}
