package colorlegend

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// ColorLegendItem is the color legend widget: a histogram column, a
// vertical gradient bar showing the LUT, and an axis with the value range
// mapped onto the gradient. It keeps the linked ImageItem's levels and
// LUT synchronized with what the legend displays.
type ColorLegendItem struct {
	opts Options

	image       *ImageItem
	unsubscribe func()

	// display is the shown axis range and the single source of truth for
	// the levels. See levels.go.
	display   Levels
	listeners []func(Levels)
	notifying bool

	lut      LUT
	barImg   *ebiten.Image
	barDirty bool

	hist      Histogram
	histValid bool
	histBound float64

	// Edge marker state, in bar visual coordinates 0..len(lut).
	markerMin, markerMax float64
	dragStart            *Levels
	suppressMarkers      bool
	draggingEdge         edge

	label  string
	face   font.Face
	bounds legendBounds
}

// legendBounds is the on-screen geometry of the legend columns.
type legendBounds struct {
	X, Y, W, H int

	HistX, HistW int
	BarX, BarW   int
	AxisX, AxisW int
	BarY, BarH   int
}

// NewColorLegendItem creates a legend with the given options and links it
// to imageItem. imageItem may be nil and set later with SetImageItem.
func NewColorLegendItem(imageItem *ImageItem, opts Options) *ColorLegendItem {
	cl := &ColorLegendItem{
		opts:      opts,
		display:   Levels{Min: 0, Max: 1},
		markerMax: 1,
	}
	cl.SetImageItem(imageItem)
	cl.onEdgeDragFinished()
	return cl
}

// SetFace sets the font face used for tick labels. With a nil face the
// debug font is used.
func (cl *ColorLegendItem) SetFace(face font.Face) {
	cl.face = face
}

// Options returns the legend's current options.
func (cl *ColorLegendItem) Options() Options {
	return cl.opts
}

// ImageItem returns the linked image item, or nil.
func (cl *ColorLegendItem) ImageItem() *ImageItem {
	return cl.image
}

// SetImageItem links the legend to an image item. The previous item's
// change listener is unregistered first, so a stale image can never call
// back into the legend.
func (cl *ColorLegendItem) SetImageItem(imageItem *ImageItem) {
	debugf("SetImageItem")
	if cl.unsubscribe != nil {
		cl.unsubscribe()
		cl.unsubscribe = nil
	}

	cl.image = imageItem

	if cl.image != nil {
		cl.unsubscribe = cl.image.Subscribe(cl.onImageChanged)
		if lut := cl.image.LUT(); lut != nil {
			// Extends the LUT if the legacy scale needs it.
			if err := cl.SetLut(lut); err != nil {
				log.Printf("colorlegend: linked image has an invalid LUT: %v", err)
			}
		}
	}
	cl.onImageChanged()
}

// onImageChanged runs when new image data has been set in the linked
// image item. It recomputes the histogram and re-pushes the levels so the
// new image colorizes consistently.
func (cl *ColorLegendItem) onImageChanged() {
	cl.updateHistogram()
	cl.onRangeChanged()
}

// Lut returns the lookup table held by the image item, or nil.
func (cl *ColorLegendItem) Lut() LUT {
	if cl.image == nil {
		return nil
	}
	return cl.image.LUT()
}

// SetLut sets the lookup table on the image item and redraws the
// gradient bar. Invalid tables are rejected, never coerced.
//
// With the legacy colorize scale enabled the image item receives an
// extended copy of the table (last entry duplicated) while the bar keeps
// drawing the original. A table that already is extended is pushed as-is
// and drawn without its duplicate entry.
func (cl *ColorLegendItem) SetLut(lut LUT) error {
	debugf("SetLut")
	if err := lut.Validate(); err != nil {
		return err
	}

	extended := lut
	if cl.opts.LegacyLUTScale {
		if !lut.IsExtended() {
			debugf("duplicating last LUT entry for the legacy colorize scale")
			extended = lut.Extend()
		} else {
			drawn := make(LUT, len(lut)-1)
			copy(drawn, lut[:len(lut)-1])
			lut = drawn
		}
		if len(lut) != len(extended)-1 {
			panic("colorlegend: extended LUT length mismatch")
		}
	}

	if cl.image != nil {
		cl.image.SetLUT(extended)
		cl.image.SetLegacyScale(cl.opts.LegacyLUTScale)
	}

	cl.lut = lut
	cl.barDirty = true
	cl.onEdgeDragFinished()
	return nil
}

// HistogramVisible reports whether the histogram column is shown.
func (cl *ColorLegendItem) HistogramVisible() bool {
	return cl.opts.ShowHistogram
}

// ShowHistogram toggles the histogram column.
func (cl *ColorLegendItem) ShowHistogram(show bool) {
	cl.opts.ShowHistogram = show
	if show {
		cl.updateHistogram()
	} else {
		cl.histValid = false
	}
}

// Label returns the axis label, or the empty string when none is set.
func (cl *ColorLegendItem) Label() string {
	return cl.label
}

// SetLabel sets the text shown next to the axis.
func (cl *ColorLegendItem) SetLabel(label string) {
	cl.label = label
}

// CurrentHistogram returns the last computed histogram and whether a
// valid one is available.
func (cl *ColorLegendItem) CurrentHistogram() (Histogram, bool) {
	return cl.hist, cl.histValid
}

// updateHistogram recomputes the histogram from the image data. Any
// failure clears the histogram display and never propagates: an image
// swap mid-computation must not take the host application down.
func (cl *ColorLegendItem) updateHistogram() {
	cl.histValid = false
	if !cl.opts.ShowHistogram || cl.image == nil || cl.image.Image() == nil {
		return
	}

	hist, err := cl.computeHistogram(cl.image.Image())
	switch {
	case err == nil:
		cl.hist = hist
		cl.histValid = true
		cl.histBound = hist.HeightBound(cl.opts.HistHeightPercentile)
	case errors.Is(err, ErrNoFiniteData):
		debugf("no finite data; unable to compute histogram: %v", err)
	default:
		log.Printf("colorlegend: unable to compute histogram: %v", err)
	}
}

// computeHistogram wraps ComputeHistogram so an unexpected panic during
// binning or counting degrades to an error at this boundary.
func (cl *ColorLegendItem) computeHistogram(img *ImageData) (hist Histogram, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("histogram computation failed: %v", r)
		}
	}()
	return ComputeHistogram(img, HistogramOptions{
		Step:    cl.opts.SubsampleStep,
		NumBins: cl.opts.NumBins,
	})
}

// SetRect places the widget at the given screen rectangle.
func (cl *ColorLegendItem) SetRect(x, y, w, h int) {
	cl.bounds = computeBounds(x, y, w, h, cl.opts.ShowHistogram)
}

// computeBounds lays out the three columns: histogram, gradient bar,
// axis. Without the histogram the bar shifts left and the histogram
// column collapses.
func computeBounds(x, y, w, h int, showHist bool) legendBounds {
	b := legendBounds{X: x, Y: y, W: w, H: h}
	b.BarY = y + LegendPadding
	b.BarH = h - 2*LegendPadding

	histW := HistogramWidth
	if !showHist {
		histW = 1 // zero-width columns upset the layout
	}
	b.HistX = x + LegendPadding
	b.HistW = histW
	b.BarX = b.HistX + b.HistW
	b.BarW = BarWidth
	b.AxisX = b.BarX + b.BarW
	b.AxisW = w - (b.AxisX - x) - LegendPadding
	if b.AxisW < 0 {
		b.AxisW = 0
	}
	return b
}

// yForValue maps a value in the displayed range to a screen y. The bar
// bottom is the range minimum.
func (cl *ColorLegendItem) yForValue(v float64) float64 {
	span := cl.display.Span()
	if span == 0 {
		return float64(cl.bounds.BarY + cl.bounds.BarH)
	}
	frac := (v - cl.display.Min) / span
	return float64(cl.bounds.BarY) + float64(cl.bounds.BarH)*(1-frac)
}

// yForMarker maps a marker position in bar visual coordinates to a
// screen y.
func (cl *ColorLegendItem) yForMarker(pos float64) float64 {
	extent := float64(len(cl.lut))
	if extent == 0 {
		extent = 1
	}
	return float64(cl.bounds.BarY) + float64(cl.bounds.BarH)*(1-pos/extent)
}

// markerForY is the inverse of yForMarker.
func (cl *ColorLegendItem) markerForY(y float64) float64 {
	extent := float64(len(cl.lut))
	if extent == 0 {
		extent = 1
	}
	frac := 1 - (y-float64(cl.bounds.BarY))/float64(cl.bounds.BarH)
	return frac * extent
}

// Update handles mouse interaction: dragging the edge markers and the
// middle-click range reset. Call it from the game's Update.
func (cl *ColorLegendItem) Update() {
	mx, my := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) && cl.contains(mx, my) {
		cl.ResetFromImage()
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && cl.contains(mx, my) {
		cl.draggingEdge = cl.hitEdgeMarker(float64(my))
	}
	if cl.draggingEdge != edgeNone && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		cl.dragEdgeTo(cl.draggingEdge, cl.markerForY(float64(my)))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && cl.draggingEdge != edgeNone {
		cl.draggingEdge = edgeNone
		cl.onEdgeDragFinished()
	}
}

func (cl *ColorLegendItem) contains(x, y int) bool {
	b := cl.bounds
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// hitEdgeMarker returns which marker is within grab distance of y, or
// edgeNone. When both match, the nearer one wins.
func (cl *ColorLegendItem) hitEdgeMarker(y float64) edge {
	dMin := math.Abs(y - cl.yForMarker(cl.markerMin))
	dMax := math.Abs(y - cl.yForMarker(cl.markerMax))
	if dMin > EdgeMarkerGrab && dMax > EdgeMarkerGrab {
		return edgeNone
	}
	if dMin <= dMax {
		return edgeMin
	}
	return edgeMax
}

// Draw renders the legend. Call it from the game's Draw.
func (cl *ColorLegendItem) Draw(screen *ebiten.Image) {
	b := cl.bounds
	ebitenutil.DrawRect(screen, float64(b.X), float64(b.Y), float64(b.W), float64(b.H), ColorLegendBg)

	if cl.opts.ShowHistogram {
		cl.drawHistogram(screen)
	}
	cl.drawBar(screen)
	cl.drawAxis(screen)
	cl.drawEdgeMarkers(screen)
}

func (cl *ColorLegendItem) drawHistogram(screen *ebiten.Image) {
	b := cl.bounds
	ebitenutil.DrawRect(screen, float64(b.HistX), float64(b.BarY), float64(b.HistW), float64(b.BarH), ColorHistogramBg)
	if !cl.histValid || cl.histBound <= 0 {
		return
	}

	fill := color.RGBA{cl.opts.HistFillColor[0], cl.opts.HistFillColor[1], cl.opts.HistFillColor[2], 0xff}
	right := float64(b.HistX + b.HistW)
	for i, count := range cl.hist.Counts {
		if count <= 0 {
			continue
		}
		w := count / cl.histBound * float64(b.HistW)
		if w > float64(b.HistW) {
			w = float64(b.HistW) // bins above the percentile bound clip
		}
		yTop := cl.yForValue(cl.hist.Edges[i+1])
		yBot := cl.yForValue(cl.hist.Edges[i])
		yTop = clampFloat(yTop, float64(b.BarY), float64(b.BarY+b.BarH))
		yBot = clampFloat(yBot, float64(b.BarY), float64(b.BarY+b.BarH))
		if yBot-yTop < 1 {
			yBot = yTop + 1
		}
		ebitenutil.DrawRect(screen, right-w, yTop, w, yBot-yTop, fill)
	}
}

func (cl *ColorLegendItem) drawBar(screen *ebiten.Image) {
	b := cl.bounds
	ebitenutil.DrawRect(screen, float64(b.BarX), float64(b.BarY), float64(b.BarW), float64(b.BarH), ColorBarBorder)

	if len(cl.lut) == 0 {
		return
	}
	if cl.barDirty || cl.barImg == nil {
		cl.barImg = buildBarImage(cl.lut)
		cl.barDirty = false
	}

	op := &ebiten.DrawImageOptions{}
	innerW := float64(b.BarW - 2*BarBorderWidth)
	innerH := float64(b.BarH - 2*BarBorderWidth)
	op.GeoM.Scale(innerW, innerH/float64(len(cl.lut)))
	op.GeoM.Translate(float64(b.BarX+BarBorderWidth), float64(b.BarY+BarBorderWidth))
	screen.DrawImage(cl.barImg, op)
}

// buildBarImage renders the LUT as a 1-pixel-wide column, first entry at
// the bottom.
func buildBarImage(lut LUT) *ebiten.Image {
	pix := make([]byte, 4*len(lut))
	for i, c := range lut {
		j := len(lut) - 1 - i // flip so lut[0] maps to the bar bottom
		pix[4*j] = c[0]
		pix[4*j+1] = c[1]
		pix[4*j+2] = c[2]
		pix[4*j+3] = 0xff
	}
	img := ebiten.NewImage(1, len(lut))
	img.WritePixels(pix)
	return img
}

func (cl *ColorLegendItem) drawAxis(screen *ebiten.Image) {
	b := cl.bounds
	ebitenutil.DrawRect(screen, float64(b.AxisX), float64(b.BarY), 1, float64(b.BarH), ColorAxisLine)

	tickLen := cl.opts.MaxTickLength
	if tickLen < 1 {
		tickLen = 1
	}
	for _, tk := range axisTicks(cl.display.Min, cl.display.Max, 6) {
		y := cl.yForValue(tk.Value)
		if y < float64(b.BarY) || y > float64(b.BarY+b.BarH) {
			continue
		}
		ebitenutil.DrawRect(screen, float64(b.AxisX), y, float64(tickLen), 1, ColorAxisLine)
		drawTextAt(screen, cl.face, tk.Label, b.AxisX+tickLen+TickTextPad, int(y)-6, ColorAxisText)
	}

	if cl.label != "" {
		drawTextAt(screen, cl.face, cl.label, b.AxisX+TickTextPad, b.Y+2, ColorAxisText)
	}
}

func (cl *ColorLegendItem) drawEdgeMarkers(screen *ebiten.Image) {
	b := cl.bounds
	for _, m := range []struct {
		pos float64
		hot bool
	}{
		{cl.markerMin, cl.draggingEdge == edgeMin},
		{cl.markerMax, cl.draggingEdge == edgeMax},
	} {
		y := cl.yForMarker(m.pos)
		col := ColorEdgeMarker
		if m.hot {
			col = ColorEdgeHover
		}
		// Dashed line across all three columns.
		for x := b.X + LegendPadding; x < b.X+b.W-LegendPadding; x += 9 {
			ebitenutil.DrawRect(screen, float64(x), y-EdgeMarkerThick/2, 4, EdgeMarkerThick, col)
		}
	}
}

// drawTextAt draws text using the provided face. If face is nil, falls back to ebitenutil.DebugPrintAt.
func drawTextAt(screen *ebiten.Image, face font.Face, s string, x, y int, col color.Color) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		return
	}
	// text.Draw expects y to be baseline; DebugPrintAt uses top-left.
	// Adjust by ascent so text appears where DebugPrintAt placed it.
	ascent := face.Metrics().Ascent.Round()
	text.Draw(screen, s, face, x, y+ascent, col)
}
