package colorlegend

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageItem holds the displayed image: its pixel values, the levels that
// map values onto the color gradient, and the lookup table. It is owned
// by the plot view; the legend keeps a non-owning reference and registers
// a change listener while linked.
type ImageItem struct {
	data   *ImageData
	levels Levels
	lut    LUT

	// legacyScale selects the old colorize convention that maps the value
	// span onto len(lut)-1 swatches. The legend compensates by pushing an
	// extended LUT when this is set.
	legacyScale bool

	listeners map[int]func()
	nextID    int
}

// NewImageItem returns an empty image item with levels (0, 1).
func NewImageItem() *ImageItem {
	return &ImageItem{
		levels:    Levels{Min: 0, Max: 1},
		listeners: make(map[int]func()),
	}
}

// SetImage replaces the pixel data and notifies listeners. values is in
// row-major order and may contain NaN or infinities.
func (it *ImageItem) SetImage(values []float64, rows, cols int, integer bool) {
	it.data = &ImageData{Values: values, Rows: rows, Cols: cols, Integer: integer}
	it.notify()
}

// ClearImage removes the pixel data and notifies listeners.
func (it *ImageItem) ClearImage() {
	it.data = nil
	it.notify()
}

// Image returns the current pixel data, or nil when absent.
func (it *ImageItem) Image() *ImageData {
	return it.data
}

// IntegerData reports whether the current image holds integer-kind data.
// False when no image is set.
func (it *ImageItem) IntegerData() bool {
	return it.data != nil && it.data.Integer
}

// Levels returns the (min, max) value range currently mapped onto the
// color gradient.
func (it *ImageItem) Levels() Levels {
	return it.levels
}

// SetLevels sets the value range mapped onto the color gradient.
func (it *ImageItem) SetLevels(levels Levels) {
	it.levels = levels
}

// LUT returns the current lookup table, or nil when none is set.
func (it *ImageItem) LUT() LUT {
	return it.lut
}

// SetLUT replaces the lookup table.
func (it *ImageItem) SetLUT(lut LUT) {
	it.lut = lut
}

// SetLegacyScale switches the colorize scale to the len(lut)-1
// convention of the old rendering backend.
func (it *ImageItem) SetLegacyScale(legacy bool) {
	it.legacyScale = legacy
}

// Subscribe registers fn to be called whenever the image data changes.
// The returned function unregisters it; callers must unsubscribe before
// linking the listener to another image item.
func (it *ImageItem) Subscribe(fn func()) (unsubscribe func()) {
	id := it.nextID
	it.nextID++
	it.listeners[id] = fn
	return func() { delete(it.listeners, id) }
}

func (it *ImageItem) notify() {
	for _, fn := range it.listeners {
		fn()
	}
}

// Colorize renders the image through the current levels and LUT. Pixels
// without a finite value come out fully transparent. Returns nil when
// there is no image or no LUT.
func (it *ImageItem) Colorize() *ebiten.Image {
	if it.data == nil || len(it.lut) == 0 {
		return nil
	}
	d := it.data
	pix := make([]byte, 4*d.Rows*d.Cols)

	span := it.levels.Max - it.levels.Min
	scale := float64(len(it.lut))
	if it.legacyScale {
		scale = float64(len(it.lut) - 1)
	}
	for i, v := range d.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		var idx int
		if span > 0 {
			idx = int((v - it.levels.Min) / span * scale)
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(it.lut) {
			idx = len(it.lut) - 1
		}
		c := it.lut[idx]
		pix[4*i] = c[0]
		pix[4*i+1] = c[1]
		pix[4*i+2] = c[2]
		pix[4*i+3] = 0xff
	}
	img := ebiten.NewImage(d.Cols, d.Rows)
	img.WritePixels(pix)
	return img
}
