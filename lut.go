// Package colorlegend provides a color legend widget for 2D image plots.
//
// The legend shows a vertical gradient bar for a lookup table (LUT), an
// axis with the value range mapped onto that gradient, and optionally a
// histogram of the linked image's pixel values. Dragging the axis range or
// the edge markers changes the levels, which are pushed to the linked
// ImageItem so the displayed image recolors immediately.
package colorlegend

import (
	"errors"
	"fmt"
	"image/color"
)

// Validation errors for lookup tables and raw color tables.
var (
	ErrInvalidShape = errors.New("invalid LUT shape")
	ErrInvalidType  = errors.New("invalid LUT entry type")
)

// LUT is an ordered list of RGB triples that maps a normalized value onto
// a color gradient. Entries are 8-bit per channel; wider channels would
// force the colorized image into a wider pixel format, which costs memory
// and is significantly slower to upload.
type LUT [][3]uint8

// ParseLUT validates a raw integer table (for example one decoded from
// YAML) and converts it to a LUT. Every row must have exactly 3 entries
// and every entry must fit in 0..255.
func ParseLUT(raw [][]int) (LUT, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidShape)
	}
	lut := make(LUT, len(raw))
	for i, row := range raw {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: row %d has %d entries, want 3", ErrInvalidShape, i, len(row))
		}
		for j, v := range row {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: row %d entry %d is %d, want 0..255", ErrInvalidType, i, j, v)
			}
			lut[i][j] = uint8(v)
		}
	}
	return lut, nil
}

// Validate reports whether the LUT is usable: at least one entry.
func (l LUT) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: empty LUT", ErrInvalidShape)
	}
	return nil
}

// IsExtended reports whether the last two entries are equal, i.e. whether
// the table already carries the duplicated last entry added by Extend.
func (l LUT) IsExtended() bool {
	if len(l) < 2 {
		return false
	}
	return l[len(l)-1] == l[len(l)-2]
}

// Extend returns a new table with the last entry duplicated. The legacy
// colorize scale maps the value range onto len(lut)-1 swatches, so the
// duplicate entry compensates for the off-by-one.
//
// Extend does not check IsExtended itself: calling it on an already
// extended table duplicates the entry again, which is wrong. Callers must
// check IsExtended first.
func (l LUT) Extend() LUT {
	out := make(LUT, len(l)+1)
	copy(out, l)
	out[len(l)] = l[len(l)-1]
	return out
}

// Reversed returns a new table with the entries in opposite order.
func (l LUT) Reversed() LUT {
	out := make(LUT, len(l))
	for i, c := range l {
		out[len(l)-1-i] = c
	}
	return out
}

// At returns entry i as an opaque color.
func (l LUT) At(i int) color.RGBA {
	c := l[i]
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
}
