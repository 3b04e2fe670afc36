package colorlegend

import "image/color"

// Color Palette
var (
	ColorLegendBg     = color.RGBA{0x12, 0x12, 0x14, 0xff} // Widget background
	ColorHistogramBg  = color.RGBA{0x18, 0x18, 0x1c, 0xff} // Histogram column background
	ColorHistFill     = color.RGBA{100, 100, 200, 0xff}    // Default histogram fill
	ColorBarBorder    = color.RGBA{0x44, 0x44, 0x50, 0xff} // Border around the gradient bar
	ColorAxisLine     = color.RGBA{0xaa, 0xaa, 0xaa, 0xff} // Axis line and ticks
	ColorAxisText     = color.RGBA{0xdd, 0xdd, 0xdd, 0xff} // Tick labels and axis label
	ColorEdgeMarker   = color.RGBA{0xdd, 0xdd, 0xdd, 0xff} // Draggable edge markers
	ColorEdgeHover    = color.RGBA{100, 100, 200, 0xff}    // Marker under the cursor / dragged
)

// Layout Constants
const (
	HistogramWidth  = 50 // Width of the histogram column
	BarWidth        = 18 // Width of the gradient bar
	BarBorderWidth  = 1
	AxisWidth       = 52 // Width reserved for ticks and labels
	TickTextPad     = 3
	EdgeMarkerGrab  = 6 // Vertical hit distance for grabbing a marker, in pixels
	EdgeMarkerThick = 2
	LegendPadding   = 1
)
