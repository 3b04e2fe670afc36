package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/sqweek/dialog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/example/colorlegend"
)

const (
	windowWidth  = 900
	windowHeight = 600
	legendWidth  = 130
	statePath    = "state.yml"

	imgRows = 300
	imgCols = 200
)

type Game struct {
	imageItem *colorlegend.ImageItem
	legend    *colorlegend.ColorLegendItem
	face      font.Face

	presets   []string
	presetIdx int

	// Cached colorized plot image; rebuilt when levels or data change.
	plotImg   *ebiten.Image
	plotDirty bool
}

func NewGame() *Game {
	g := &Game{
		presets: colorlegend.PresetNames(),
	}
	g.face = loadFace()

	opts := colorlegend.DefaultOptions()
	if loaded, err := colorlegend.LoadOptions(statePath); err == nil {
		opts = loaded
	} else if !os.IsNotExist(err) {
		log.Printf("LoadOptions: %v", err)
	}

	g.imageItem = colorlegend.NewImageItem()
	g.legend = colorlegend.NewColorLegendItem(g.imageItem, opts)
	g.legend.SetFace(g.face)
	g.legend.SetLabel("value")
	g.legend.OnLevelsChanged(func(colorlegend.Levels) { g.plotDirty = true })

	g.applyPreset(0)
	g.setNoiseImage()
	return g
}

// loadFace tries a local TTF and falls back to the basic bitmap font.
func loadFace() font.Face {
	b, err := os.ReadFile("res/Roboto-Regular.ttf")
	if err != nil {
		return basicfont.Face7x13
	}
	tt, err := opentype.Parse(b)
	if err != nil {
		log.Printf("could not parse ttf: %v; falling back to basic font", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: 12, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("could not create font face: %v; falling back to basic font", err)
		return basicfont.Face7x13
	}
	return face
}

func (g *Game) applyPreset(idx int) {
	g.presetIdx = (idx + len(g.presets)) % len(g.presets)
	lut, err := colorlegend.Preset(g.presets[g.presetIdx], 64)
	if err != nil {
		log.Printf("preset: %v", err)
		return
	}
	if err := g.legend.SetLut(lut); err != nil {
		log.Printf("SetLut: %v", err)
		return
	}
	g.plotDirty = true
}

func (g *Game) setImage(values []float64, rows, cols int, integer bool) {
	g.imageItem.SetImage(values, rows, cols, integer)
	g.legend.ResetFromImage()
	g.plotDirty = true
}

// setNoiseImage fills the plot with smoothed gaussian noise, the same
// test data the histogram is most interesting for.
func (g *Game) setNoiseImage() {
	raw := make([]float64, imgRows*imgCols)
	for i := range raw {
		raw[i] = rand.NormFloat64()
	}
	smoothed := boxBlur(raw, imgRows, imgCols, 3)
	for i := range smoothed {
		smoothed[i] *= 20
	}
	g.setImage(smoothed, imgRows, imgCols, false)
}

// setGradientImage fills the plot with an integer-valued diagonal ramp in
// [100, 150], which exercises the integer binning path.
func (g *Game) setGradientImage() {
	values := make([]float64, imgRows*imgCols)
	for r := 0; r < imgRows; r++ {
		for c := 0; c < imgCols; c++ {
			frac := float64(r+c) / float64(imgRows+imgCols-2)
			values[r*imgCols+c] = math.Floor(100 + frac*50)
		}
	}
	g.setImage(values, imgRows, imgCols, true)
}

// setConstantImage fills the plot with a single value, the degenerate
// histogram case.
func (g *Game) setConstantImage() {
	values := make([]float64, imgRows*imgCols)
	for i := range values {
		values[i] = 42
	}
	g.setImage(values, imgRows, imgCols, true)
}

func (g *Game) openImageFile() {
	path, err := dialog.File().Filter("PNG", "png").Title("Load Image").Load()
	if err != nil {
		if err != dialog.ErrCancelled {
			log.Printf("file open failed: %v", err)
		}
		return
	}
	if path == "" {
		return
	}
	values, rows, cols, err := loadPNGValues(path)
	if err != nil {
		log.Printf("load image failed: %v", err)
		return
	}
	g.setImage(values, rows, cols, true)
}

// loadPNGValues decodes a PNG and converts it to grayscale values.
func loadPNGValues(path string) (values []float64, rows, cols int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, err
	}
	bounds := img.Bounds()
	rows, cols = bounds.Dy(), bounds.Dx()
	values = make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, gg, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray := (299*float64(r) + 587*float64(gg) + 114*float64(b)) / 1000 / 257
			values[y*cols+x] = math.Round(gray)
		}
	}
	return values, rows, cols, nil
}

// boxBlur applies the given number of passes of a 3x3 mean filter.
func boxBlur(values []float64, rows, cols, passes int) []float64 {
	src := values
	for p := 0; p < passes; p++ {
		dst := make([]float64, len(src))
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				var sum float64
				var n int
				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						rr, cc := r+dr, c+dc
						if rr < 0 || rr >= rows || cc < 0 || cc >= cols {
							continue
						}
						sum += src[rr*cols+cc]
						n++
					}
				}
				dst[r*cols+c] = sum / float64(n)
			}
		}
		src = dst
	}
	return src
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.setNoiseImage()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.setGradientImage()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.setConstantImage()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.legend.ResetFromImage()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.legend.ShowHistogram(!g.legend.HistogramVisible())
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.applyPreset(g.presetIdx + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openImageFile()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := colorlegend.SaveOptions(statePath, g.legend.Options()); err != nil {
			log.Printf("SaveOptions: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.legend.SetMaxLevel(g.legend.Levels().Max + levelStep(g.legend.Levels()))
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.legend.SetMaxLevel(g.legend.Levels().Max - levelStep(g.legend.Levels()))
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.legend.SetMinLevel(g.legend.Levels().Min + levelStep(g.legend.Levels()))
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.legend.SetMinLevel(g.legend.Levels().Min - levelStep(g.legend.Levels()))
	}

	g.legend.Update()
	return nil
}

// levelStep nudges a level by a tenth of the current span.
func levelStep(l colorlegend.Levels) float64 {
	step := l.Span() / 10
	if step <= 0 {
		step = 0.1
	}
	return step
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorlegend.ColorLegendBg)

	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	plotW := w - legendWidth

	if g.plotDirty || g.plotImg == nil {
		g.plotImg = g.imageItem.Colorize()
		g.plotDirty = false
	}
	if g.plotImg != nil {
		op := &ebiten.DrawImageOptions{}
		sx := float64(plotW) / float64(g.plotImg.Bounds().Dx())
		sy := float64(h-40) / float64(g.plotImg.Bounds().Dy())
		op.GeoM.Scale(sx, sy)
		screen.DrawImage(g.plotImg, op)
	}

	g.legend.SetRect(plotW, 0, legendWidth, h-40)
	g.legend.Draw(screen)

	levels := g.legend.Levels()
	hud := fmt.Sprintf("preset %s - levels (%.2f, %.2f)", g.presets[g.presetIdx], levels.Min, levels.Max)
	drawHUD(screen, g.face, hud, 8, h-28)
	drawHUD(screen, g.face, "N noise - G gradient - C constant - R reset - H histogram - P preset - O open - S save", 8, h-14)
}

// drawHUD draws a hint line. With a nil face the debug font is used.
func drawHUD(screen *ebiten.Image, face font.Face, s string, x, y int) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		return
	}
	ascent := face.Metrics().Ascent.Round()
	text.Draw(screen, s, face, x, y+ascent, color.White)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Match the window size so resizing does not letterbox the plot.
	return outsideWidth, outsideHeight
}

func main() {
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Color Legend Demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
