package colorlegend

import (
	"errors"
	"log"
	"math"
	"sort"
)

// ErrNoFiniteData is returned when a histogram is requested for an image
// whose (subsampled) values are all NaN or infinite. It is a recoverable
// condition: the legend clears the histogram display and keeps running.
var ErrNoFiniteData = errors.New("no finite data")

// Verbose enables debug logging for the package.
var Verbose = false

func debugf(format string, args ...any) {
	if Verbose {
		log.Printf(format, args...)
	}
}

// ImageData is a 2D numeric array in row-major order. Values may contain
// NaN or infinities; those never propagate into computed ranges. Integer
// marks data of integer kind, which gets integer-aligned histogram bins.
type ImageData struct {
	Values  []float64
	Rows    int
	Cols    int
	Integer bool
}

// At returns the value at row r, column c.
func (d *ImageData) At(r, c int) float64 {
	return d.Values[r*d.Cols+c]
}

// Size returns the total number of pixels.
func (d *ImageData) Size() int {
	return d.Rows * d.Cols
}

// SubsampleStep selects the stride used to skip pixels when estimating
// the histogram range on large images. The zero value means automatic:
// per-axis strides are chosen so the analyzed data is roughly
// autoTargetSize pixels along each axis.
type SubsampleStep struct {
	Row, Col int
	explicit bool
}

// AutoStep returns the automatic subsample step.
func AutoStep() SubsampleStep { return SubsampleStep{} }

// Step returns a step that applies the same stride to both axes.
func Step(n int) SubsampleStep { return SubsampleStep{Row: n, Col: n, explicit: true} }

// StepPair returns a step with independent row and column strides.
func StepPair(row, col int) SubsampleStep {
	return SubsampleStep{Row: row, Col: col, explicit: true}
}

const autoTargetSize = 200

// strides resolves the step to concrete per-axis strides for an image of
// the given dimensions. Strides are never smaller than 1.
func (s SubsampleStep) strides(rows, cols int) (int, int) {
	sr, sc := s.Row, s.Col
	if !s.explicit {
		sr = int(math.Ceil(float64(rows) / autoTargetSize))
		sc = int(math.Ceil(float64(cols) / autoTargetSize))
	}
	if sr < 1 {
		sr = 1
	}
	if sc < 1 {
		sc = 1
	}
	return sr, sc
}

// HistogramOptions configures ComputeHistogram.
type HistogramOptions struct {
	Step    SubsampleStep
	NumBins int // default 500
}

// DefaultNumBins is the histogram bin count used when none is given.
const DefaultNumBins = 500

// Histogram is a computed value histogram: len(Edges) == len(Counts)+1,
// except for the degenerate constant-image case where Edges is the
// two-point set [min, max] with a single all-inclusive bin.
type Histogram struct {
	Edges  []float64
	Counts []float64
}

// Centers returns the midpoints of the bins, for plotting.
func (h Histogram) Centers() []float64 {
	centers := make([]float64, len(h.Counts))
	for i := range centers {
		centers[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return centers
}

// HeightBound returns the pct-th percentile of the bin counts, used as
// the display scale bound. With pct = 100 this is the true maximum; lower
// values discard dominant bins so the rest stay readable.
func (h Histogram) HeightBound(pct float64) float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	return percentile(h.Counts, pct)
}

// ComputeHistogram computes a histogram of the image values.
//
// The range and bin width are derived from a subsampled view of the image
// so the estimate stays cheap on large images; the counts are then taken
// over the full-resolution array. Returns ErrNoFiniteData when the image
// holds no finite values at all.
func ComputeHistogram(img *ImageData, opts HistogramOptions) (Histogram, error) {
	if img == nil || img.Size() == 0 {
		return Histogram{}, ErrNoFiniteData
	}
	numBins := opts.NumBins
	if numBins <= 0 {
		numBins = DefaultNumBins
	}

	mn, mx, ok := subsampledRange(img, opts.Step)
	if !ok {
		return Histogram{}, ErrNoFiniteData
	}

	edges := histogramEdges(mn, mx, numBins, img.Integer)
	if len(edges) < 2 {
		edges = []float64{mn, mx}
	}
	counts := countValues(img.Values, edges)
	return Histogram{Edges: edges, Counts: counts}, nil
}

// subsampledRange returns the min and max over the finite values of the
// strided view of the image. ok is false when no finite value was seen.
func subsampledRange(img *ImageData, step SubsampleStep) (mn, mx float64, ok bool) {
	sr, sc := step.strides(img.Rows, img.Cols)
	mn = math.Inf(1)
	mx = math.Inf(-1)
	for r := 0; r < img.Rows; r += sr {
		for c := 0; c < img.Cols; c += sc {
			v := img.At(r, c)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < mn {
				mn = v
			}
			if v > mx {
				mx = v
			}
			ok = true
		}
	}
	return mn, mx, ok
}

// histogramEdges builds bin edges for the range [mn, mx].
//
// For integer data the bin width is an integer of at least 1, and the
// edges run slightly past mx so the final bin fully contains the maximum
// value; without that the half-open bin convention would drop it. For
// float data the edges are numBins evenly spaced points from mn to mx.
func histogramEdges(mn, mx float64, numBins int, forIntegers bool) []float64 {
	if mn == mx || numBins < 2 {
		// A constant image still renders as a flat distribution.
		return []float64{mn, mx}
	}
	if forIntegers {
		width := math.Ceil((mx - mn) / float64(numBins))
		if width < 1 {
			width = 1
		}
		debugf("histogram edges: mn %v, mx %v, width %v, mx+1.01*width = %v",
			mn, mx, width, mx+1.01*width)
		var edges []float64
		for e := mn; e < mx+1.01*width; e += width {
			edges = append(edges, math.Trunc(e))
		}
		return edges
	}
	edges := make([]float64, numBins)
	span := mx - mn
	for i := range edges {
		edges[i] = mn + span*float64(i)/float64(numBins-1)
	}
	edges[numBins-1] = mx
	return edges
}

// countValues counts the finite values of data into the bins defined by
// edges. Bins are half-open [edge[i], edge[i+1]) with the last bin closed
// on both sides.
func countValues(data []float64, edges []float64) []float64 {
	nBins := len(edges) - 1
	if nBins < 1 {
		nBins = 1
	}
	counts := make([]float64, nBins)
	lo, hi := edges[0], edges[len(edges)-1]
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo || v > hi {
			continue
		}
		i := sort.SearchFloat64s(edges, v)
		// SearchFloat64s returns the first index with edges[i] >= v; shift
		// to the bin whose lower edge is at or below v.
		if i == len(edges) || edges[i] > v {
			i--
		}
		if i >= nBins {
			i = nBins - 1
		}
		counts[i]++
	}
	return counts
}

// percentile returns the pct-th percentile of values with linear
// interpolation between ranks. pct is clamped to [0, 100].
func percentile(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := pct / 100 * float64(len(sorted)-1)
	lo := int(rank)
	frac := rank - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// finiteRange returns the min and max over all finite values of the
// image, without subsampling. ok is false when there are none.
func finiteRange(img *ImageData) (mn, mx float64, ok bool) {
	if img == nil {
		return 0, 0, false
	}
	return subsampledRange(img, Step(1))
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
