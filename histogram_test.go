package colorlegend

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func gridImage(rows, cols int, fill func(r, c int) float64) *ImageData {
	values := make([]float64, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			values[r*cols+c] = fill(r, c)
		}
	}
	return &ImageData{Values: values, Rows: rows, Cols: cols}
}

func TestAutoStrides(t *testing.T) {
	cases := []struct {
		rows, cols int
		wantR      int
		wantC      int
	}{
		{100, 100, 1, 1},
		{200, 200, 1, 1},
		{201, 200, 2, 1},
		{1000, 400, 5, 2},
		{1, 1, 1, 1},
	}
	for _, c := range cases {
		sr, sc := AutoStep().strides(c.rows, c.cols)
		if sr != c.wantR || sc != c.wantC {
			t.Errorf("strides(%d, %d) = (%d, %d), want (%d, %d)",
				c.rows, c.cols, sr, sc, c.wantR, c.wantC)
		}
	}
}

func TestExplicitStrides(t *testing.T) {
	if sr, sc := Step(4).strides(1000, 1000); sr != 4 || sc != 4 {
		t.Errorf("Step(4) strides = (%d, %d), want (4, 4)", sr, sc)
	}
	if sr, sc := StepPair(2, 7).strides(1000, 1000); sr != 2 || sc != 7 {
		t.Errorf("StepPair(2, 7) strides = (%d, %d), want (2, 7)", sr, sc)
	}
	if sr, sc := Step(0).strides(10, 10); sr != 1 || sc != 1 {
		t.Errorf("Step(0) strides = (%d, %d), want minimum (1, 1)", sr, sc)
	}
}

func TestHistogramEdgesBracketData(t *testing.T) {
	img := gridImage(30, 20, func(r, c int) float64 {
		return math.Sin(float64(r)*0.3) * float64(c+1)
	})
	hist, err := ComputeHistogram(img, HistogramOptions{})
	if err != nil {
		t.Fatalf("ComputeHistogram: %v", err)
	}
	if len(hist.Edges) != len(hist.Counts)+1 {
		t.Fatalf("len(Edges) = %d, len(Counts) = %d, want edges = counts+1",
			len(hist.Edges), len(hist.Counts))
	}
	for i := 1; i < len(hist.Edges); i++ {
		if hist.Edges[i] < hist.Edges[i-1] {
			t.Fatalf("edges not non-decreasing at %d: %v > %v", i, hist.Edges[i-1], hist.Edges[i])
		}
	}
	lo, hi := hist.Edges[0], hist.Edges[len(hist.Edges)-1]
	for _, v := range img.Values {
		if v < lo || v > hi {
			t.Fatalf("value %v outside edge range [%v, %v]", v, lo, hi)
		}
	}
}

func TestHistogramAllNonFinite(t *testing.T) {
	img := gridImage(10, 10, func(r, c int) float64 {
		if (r+c)%2 == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	})
	_, err := ComputeHistogram(img, HistogramOptions{})
	if !errors.Is(err, ErrNoFiniteData) {
		t.Errorf("got %v, want ErrNoFiniteData", err)
	}
}

func TestHistogramEmptyImage(t *testing.T) {
	_, err := ComputeHistogram(nil, HistogramOptions{})
	if !errors.Is(err, ErrNoFiniteData) {
		t.Errorf("nil image: got %v, want ErrNoFiniteData", err)
	}
	_, err = ComputeHistogram(&ImageData{}, HistogramOptions{})
	if !errors.Is(err, ErrNoFiniteData) {
		t.Errorf("empty image: got %v, want ErrNoFiniteData", err)
	}
}

func TestHistogramConstantImage(t *testing.T) {
	img := gridImage(10, 10, func(r, c int) float64 { return 42 })
	hist, err := ComputeHistogram(img, HistogramOptions{})
	if err != nil {
		t.Fatalf("ComputeHistogram: %v", err)
	}
	if diff := cmp.Diff([]float64{42, 42}, hist.Edges); diff != "" {
		t.Errorf("degenerate edges mismatch (-want +got):\n%s", diff)
	}
	var total float64
	for _, c := range hist.Counts {
		total += c
	}
	if total != 100 {
		t.Errorf("total count = %v, want 100", total)
	}
}

func TestHistogramRangeIgnoresNonFinite(t *testing.T) {
	img := gridImage(4, 4, func(r, c int) float64 { return 5 })
	img.Values[0] = math.NaN()
	img.Values[1] = math.Inf(1)
	img.Values[2] = math.Inf(-1)
	img.Values[3] = 1

	hist, err := ComputeHistogram(img, HistogramOptions{})
	if err != nil {
		t.Fatalf("ComputeHistogram: %v", err)
	}
	if hist.Edges[0] != 1 || hist.Edges[len(hist.Edges)-1] != 5 {
		t.Errorf("edge range = [%v, %v], want [1, 5]",
			hist.Edges[0], hist.Edges[len(hist.Edges)-1])
	}
	var total float64
	for _, c := range hist.Counts {
		total += c
	}
	if total != 13 {
		t.Errorf("total count = %v, want 13 finite values", total)
	}
}

func TestHistogramIntegerBins(t *testing.T) {
	// Integer values exactly in [100, 150]: bin width must be
	// ceil(50/500) = 1 and the edges must reach past 150 so the maximum
	// value lands in a bin.
	img := gridImage(51, 1, func(r, c int) float64 { return float64(100 + r) })
	img.Integer = true

	hist, err := ComputeHistogram(img, HistogramOptions{})
	if err != nil {
		t.Fatalf("ComputeHistogram: %v", err)
	}
	if hist.Edges[0] != 100 {
		t.Errorf("first edge = %v, want 100", hist.Edges[0])
	}
	if last := hist.Edges[len(hist.Edges)-1]; last < 151 {
		t.Errorf("last edge = %v, want at least 151", last)
	}
	if width := hist.Edges[1] - hist.Edges[0]; width != 1 {
		t.Errorf("bin width = %v, want 1", width)
	}
	// Every value occurs once and none is dropped, including the maximum.
	var total float64
	for _, c := range hist.Counts {
		total += c
		if c != 0 && c != 1 {
			t.Errorf("unexpected bin count %v, want 0 or 1", c)
		}
	}
	if total != 51 {
		t.Errorf("total count = %v, want 51", total)
	}
}

func TestHistogramCountsFullResolution(t *testing.T) {
	// The subsample step only affects the range estimate; the counts come
	// from the full-resolution array.
	img := gridImage(20, 20, func(r, c int) float64 { return float64(r) })
	hist, err := ComputeHistogram(img, HistogramOptions{Step: Step(3)})
	if err != nil {
		t.Fatalf("ComputeHistogram: %v", err)
	}
	var total float64
	for _, c := range hist.Counts {
		total += c
	}
	if total != 400 {
		t.Errorf("total count = %v, want all 400 pixels", total)
	}
}

func TestHistogramCenters(t *testing.T) {
	hist := Histogram{Edges: []float64{0, 2, 4}, Counts: []float64{3, 5}}
	if diff := cmp.Diff([]float64{1, 3}, hist.Centers()); diff != "" {
		t.Errorf("Centers mismatch (-want +got):\n%s", diff)
	}
}

func TestHeightBound(t *testing.T) {
	hist := Histogram{Counts: []float64{1, 2, 3, 4, 1000}}
	if got := hist.HeightBound(100); got != 1000 {
		t.Errorf("HeightBound(100) = %v, want true maximum 1000", got)
	}
	if got := hist.HeightBound(50); got != 3 {
		t.Errorf("HeightBound(50) = %v, want median 3", got)
	}
	// Clipping the top bin keeps the bound near the bulk of the data.
	if got := hist.HeightBound(75); got >= 1000 {
		t.Errorf("HeightBound(75) = %v, want below the dominant bin", got)
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{4, 1, 3, 2}
	if got := percentile(values, 0); got != 1 {
		t.Errorf("percentile 0 = %v, want 1", got)
	}
	if got := percentile(values, 100); got != 4 {
		t.Errorf("percentile 100 = %v, want 4", got)
	}
	if got := percentile(values, 50); got != 2.5 {
		t.Errorf("percentile 50 = %v, want 2.5", got)
	}
}

func TestFiniteRange(t *testing.T) {
	img := gridImage(2, 2, func(r, c int) float64 { return float64(r*2 + c) })
	mn, mx, ok := finiteRange(img)
	if !ok || mn != 0 || mx != 3 {
		t.Errorf("finiteRange = (%v, %v, %v), want (0, 3, true)", mn, mx, ok)
	}
	if _, _, ok := finiteRange(nil); ok {
		t.Error("finiteRange(nil) reported data")
	}
}
