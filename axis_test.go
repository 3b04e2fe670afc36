package colorlegend

import (
	"math"
	"testing"
)

func TestNiceStep(t *testing.T) {
	cases := []struct {
		raw  float64
		want float64
	}{
		{0.9, 1},
		{1.2, 2},
		{3.7, 5},
		{7.5, 10},
		{0.013, 0.02},
		{150, 200},
	}
	for _, c := range cases {
		if got := niceStep(c.raw); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("niceStep(%v) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestAxisTicksCoverRange(t *testing.T) {
	ticks := axisTicks(-3.2, 17.9, 6)
	if len(ticks) < 3 {
		t.Fatalf("got %d ticks, want a handful", len(ticks))
	}
	for i, tk := range ticks {
		if tk.Value < -3.2 || tk.Value > 17.9 {
			t.Errorf("tick %v outside range", tk.Value)
		}
		if i > 0 && tk.Value <= ticks[i-1].Value {
			t.Errorf("ticks not strictly increasing at %d", i)
		}
	}
}

func TestAxisTicksDegenerateRange(t *testing.T) {
	ticks := axisTicks(5, 5, 6)
	if len(ticks) != 1 || ticks[0].Value != 5 {
		t.Errorf("degenerate range ticks = %v, want single tick at 5", ticks)
	}
}

func TestTickLabels(t *testing.T) {
	cases := []struct {
		v, step float64
		want    string
	}{
		{5, 1, "5"},
		{0.25, 0.05, "0.25"},
		{-0.0, 1, "0"},
		{1200, 200, "1200"},
	}
	for _, c := range cases {
		if got := tickLabel(c.v, c.step); got != c.want {
			t.Errorf("tickLabel(%v, %v) = %q, want %q", c.v, c.step, got, c.want)
		}
	}
}
