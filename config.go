package colorlegend

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Options configures a ColorLegendItem. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	// ShowHistogram draws a histogram of the image values next to the bar.
	ShowHistogram bool `yaml:"show_histogram"`

	// HistFillColor fills the histogram shape.
	HistFillColor [3]uint8 `yaml:"hist_fill_color,flow"`

	// SubsampleStep is the stride used to subsample the image when
	// estimating the histogram range: "auto", a scalar, or a [row, col]
	// pair.
	SubsampleStep SubsampleStep `yaml:"subsample_step"`

	// HistHeightPercentile scales the histogram display by this percentile
	// of the bin counts instead of the true maximum. An image often has one
	// dominant color whose bin would flatten all others; 99.0 discards the
	// top 1% of bins for scaling. 100.0 disables clipping.
	HistHeightPercentile float64 `yaml:"hist_height_percentile"`

	// NumBins is the histogram bin count.
	NumBins int `yaml:"num_bins"`

	// MaxTickLength is the maximum axis tick length in pixels.
	MaxTickLength int `yaml:"max_tick_length"`

	// LegacyLUTScale enables the extended-LUT workaround for the old
	// colorize backend that maps the value span onto len(lut)-1 swatches.
	LegacyLUTScale bool `yaml:"legacy_lut_scale"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		ShowHistogram:        true,
		HistFillColor:        [3]uint8{100, 100, 200},
		SubsampleStep:        AutoStep(),
		HistHeightPercentile: 100.0,
		NumBins:              DefaultNumBins,
		MaxTickLength:        10,
	}
}

// LoadOptions reads options from a YAML file. Missing keys keep their
// defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	b, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(b, &opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// SaveOptions writes options to a YAML file.
func SaveOptions(path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&opts); err != nil {
		return err
	}
	return enc.Close()
}

// MarshalYAML encodes the step as "auto", a scalar, or a [row, col] pair.
func (s SubsampleStep) MarshalYAML() (any, error) {
	if !s.explicit {
		return "auto", nil
	}
	if s.Row == s.Col {
		return s.Row, nil
	}
	return []int{s.Row, s.Col}, nil
}

// UnmarshalYAML accepts "auto", a scalar, or a [row, col] pair.
func (s *SubsampleStep) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "auto" || node.Value == "" {
			*s = AutoStep()
			return nil
		}
		n, err := strconv.Atoi(node.Value)
		if err != nil {
			return fmt.Errorf("subsample step: %q is neither \"auto\" nor an integer", node.Value)
		}
		*s = Step(n)
		return nil
	case yaml.SequenceNode:
		var pair []int
		if err := node.Decode(&pair); err != nil {
			return fmt.Errorf("subsample step: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("subsample step: want 2 elements, got %d", len(pair))
		}
		*s = StepPair(pair[0], pair[1])
		return nil
	default:
		return fmt.Errorf("subsample step: unexpected YAML node kind %v", node.Kind)
	}
}
