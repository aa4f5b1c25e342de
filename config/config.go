// Package config loads olsbench options and benchmark filters from YAML or
// JSON files.
//
// Example (olsbench.yaml):
//
//	budget: 2s
//	warmup: 100ms
//	growth: 1.1
//	maxSamples: 500
//	clock: cpu
//	include:
//	  - "^hash/"
//	exclude:
//	  - "slow"
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexshd/olsbench"
)

// ErrInvalidConfig is returned for files that parse but hold unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// Clock names accepted by File.Clock.
const (
	ClockWall = "wall"
	ClockCPU  = "cpu"
)

// Duration is a time.Duration that can be unmarshaled from JSON/YAML strings.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler. Numbers are read as seconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("duration must be a string or number: %s", b)
		}
		s = n.String()
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	dur, err := ParseDurationString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// File is the contents of a config file. Zero fields leave the
// corresponding option untouched.
type File struct {
	Budget        Duration `json:"budget,omitempty" yaml:"budget,omitempty"`
	Warmup        Duration `json:"warmup,omitempty" yaml:"warmup,omitempty"`
	Growth        float64  `json:"growth,omitempty" yaml:"growth,omitempty"`
	Start         uint64   `json:"start,omitempty" yaml:"start,omitempty"`
	MaxIterations uint64   `json:"maxIterations,omitempty" yaml:"maxIterations,omitempty"`
	MaxSamples    int      `json:"maxSamples,omitempty" yaml:"maxSamples,omitempty"`
	Clock         string   `json:"clock,omitempty" yaml:"clock,omitempty"`

	// Label filters, as regular expressions. A label is selected when it
	// matches any include (or include is empty) and no exclude.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// Load reads a config file, choosing YAML or JSON by extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	f, err := Parse(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data as JSON when filename ends in .json and as YAML
// otherwise, then compiles the label filters.
func Parse(data []byte, filename string) (*File, error) {
	var f File

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("error parsing JSON config: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error parsing YAML config: %w", err)
		}
	}

	if err := f.Compile(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Compile validates the clock name and compiles the label filters. Parse
// calls it; call it again after changing Include or Exclude by hand.
func (f *File) Compile() error {
	switch f.Clock {
	case "", ClockWall, ClockCPU:
	default:
		return fmt.Errorf("%w: unknown clock %q (want %q or %q)", ErrInvalidConfig, f.Clock, ClockWall, ClockCPU)
	}

	var err error
	if f.include, err = compileAll(f.Include); err != nil {
		return fmt.Errorf("%w: include: %w", ErrInvalidConfig, err)
	}
	if f.exclude, err = compileAll(f.Exclude); err != nil {
		return fmt.Errorf("%w: exclude: %w", ErrInvalidConfig, err)
	}
	return nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// Selects reports whether the benchmark called label passes the filters.
func (f *File) Selects(label string) bool {
	for _, re := range f.exclude {
		if re.MatchString(label) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, re := range f.include {
		if re.MatchString(label) {
			return true
		}
	}
	return false
}

// Apply overlays the non-zero fields of f onto base and validates the
// result.
func (f *File) Apply(base olsbench.Options) (olsbench.Options, error) {
	opts := base

	if f.Budget != 0 {
		opts = opts.WithTimeBudget(time.Duration(f.Budget))
	}
	if f.Warmup != 0 {
		opts = opts.WithWarmup(time.Duration(f.Warmup))
	}
	if f.Growth != 0 {
		opts = opts.WithGrowthFactor(f.Growth)
	}
	if f.Start != 0 {
		opts = opts.WithStartIterations(f.Start)
	}
	if f.MaxIterations != 0 {
		opts = opts.WithMaxIterations(f.MaxIterations)
	}
	if f.MaxSamples != 0 {
		opts = opts.WithMaxSamples(f.MaxSamples)
	}

	switch f.Clock {
	case ClockWall:
		opts = opts.WithClock(olsbench.WallClock{})
	case ClockCPU:
		clock, err := olsbench.NewCPUClock()
		if err != nil {
			return base, err
		}
		opts = opts.WithClock(clock)
	}

	if err := opts.Validate(); err != nil {
		return base, err
	}
	return opts, nil
}

// ParseDurationString parses duration strings like "30s", "500ms" or
// "1h30m". A bare number means seconds, and the empty string is zero.
func ParseDurationString(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(secs) || math.IsInf(secs, 0) {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}
