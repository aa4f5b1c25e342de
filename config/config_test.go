package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/olsbench"
)

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "standard seconds", input: "30s", expected: 30 * time.Second},
		{name: "milliseconds", input: "500ms", expected: 500 * time.Millisecond},
		{name: "microseconds", input: "250us", expected: 250 * time.Microsecond},
		{name: "combined duration", input: "1h30m", expected: 90 * time.Minute},
		{name: "integer as seconds", input: "30", expected: 30 * time.Second},
		{name: "fraction as seconds", input: "0.25", expected: 250 * time.Millisecond},
		{name: "surrounding space", input: "  2s ", expected: 2 * time.Second},
		{name: "empty string", input: "", expected: 0},
		{name: "invalid format", input: "abc", wantErr: true},
		{name: "not a number", input: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDurationString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDurationString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseDurationString() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParse_YAML(t *testing.T) {
	yamlConfig := `
budget: 2s
warmup: 100ms
growth: 1.2
start: 4
maxIterations: 1000000
maxSamples: 300
clock: wall
include:
  - "^hash/"
exclude:
  - "large$"
`
	f, err := Parse([]byte(yamlConfig), "olsbench.yaml")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, time.Duration(f.Budget))
	assert.Equal(t, 100*time.Millisecond, time.Duration(f.Warmup))
	assert.Equal(t, 1.2, f.Growth)
	assert.Equal(t, uint64(4), f.Start)
	assert.Equal(t, uint64(1_000_000), f.MaxIterations)
	assert.Equal(t, 300, f.MaxSamples)
	assert.Equal(t, ClockWall, f.Clock)

	assert.True(t, f.Selects("hash/small"))
	assert.False(t, f.Selects("hash/large"))
	assert.False(t, f.Selects("encode/json"))
}

func TestParse_JSON(t *testing.T) {
	jsonConfig := `{"budget": 3, "warmup": "50ms", "maxSamples": 100, "exclude": ["sleep"]}`

	f, err := Parse([]byte(jsonConfig), "olsbench.JSON")
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, time.Duration(f.Budget))
	assert.Equal(t, 50*time.Millisecond, time.Duration(f.Warmup))
	assert.Equal(t, 100, f.MaxSamples)
	assert.True(t, f.Selects("hash/small"))
	assert.False(t, f.Selects("sleep/1ms"))
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil, "empty.yaml")
	require.NoError(t, err)

	assert.True(t, f.Selects("anything"))

	opts, err := f.Apply(olsbench.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, olsbench.DefaultTimeBudget, opts.TimeBudget())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		filename string
	}{
		{"unknown YAML field", "budgett: 2s\n", "c.yaml"},
		{"unknown JSON field", `{"budgett": "2s"}`, "c.json"},
		{"bad duration", "budget: soon\n", "c.yaml"},
		{"bad clock", "clock: sundial\n", "c.yaml"},
		{"bad include pattern", "include: ['(']\n", "c.yml"},
		{"bad exclude pattern", `{"exclude": ["[a-"]}`, "c.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.filename)
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("clock: sundial\n"), "c.yaml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFile_Apply(t *testing.T) {
	f := &File{
		Budget:     Duration(time.Second),
		Growth:     1.5,
		MaxSamples: 40,
	}

	base := olsbench.DefaultOptions().WithWarmup(10 * time.Millisecond)
	opts, err := f.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, time.Second, opts.TimeBudget())
	assert.Equal(t, 1.5, opts.GrowthFactor())
	assert.Equal(t, 40, opts.MaxSamples())
	assert.Equal(t, 10*time.Millisecond, opts.Warmup(), "unset fields keep the base value")
	assert.Equal(t, olsbench.DefaultTimeBudget, base.TimeBudget(), "base is not modified")
}

func TestFile_ApplyInvalid(t *testing.T) {
	f := &File{Growth: 0.9}

	base := olsbench.DefaultOptions()
	opts, err := f.Apply(base)
	require.ErrorIs(t, err, olsbench.ErrInvalidOptions)
	assert.Equal(t, base.GrowthFactor(), opts.GrowthFactor())
}

func TestFile_ApplyCPUClock(t *testing.T) {
	f := &File{Clock: ClockCPU}
	opts, err := f.Apply(olsbench.DefaultOptions())

	if runtime.GOOS != "linux" {
		require.ErrorIs(t, err, olsbench.ErrClockUnsupported)
		return
	}
	require.NoError(t, err)
	assert.NotEqual(t, olsbench.WallClock{}, opts.Clock())
}

func TestFile_CompileAfterEdit(t *testing.T) {
	f := &File{}
	require.NoError(t, f.Compile())
	assert.True(t, f.Selects("x/y"))

	f.Include = []string{"^z/"}
	require.NoError(t, f.Compile())
	assert.False(t, f.Selects("x/y"))
	assert.True(t, f.Selects("z/y"))
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "olsbench.yaml")

	if err := os.WriteFile(tmpFile, []byte("budget: 750ms\n"), 0o644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	f, err := Load(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, time.Duration(f.Budget))
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/olsbench.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDuration_RoundTrip(t *testing.T) {
	d := Duration(1500 * time.Millisecond)

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1.5s"`, string(b))

	var back Duration
	require.NoError(t, back.UnmarshalJSON(b))
	assert.Equal(t, d, back)

	y, err := d.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "1.5s", y)
	assert.Equal(t, "1.5s", d.String())
}
