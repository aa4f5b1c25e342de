// Package report renders olsbench results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexshd/olsbench"
)

// Format represents the available output formats
type Format string

const (
	// FormatText is the default human-readable text format
	FormatText Format = "text"
	// FormatJSON outputs in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs in YAML format
	FormatYAML Format = "yaml"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Entry is the structured form of one benchmark outcome.
type Entry struct {
	Label      string  `json:"label" yaml:"label"`
	ID         string  `json:"id" yaml:"id"`
	NsPerIter  float64 `json:"nsPerIter" yaml:"nsPerIter"`
	Intercept  float64 `json:"interceptNs" yaml:"interceptNs"`
	RSquared   float64 `json:"rSquared" yaml:"rSquared"`
	Iterations uint64  `json:"iterations" yaml:"iterations"`
	Batches    int     `json:"batches" yaml:"batches"`
	ElapsedNs  int64   `json:"elapsedNs" yaml:"elapsedNs"`
	P50        float64 `json:"p50NsPerIter,omitempty" yaml:"p50NsPerIter,omitempty"`
	P99        float64 `json:"p99NsPerIter,omitempty" yaml:"p99NsPerIter,omitempty"`
	TailRatio  float64 `json:"tailRatio,omitempty" yaml:"tailRatio,omitempty"`
	Ceiling    bool    `json:"ceiling,omitempty" yaml:"ceiling,omitempty"`
	Error      string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewEntry converts an outcome to an Entry. A failed outcome carries its
// error text and no estimate.
func NewEntry(o olsbench.Outcome) Entry {
	r := o.Result
	e := Entry{
		Label:      r.Label,
		ID:         fmt.Sprintf("%016x", r.ID),
		Iterations: r.Iterations,
		Batches:    r.Batches,
		ElapsedNs:  r.Elapsed.Nanoseconds(),
		Ceiling:    r.Ceiling,
	}

	if o.Err != nil {
		e.Error = o.Err.Error()
		return e
	}

	e.NsPerIter = r.Analysis.NsPerIter
	e.Intercept = r.Analysis.Intercept
	e.RSquared = r.Analysis.RSquared
	e.P50 = r.Spread.P50
	e.P99 = r.Spread.P99
	e.TailRatio = r.Spread.TailDivergenceRatio
	return e
}

// Summary is the document written by the JSON and YAML formats.
type Summary struct {
	Benchmarks []Entry `json:"benchmarks" yaml:"benchmarks"`
	Passed     int     `json:"passed" yaml:"passed"`
	Failed     int     `json:"failed" yaml:"failed"`
}

// NewSummary converts outcomes to a Summary.
func NewSummary(outcomes []olsbench.Outcome) Summary {
	s := Summary{Benchmarks: make([]Entry, 0, len(outcomes))}
	for _, o := range outcomes {
		s.Benchmarks = append(s.Benchmarks, NewEntry(o))
		if o.Failed() {
			s.Failed++
		} else {
			s.Passed++
		}
	}
	return s
}

// Printer writes outcomes in one format.
type Printer struct {
	w       io.Writer
	format  Format
	scheme  *ColorScheme
	noColor bool
	verbose bool
}

// NewPrinter returns a Printer writing format to w. Colors apply to the text
// format only.
func NewPrinter(w io.Writer, format Format, useColor bool) *Printer {
	scheme := NoColorScheme()
	if useColor {
		scheme = ForcedColorScheme()
	}
	return &Printer{w: w, format: format, scheme: scheme, noColor: !useColor}
}

// Verbose makes the text format print the batch spread under each result.
func (p *Printer) Verbose(v bool) *Printer {
	p.verbose = v
	return p
}

// Print writes every outcome.
func (p *Printer) Print(outcomes []olsbench.Outcome) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewSummary(outcomes)); err != nil {
			return fmt.Errorf("error writing JSON report: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(NewSummary(outcomes)); err != nil {
			return fmt.Errorf("error writing YAML report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("error writing YAML report: %w", err)
		}
		return nil

	case FormatText, "":
		return p.printText(outcomes)

	default:
		return fmt.Errorf("unknown output format %q", p.format)
	}
}

func (p *Printer) printText(outcomes []olsbench.Outcome) error {
	width := 0
	for _, o := range outcomes {
		width = max(width, len(o.Result.Label))
	}

	var b strings.Builder
	for _, o := range outcomes {
		label := p.scheme.Label.Sprint(fmt.Sprintf("%-*s", width, o.Result.Label))

		if o.Failed() {
			fmt.Fprintf(&b, "%s  %s %s\n", label, ErrorIcon(p.noColor), p.scheme.Failure.Sprint(o.Err.Error()))
			continue
		}

		r := o.Result
		fmt.Fprintf(&b, "%s  %s %s  %s\n",
			label,
			p.scheme.Estimate.Sprintf("%20s", FormatNsPerIter(r.NsPerIter())),
			p.scheme.Fit(r.RSquared()).Sprintf("(R² = %.4f)", r.RSquared()),
			p.scheme.Dim.Sprintf("[%d batches, %s iterations, %s]",
				r.Batches, FormatNumber(float64(r.Iterations), 0, ','), FormatSeconds(r.Elapsed)))

		if r.Ceiling {
			fmt.Fprintf(&b, "%*s  %s stopped at ceiling before the time budget was spent\n",
				width, "", WarningIcon(p.noColor))
		}
		if p.verbose {
			s := r.Spread
			fmt.Fprintf(&b, "%*s  %s\n", width, "", p.scheme.Dim.Sprintf(
				"spread: min %s  p50 %s  p99 %s  max %s  (P99/P50 %.2f)",
				FormatNumber(s.Min, 3, ','), FormatNumber(s.P50, 3, ','),
				FormatNumber(s.P99, 3, ','), FormatNumber(s.Max, 3, ','),
				s.TailDivergenceRatio))
		}
	}

	if _, err := io.WriteString(p.w, b.String()); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
