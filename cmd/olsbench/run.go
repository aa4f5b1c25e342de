package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexshd/olsbench"
	"github.com/alexshd/olsbench/config"
	"github.com/alexshd/olsbench/report"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the built-in benchmarks",
		Long: `Run every built-in benchmark that passes the filters and print one line per
result.

  olsbench run --budget 500ms
  olsbench run --filter '^hash/' --format json
  olsbench run --config olsbench.yaml --clock cpu`,
		Args: cobra.NoArgs,
		RunE: runBenchmarks,
	}

	addSelectionFlags(cmd)
	cmd.Flags().String("budget", "", "Time budget per benchmark, e.g. 2s or 500ms (default 5s)")
	cmd.Flags().String("warmup", "", "Warm-up time per benchmark before measuring")
	cmd.Flags().Float64("growth", 0, "Batch growth factor (default 1.1)")
	cmd.Flags().Int("max-samples", 0, "Maximum batches per benchmark (default 2000)")
	cmd.Flags().String("clock", "", "Clock: wall or cpu")
	cmd.Flags().String("format", "text", "Output format: text, json or yaml")
	cmd.Flags().Bool("json", false, "Shorthand for --format json")
	cmd.Flags().BoolP("verbose", "v", false, "Print the batch spread under each result")

	return cmd
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Config file (YAML or JSON)")
	cmd.Flags().StringP("filter", "f", "", "Only benchmarks whose label matches this regular expression")
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	file, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := file.Apply(olsbench.DefaultOptions().WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	if opts, err = applyFlags(cmd, opts); err != nil {
		return err
	}

	suite, err := selectBenchmarks(cmd, file, opts)
	if err != nil {
		return err
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	slog.Info("running benchmarks",
		"count", len(suite.Benchmarks()),
		"budget", opts.TimeBudget(),
		"retain", olsbench.RetainTier())

	outcomes, runErr := suite.Run(ctx)

	noColor, _ := cmd.Flags().GetBool("no-color")
	verbose, _ := cmd.Flags().GetBool("verbose")
	out := cmd.OutOrStdout()

	printer := report.NewPrinter(out, format, !noColor && report.ColorEnabled(out)).Verbose(verbose)
	if err := printer.Print(outcomes); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}

	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d benchmarks failed", failed, len(outcomes))
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Parse(nil, "default.yaml")
	}

	file, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return file, nil
}

// applyFlags overlays explicitly set flags onto opts.
func applyFlags(cmd *cobra.Command, opts olsbench.Options) (olsbench.Options, error) {
	flags := cmd.Flags()

	durationFlag := func(name string, apply func(time.Duration)) error {
		if !flags.Changed(name) {
			return nil
		}
		s, _ := flags.GetString(name)
		d, err := config.ParseDurationString(s)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", name, err)
		}
		apply(d)
		return nil
	}

	if err := durationFlag("budget", func(d time.Duration) { opts = opts.WithTimeBudget(d) }); err != nil {
		return opts, err
	}
	if err := durationFlag("warmup", func(d time.Duration) { opts = opts.WithWarmup(d) }); err != nil {
		return opts, err
	}
	if flags.Changed("growth") {
		g, _ := flags.GetFloat64("growth")
		opts = opts.WithGrowthFactor(g)
	}
	if flags.Changed("max-samples") {
		n, _ := flags.GetInt("max-samples")
		opts = opts.WithMaxSamples(n)
	}
	if flags.Changed("clock") {
		name, _ := flags.GetString("clock")
		clockFile := &config.File{Clock: name}
		if err := clockFile.Compile(); err != nil {
			return opts, err
		}
		var err error
		if opts, err = clockFile.Apply(opts); err != nil {
			return opts, err
		}
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// selectBenchmarks builds a suite of the catalogue entries passing both the
// config file filters and --filter.
func selectBenchmarks(cmd *cobra.Command, file *config.File, opts olsbench.Options) (*olsbench.Suite, error) {
	pattern, _ := cmd.Flags().GetString("filter")

	var re *regexp.Regexp
	if pattern != "" {
		var err error
		if re, err = regexp.Compile(pattern); err != nil {
			return nil, fmt.Errorf("invalid --filter: %w", err)
		}
	}

	suite := olsbench.NewSuite(opts, catalog()...).Filter(func(label string) bool {
		return file.Selects(label) && (re == nil || re.MatchString(label))
	})

	if len(suite.Benchmarks()) == 0 {
		return nil, fmt.Errorf("no benchmarks selected")
	}
	return suite, nil
}

func outputFormat(cmd *cobra.Command) (report.Format, error) {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return report.FormatJSON, nil
	}
	name, _ := cmd.Flags().GetString("format")
	return report.ParseFormat(name)
}
