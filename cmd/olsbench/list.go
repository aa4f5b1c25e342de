package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexshd/olsbench"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in benchmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			suite, err := selectBenchmarks(cmd, file, olsbench.DefaultOptions())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, b := range suite.Benchmarks() {
				fmt.Fprintf(w, "%s\t%016x\n", b.Label, olsbench.LabelID(b.Label))
			}
			return w.Flush()
		},
	}

	addSelectionFlags(cmd)
	return cmd
}
