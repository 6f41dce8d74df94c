package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/dnsdeck/internal/app"
	"github.com/five82/dnsdeck/internal/export"
)

func newStatsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print record aggregates from a single sync",
		Long: `Fetch the record list once and print the same aggregates the dashboard
header shows: value counts, distinct domains and how many records resolve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := app.Once(cmd.Context(), flags.options(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if !snap.HasData {
				return export.ErrNoData
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Records:       %d\n", snap.RecordCount)
			fmt.Fprintf(out, "Domains:       %d\n", snap.Domains)
			fmt.Fprintf(out, "Resolved:      %d\n", snap.Resolved)
			fmt.Fprintf(out, "Values:        %d\n", snap.TotalValues)
			fmt.Fprintf(out, "Unique values: %d\n", snap.UniqueValues)
			return nil
		},
	}
}
