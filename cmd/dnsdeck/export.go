package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/dnsdeck/internal/app"
	"github.com/five82/dnsdeck/internal/export"
)

func newExportCmd(flags *globalFlags) *cobra.Command {
	var (
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the domain list",
		Long: `Fetch the record list once and write the domain names in display order.

Formats:
  txt   comma separated on one line (default)
  json  JSON array
  yaml  YAML sequence

Example:
  dnsdeck export -f json -o domains.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			snap, err := app.Once(cmd.Context(), flags.options(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			domains, err := export.Domains(snap)
			if err != nil {
				return err
			}
			return writeExport(cmd.OutOrStdout(), output, domains, f)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "txt", "output format: txt, json or yaml")
	return cmd
}

func writeExport(stdout io.Writer, path string, domains []string, f export.Format) error {
	if path == "" || path == "-" {
		return export.Write(stdout, domains, f)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.Write(file, domains, f); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
