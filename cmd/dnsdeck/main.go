// Package main is the entry point for the dnsdeck CLI.
//
// Usage:
//
//	dnsdeck                           # Start the dashboard
//	dnsdeck stats                     # Print aggregates from one sync
//	dnsdeck export -f json -o out.json
//	dnsdeck version
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/dnsdeck/internal/app"
)

// Set at build time via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dnsdeck: %v\n", err)
		return 1
	}
	return 0
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	prefsPath  string
	apiURL     string
	poll       time.Duration
	logLevel   string
	logFormat  string
}

func (g *globalFlags) options(stderr io.Writer) app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		APIURL:     g.apiURL,
		PollEvery:  g.poll,
		LogLevel:   g.logLevel,
		LogFormat:  g.logFormat,
		Stderr:     stderr,
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "dnsdeck",
		Short: "Terminal dashboard for a DNS records API",
		Long: `dnsdeck polls a DNS records API and shows every tracked domain with its
resolved values, sorted by how many values each domain has.

Records can be added, renamed and removed from the dashboard. Alerts for
failed calls and finished mutations disappear on their own after a few
seconds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options(stderr))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file path (default ~/.config/dnsdeck/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file path (default ~/.config/dnsdeck/prefs.toml)")
	pf.StringVar(&flags.apiURL, "api", "", "API address, overrides api_url")
	pf.DurationVar(&flags.poll, "poll", 0, "refresh interval, overrides poll_interval")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: console or json")

	root.AddCommand(
		newStatsCmd(flags),
		newExportCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dnsdeck %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
		},
	}
}
