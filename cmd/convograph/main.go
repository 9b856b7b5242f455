package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "convograph",
		Short: "Explore conversation graphs in the terminal",
		Long: `convograph fetches a conversation graph (participants, topics, messages
and their relations) and lays it out with a force-directed simulation.
Use "view" for the interactive terminal explorer or "layout" to export
positions as JSON, snappy-compressed JSON or SVG.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&flags.sourceKind, "source", "", "source kind: http, s3, postgres or file")
	pf.StringVar(&flags.url, "url", "", "graph document URL (http source)")
	pf.StringVar(&flags.file, "file", "", "graph document path (file source)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	pf.StringVar(&flags.publishAddr, "publish", "", "publish frames on this mangos address (e.g. tcp://127.0.0.1:40899)")

	rootCmd.AddCommand(newViewCommand(flags))
	rootCmd.AddCommand(newLayoutCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "convograph "+versionString())
		},
	}
}
