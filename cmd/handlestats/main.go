package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	apperrors "handlestats/internal/errors"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] %v\n", apperrors.GetCode(err), err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:   "handlestats",
		Short: "Statistics for three-handle comparison surveys",
		Long: `Analyze a handle comparison survey export (CSV, TSV or XLSX) and report
descriptive statistics, pairwise comparisons, aggregate scores, demographic
breakdowns and insights.

Settings are read from the environment (or a .env file) and overridden by flags:
- HANDLESTATS_SOURCE          export file path or http(s) URL
- HANDLESTATS_SCHEMA          optional YAML schema override
- HANDLESTATS_ADDR            report server address (default :8080)
- HANDLESTATS_STRICT_HEADERS  fail when schema columns are missing
- HANDLESTATS_FETCH_TIMEOUT   fetch timeout (default 30s)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts.register(rootCmd)

	rootCmd.AddCommand(
		newAnalyzeCmd(&opts),
		newReportCmd(&opts),
		newServeCmd(&opts),
		newGenerateCmd(&opts),
	)
	return rootCmd
}
