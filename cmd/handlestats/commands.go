package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"handlestats/adapters/fetch"
	dstats "handlestats/domain/stats"
	"handlestats/internal/config"
	apperrors "handlestats/internal/errors"
	"handlestats/internal/report"
	"handlestats/internal/session"
	"handlestats/internal/testkit"
	"handlestats/ui"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newAnalyzeCmd(opts *globalOptions) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "analyze [source]",
		Short: "Analyze a survey export and print the result as JSON",
		Long: `Fetch and analyze one survey export, writing the full result snapshot as JSON.

Example: handlestats analyze survey.csv --strict-headers`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runAnalysis(cmd, opts, args)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(result)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Emit single-line JSON")
	return cmd
}

func newReportCmd(opts *globalOptions) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "report [source]",
		Short: "Render a survey export as a Markdown or HTML report",
		Long: `Fetch and analyze one survey export, rendering the findings as a report.

Example: handlestats report https://example.com/export.csv --format html --output report.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var render func(*dstats.Result) []byte
			switch format {
			case "markdown", "md":
				render = report.Markdown
			case "html":
				render = report.HTML
			default:
				return apperrors.InvalidInput(fmt.Sprintf("unknown report format %q (use markdown or html)", format))
			}

			result, err := runAnalysis(cmd, opts, args)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, render(result))
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "Report format: markdown|html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func newServeCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [source]",
		Short: "Serve the report over HTTP",
		Long: `Start the report server, then fetch and analyze the export once in the background.

Until the analysis completes the result routes answer 503; a failed load is
terminal and answers 500 with the failure message.

Example: handlestats serve survey.xlsx --addr :9090`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if err := cfg.RequireSource(); err != nil {
				return err
			}
			return runServe(cmd.Context(), opts, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var participants int
	var seed int64
	var output string
	var tsv bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic survey export",
		Long: `Generate a reproducible synthetic survey export in the default schema, or the
one given by --schema.

Example: handlestats generate --participants 40 --seed 7 -o sample.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if participants < 0 {
				return apperrors.InvalidInput("participants must not be negative")
			}
			genConfig := testkit.DefaultSurveyConfig()
			genConfig.Participants = participants
			genConfig.Seed = seed

			schema, err := config.LoadSchema(opts.schemaFile)
			if err != nil {
				return err
			}
			comma := ','
			if tsv {
				comma = '\t'
			}
			data := testkit.NewSurveyGenerator(genConfig).Generate(schema).Bytes(comma)
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}

	cmd.Flags().IntVar(&participants, "participants", 24, "Number of participants")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&tsv, "tsv", false, "Tab-separated output")
	return cmd
}

// runAnalysis performs one fetch and analysis for the one-shot commands
func runAnalysis(cmd *cobra.Command, opts *globalOptions, args []string) (*dstats.Result, error) {
	cfg, err := opts.loadConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireSource(); err != nil {
		return nil, err
	}

	sess := session.New(fetch.New(cfg.Source.Location, cfg.Source.FetchTimeout), opts.newService(cfg))
	if err := sess.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return sess.Snapshot().Result, nil
}

func runServe(ctx context.Context, opts *globalOptions, cfg *config.Config) error {
	sess := session.New(fetch.New(cfg.Source.Location, cfg.Source.FetchTimeout), opts.newService(cfg))
	uiApp, err := ui.NewApp(sess)
	if err != nil {
		return apperrors.Wrap(err, "failed to initialize report server")
	}
	srv := uiApp.Server(cfg.Server.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[Serve] Listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.Wrapf(err, "server on %s failed", cfg.Server.Addr)
		}
		return nil
	})
	g.Go(func() error {
		// A failed load is kept in the session and served as 500; it does not stop the server.
		_ = sess.Load(gCtx)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Printf("[Serve] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.Wrapf(err, "failed to write %s", path)
	}
	log.Printf("[Output] Wrote %d bytes to %s", len(data), path)
	return nil
}
