package main

import (
	"time"

	"handlestats/app"
	"handlestats/internal/config"
	"handlestats/internal/dataset"

	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	source        string
	schemaFile    string
	strictHeaders bool
	timeout       time.Duration
	delimiter     string
}

func (o *globalOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.source, "source", "", "Survey export file path or http(s) URL")
	flags.StringVar(&o.schemaFile, "schema", "", "YAML schema override")
	flags.BoolVar(&o.strictHeaders, "strict-headers", false, "Fail when expected columns are missing")
	flags.DurationVar(&o.timeout, "timeout", 30*time.Second, "Fetch timeout")
	flags.StringVar(&o.delimiter, "delimiter", "", "Field delimiter for delimited text (auto-detected when empty)")
}

// loadConfig reads the environment then applies explicitly set flags on top.
// A positional source argument wins over both.
func (o *globalOptions) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	flags := cmd.Flags()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flags.Changed("source") {
		cfg.Source.Location = o.source
	}
	if len(args) > 0 {
		cfg.Source.Location = args[0]
	}
	if flags.Changed("strict-headers") {
		cfg.Source.StrictHeaders = o.strictHeaders
	}
	if flags.Changed("timeout") {
		cfg.Source.FetchTimeout = o.timeout
	}
	if flags.Changed("schema") {
		cfg.Source.SchemaFile = o.schemaFile
		if cfg.Schema, err = config.LoadSchema(o.schemaFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newService builds the analysis pipeline for cfg
func (o *globalOptions) newService(cfg *config.Config) *app.AnalysisService {
	var delimiter rune
	if o.delimiter != "" {
		delimiter = []rune(o.delimiter)[0]
		if o.delimiter == `\t` {
			delimiter = '\t'
		}
	}
	return app.NewAnalysisService(cfg.Schema, dataset.Options{
		StrictHeaders: cfg.Source.StrictHeaders,
		Delimiter:     delimiter,
	})
}
