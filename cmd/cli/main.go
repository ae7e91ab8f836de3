package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config of the command line client. Every value can be overridden by a flag.
type Config struct {
	ServerAddr     string        `envconfig:"DOCUSENSE_ADDR" default:"http://localhost:8080"`
	Timeout        time.Duration `envconfig:"DOCUSENSE_TIMEOUT" default:"90s"`
	Colours        bool          `envconfig:"DOCUSENSE_COLOURS" default:"true"`
	BadgerFilepath string        `envconfig:"BADGER_FILEPATH"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "docusense: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	config, err := LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&config).ExecuteContext(ctx); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}

func newRootCmd(config *Config) *cobra.Command {
	var jsonOutput bool
	root := &cobra.Command{
		Use:           "docusense",
		Short:         "Summarize, score and search documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&config.ServerAddr, "addr", config.ServerAddr, "Docusense server address")
	root.PersistentFlags().DurationVar(&config.Timeout, "timeout", config.Timeout, "HTTP timeout of a single call")
	root.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	printer := func(cmd *cobra.Command) *Printer {
		return NewPrinter(cmd.OutOrStdout(), config.Colours, jsonOutput)
	}

	root.AddCommand(
		newAnalyzeCmd(config, printer),
		newShowCmd(config, printer),
		newExportCmd(config),
		newSearchCmd(config, printer),
		newInspectCmd(config, printer),
	)
	return root
}
