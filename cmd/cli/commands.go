package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"docusense/domain"
	"docusense/infrastructure/http/client"
	"docusense/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
)

type printerFunc func(cmd *cobra.Command) *Printer

func newAnalyzeCmd(config *Config, printer printerFunc) *cobra.Command {
	var input client.AnalyzeInput
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize a text or a file (txt, pdf)",
		Example: `  docusense analyze --file report.pdf --type deep
  docusense analyze --text "$(cat notes.txt)"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (input.Text == "") == (input.FilePath == "") {
				return errors.New("exactly one of --text or --file is required")
			}
			c := client.NewAnalysisClient(config.ServerAddr, config.Timeout)
			response, err := c.Analyze(cmd.Context(), input)
			if err != nil {
				return err
			}
			if err := printer(cmd).AnalyzeResponse(response); err != nil {
				return err
			}
			if response.Status == domain.StatusError {
				return errors.New(response.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Text, "text", "", "Document text")
	cmd.Flags().StringVar(&input.FilePath, "file", "", "Path of the document to upload")
	cmd.Flags().StringVar(&input.SummaryType, "type", string(domain.ModeQuick), "Summary type: quick or deep")
	return cmd
}

func newShowCmd(config *Config, printer printerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.NewAnalysisClient(config.ServerAddr, config.Timeout)
			view, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printer(cmd).Analysis(view)
		},
	}
}

func newExportCmd(config *Config) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Download a stored analysis as markdown or plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.NewAnalysisClient(config.ServerAddr, config.Timeout)
			filename, content, err := c.Export(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(append(content, '\n'))
				return err
			}
			if output == "" {
				output = filename
			}
			if err := os.WriteFile(filepath.Clean(output), content, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "md", "Export format: md or txt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file, - for stdout (default: server filename)")
	return cmd
}

func newSearchCmd(config *Config, printer printerFunc) *cobra.Command {
	var cursor string
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search stored summaries, or list the most recent ones",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			c := client.NewAnalysisClient(config.ServerAddr, config.Timeout)
			response, err := c.Search(cmd.Context(), query, cursor)
			if err != nil {
				return err
			}
			return printer(cmd).Search(response)
		},
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "Cursor returned by a previous listing")
	return cmd
}

// newInspectCmd reads Badger directly. The lock guard is bypassed so that
// a running server does not block it.
func newInspectCmd(config *Config, printer printerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump every analysis stored in a Badger directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if config.BadgerFilepath == "" {
				return errors.New("--db or BADGER_FILEPATH is required")
			}
			opts := badger.DefaultOptions(config.BadgerFilepath).
				WithReadOnly(true).
				WithBypassLockGuard(true).
				WithLoggingLevel(badger.WARNING)
			db, err := badger.Open(opts)
			if err != nil {
				return fmt.Errorf("opening %s: %w", config.BadgerFilepath, err)
			}
			defer func() {
				_ = db.Close()
			}()

			repository := repositories.NewAnalysisRepository(db, nil, logs.GetLoggerFromLevel(slog.LevelWarn), 0)
			return printer(cmd).Inspect(repository)
		},
	}
	cmd.Flags().StringVar(&config.BadgerFilepath, "db", config.BadgerFilepath, "Badger directory")
	return cmd
}
