// Package main provides the CLI entry point for layoutview.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/layoutview/internal/cache"
	"github.com/ukaji3/layoutview/pkg/layoutview"
	"github.com/ukaji3/layoutview/pkg/layoutview/models"
	"github.com/ukaji3/layoutview/pkg/layoutview/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes.
const (
	exitSuccess  = 0
	exitUsage    = 1
	exitIO       = 2
	exitFormat   = 3
	exitInternal = 4
	exitCanceled = 130
)

// usageError marks bad arguments, flags or configuration.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// cli holds per-invocation state for the root command.
type cli struct {
	configFile string
	// logger is built from the config unless a test injects one.
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(&cli{})
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(exitCode(err))
	}
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "layoutview [input.xlsx]",
		Short: "Classify the layout of every sheet in an Excel file",
		Long: `layoutview reads every sheet of an Excel workbook and classifies its layout
as Tabular, Form, Sparse, Empty or Unknown, printing a JSON array with one
object per sheet in workbook order.

Exit codes: 1 usage, 2 file missing or unreadable, 3 invalid workbook, 4 internal error,
130 interrupted.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		SilenceUsage: true,
		RunE:         c.run,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().String("format", "json", "Output format: json, yaml")
	rootCmd.Flags().String("sheets-dir", "", "Directory for per-sheet JSON files")
	rootCmd.Flags().Bool("skip-hidden", false, "Omit hidden sheets")
	rootCmd.Flags().Int("workers", 1, "Number of sheets classified in parallel")
	rootCmd.Flags().String("cache", "", "SQLite result cache path (disabled when empty)")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&c.configFile, "config", "", "Config file (default: ./layoutview.yaml if present)")

	return rootCmd
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := loadConfig(cmd.Flags(), c.configFile)
	if err != nil {
		return usageError{err}
	}
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return usageError{err}
	}

	logger, err := c.buildLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts := layoutview.Options{
		Thresholds: &cfg.Thresholds,
		SkipHidden: cfg.SkipHidden,
		Workers:    cfg.Workers,
		Logger:     logger,
	}

	results, err := classify(cmd.Context(), inputPath, cfg.Cache, opts)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	data, err := output.Encode(results, format, cfg.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	// Write output
	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if cfg.SheetsDir == "" {
		writeStdout(cmd.OutOrStdout(), data)
	}

	// Write per-sheet files
	if cfg.SheetsDir != "" {
		if err := writeSheetFiles(results, cfg.SheetsDir, cfg.Pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	return nil
}

func (c *cli) buildLogger(verbose bool) (*zap.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// classify runs the classification, consulting the result cache when one
// is configured. Cache failures are logged and never fail the command.
func classify(ctx context.Context, path, cachePath string, opts layoutview.Options) ([]models.SheetClassification, error) {
	if cachePath == "" {
		return layoutview.Classify(ctx, path, opts)
	}
	log := opts.Logger

	content, err := os.ReadFile(path)
	if err != nil {
		// Let the classifier report the error with its proper kind.
		return layoutview.Classify(ctx, path, opts)
	}

	store, err := cache.Open(cachePath)
	if err != nil {
		log.Warn("result cache unavailable", zap.String("cache", cachePath), zap.Error(err))
		return layoutview.ClassifyReader(ctx, bytes.NewReader(content), opts)
	}
	defer store.Close()

	key := cache.Key(content, opts.EffectiveThresholds(), opts.SkipHidden)
	if results, ok, err := store.Get(ctx, key); err != nil {
		log.Warn("result cache lookup failed", zap.Error(err))
	} else if ok {
		log.Debug("result cache hit", zap.String("path", path))
		return results, nil
	}

	results, err := layoutview.ClassifyReader(ctx, bytes.NewReader(content), opts)
	if err != nil {
		return nil, err
	}
	if err := store.Put(ctx, key, path, results); err != nil {
		log.Warn("result cache store failed", zap.Error(err))
	}
	return results, nil
}

func writeStdout(w io.Writer, data []byte) {
	if len(data) > 0 && data[len(data)-1] == '\n' {
		fmt.Fprint(w, string(data))
		return
	}
	fmt.Fprintln(w, string(data))
}

func writeSheetFiles(results []models.SheetClassification, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range results {
		jsonData, err := output.SheetToJSON(&results[i], pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, results[i].SheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var usage usageError
	if errors.As(err, &usage) {
		return exitUsage
	}
	switch layoutview.KindOf(err) {
	case layoutview.KindNotFound, layoutview.KindIO:
		return exitIO
	case layoutview.KindFormat:
		return exitFormat
	case layoutview.KindCanceled:
		return exitCanceled
	default:
		return exitInternal
	}
}
