// Package main provides the CLI entrypoint for adjconst-generator.
//
// adjconst-generator rewrites C# constants containers so every constant can be
// overridden at runtime:
//   - Keeps the original declaration behind a compile-time guard
//   - Rebinds each member to consult an adjustment singleton first
//   - Emits the adjustment type with one override slot per member
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"adjconst-generator/internal/cli"
	"adjconst-generator/internal/config"
	"adjconst-generator/internal/metrics"
	"adjconst-generator/internal/rewrite"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	metricsAddr string

	logger     *zap.Logger
	appMetrics *metrics.Metrics
	appConfig  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "adjconst-generator",
	Short: "Rewrite C# constants containers into runtime-adjustable form",
	Long: `adjconst-generator turns a C# class of constants into a guarded file that keeps
the original declaration for editing and adds a rebound container whose members
read an override from an adjustment singleton before falling back to their
original defaults.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		appConfig, err = loadConfig(configPath)
		if err != nil {
			return err
		}

		appMetrics = metrics.New()
		if metricsAddr != "" {
			go func() {
				if err := appMetrics.Serve(cmd.Context(), metricsAddr, logger); err != nil {
					logger.Error("metrics server stopped", zap.Error(err))
				}
			}()
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(rewriteCmd, printCmd, inspectCmd, serveCmd, watchCmd, initCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, or returns the defaults when path
// is empty. Validation errors abort; warnings are logged.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	diags := config.Validate(cfg)
	for _, w := range diags.Warnings {
		logger.Warn(w.Message, zap.String("code", w.Code), zap.String("key", w.Member))
	}

	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newRunner builds the runner from the loaded configuration.
func newRunner() (*cli.Runner, error) {
	opts, err := appConfig.RewriteOptions()
	if err != nil {
		return nil, err
	}

	return cli.NewRunner(rewrite.New(opts), appConfig.RetryPolicy(), logger, appMetrics), nil
}
