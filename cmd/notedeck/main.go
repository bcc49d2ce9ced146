// Package main implements the notedeck command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/notedeck/config"
)

// app holds state shared by all commands.
type app struct {
	cfgPath string
	verbose bool
	seed    uint64

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "notedeck",
		Short: "Turn lecture notes into a branded PowerPoint deck",
		Long: `notedeck converts loosely formatted lecture notes into a slide deck built
on a PowerPoint template.

Notes are split into slides at "Slide N:" or "Lecture N:" headers. Each
slide becomes a bullet list, a two-column table or a code block depending
on its content.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			if a.logger != nil {
				return nil
			}
			logger, err := newLogger(a.verbose || cfg.Debug())
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", config.DefaultConfigPath, "Path to YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().Uint64Var(&a.seed, "seed", 0, "Seed for generated colors (default: random)")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newPreviewCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newInspectCmd(a))
	return root
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return cfg.Build()
}

// seedFlag returns the --seed value when given, else the configured seed.
func (a *app) seedFlag(cmd *cobra.Command) *uint64 {
	if cmd.Flags().Changed("seed") {
		seed := a.seed
		return &seed
	}
	return a.cfg.Branding.Seed
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
