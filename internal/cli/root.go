// Package cli holds the literalkg commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/literalkg/internal/config"
	"github.com/agenthands/literalkg/internal/logger"
)

const defaultConfigPath = "config/config.toml"

// app carries what every subcommand needs once the root has run.
type app struct {
	cfgFile string
	debug   bool
	cfg     *config.Config
}

// NewRootCommand builds the full command tree. Each call returns a fresh
// tree so tests can run commands independently.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "literalkg",
		Short: "Build literal-augmented link-prediction datasets",
		Long: `literalkg turns knowledge-graph triples plus numeric and textual literal
tables into indexed edges, normalised numeric feature matrices and text
embedding tensors, and writes them as one bundle.

The bundle can then be filtered by attribute frequency, its text features
quantised into clusters, and inspected from the command line or over HTTP.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is "+defaultConfigPath+" when present)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newBuildCommand(a),
		newFilterCommand(a),
		newClusterCommand(a),
		newInspectCommand(a),
		newServeCommand(a),
		newGraphImportCommand(a),
	)
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) init(cmd *cobra.Command, args []string) error {
	logger.InitWriter(cmd.ErrOrStderr(), a.debug)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment")
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.cfgFile != "" {
		return config.Load(a.cfgFile)
	}

	cfg, err := config.Load(defaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no config file, using defaults", "path", defaultConfigPath)
		return config.Default(), nil
	}
	return cfg, err
}
