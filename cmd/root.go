// =============================================================================
// FBX to DAE Automation - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (fbx2dae)
//   ├── convertCmd   (fbx2dae convert)
//   ├── normalizeCmd (fbx2dae normalize)
//   ├── validateCmd  (fbx2dae validate)
//   ├── watchCmd     (fbx2dae watch)
//   └── versionCmd   (fbx2dae version)
//
// CONFIGURATION:
//   The root command owns the flags shared by all commands:
//   1. Configuration file and per-run overrides
//   2. Logging (level, JSON output)
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/config"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging and disables progress line overwriting.
var verbose bool

// logLevel overrides the log level of the configuration file.
var logLevel string

// logJSON switches log output to JSON lines.
var logJSON bool

// overrides holds command-line values that replace configuration values.
var overrides config.Overrides

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fbx2dae",
	Short: "FBX to DAE Automation - Batch convert FBX models to COLLADA",
	Long: `fbx2dae converts every FBX file in an input directory to COLLADA (DAE)
with an external converter, one file at a time, and repairs the scene graph
of each produced file: the extra top-level node the converter wraps around
the model is removed and its child nodes become direct children of the
visual scene.

Example Usage:
  fbx2dae convert                        # Convert all files in the input directory
  fbx2dae convert --config ./my.yaml     # Use a custom configuration file
  fbx2dae normalize dae/chair.dae        # Repair an already converted file
  fbx2dae watch                          # Keep converting new files
  fbx2dae validate                       # Check the configuration only`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main(). Interrupts cancel the
// command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "config.yaml",
		"Path to the configuration file (YAML, or legacy config.xml)")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	flags.StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error (overrides log_level)")
	flags.BoolVar(&logJSON, "log-json", false,
		"Write logs as JSON lines")

	flags.StringVar(&overrides.ConverterPath, "converter", "",
		"Path to the converter executable (overrides converter_path)")
	flags.StringVar(&overrides.InputDir, "input-dir", "",
		"Directory scanned for input files (overrides input_dir)")
	flags.StringVar(&overrides.OutputDir, "output-dir", "",
		"Directory receiving converted files (overrides output_dir)")
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig resolves and loads the configuration file and applies the
// command-line overrides. When requireFile is false a missing default file
// yields the default configuration.
func loadConfig(requireFile bool) (config.Config, error) {
	explicit := rootCmd.PersistentFlags().Changed("config")
	path := config.ResolvePath(cfgFile, explicit)

	cfg, err := config.Load(path)
	if err != nil {
		if requireFile || explicit || !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = config.Default()
	}

	o := overrides
	o.LogLevel = logLevel
	return cfg.WithOverrides(o), nil
}

// newLogger builds the logger for a command from the configuration and the
// logging flags.
func newLogger(cfg config.Config) logger.Logger {
	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.LogLevel(cfg.LogLevel)
	if verbose {
		logCfg.Level = logger.DebugLevel
	}
	logCfg.JSON = logJSON

	log := logger.New(logCfg)
	if !logCfg.Level.Valid() {
		log.Warn("Unknown log level, using info", "level", cfg.LogLevel)
	}
	return log
}
