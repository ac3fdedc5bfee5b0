// =============================================================================
// FBX to DAE Automation - Normalize Command
// =============================================================================
//
// This file defines the 'normalize' command, which repairs the scene graph
// of DAE files that were already converted. The converter is not run.
//
// COMMAND USAGE:
//   fbx2dae normalize [file.dae ...]
//
//   Without arguments every DAE file directly inside the output directory
//   is repaired. Files without a wrapper node are left untouched, so the
//   command can safely be repeated.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/dae"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/progress"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/types"
	"github.com/ginjaninja78/fbx-to-dae-automation/pkg/utils"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file.dae ...]",
	Short: "Remove the converter's wrapper node from existing DAE files",
	Long: `The normalize command lifts the child nodes of the converter's wrapper
node up into the visual scene and removes the wrapper, for DAE files that
were converted earlier. Without arguments, all DAE files in the output
directory are processed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runNormalize(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(ctx context.Context, files []string) error {
	start := time.Now()

	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	if len(files) == 0 {
		files, err = utils.NewFileManager(cfg.OutputDir, cfg.OutputDir).DiscoverInputFiles(cfg.MatchesOutput)
		if err != nil {
			return fmt.Errorf("failed to discover DAE files: %w", err)
		}
	}

	normalizer := dae.NewNormalizer(cfg.IndentSpaces, log)
	reporter := progress.NewStdoutReporter(verbose)

	var failed int
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		reporter.Report(path, types.StageRemovingArtifacts)
		result, err := normalizer.NormalizeFile(path)
		if err != nil {
			failed++
			reporter.Report(path, types.StageFailed)
			log.Error("Failed to normalize", "file", path, "error", err)
			continue
		}
		reporter.Report(path, types.StageFinished)
		log.Debug("Normalized", "file", path, "changed", result.Normalized, "moved", result.Moved)
	}

	if failed > 0 {
		log.Warn("Some files could not be normalized", "failed", failed, "total", len(files))
	}
	fmt.Printf("Finished in %dms\n", time.Since(start).Milliseconds())
	return nil
}
