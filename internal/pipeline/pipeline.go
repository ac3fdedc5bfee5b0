// =============================================================================
// FBX to DAE Automation - Conversion Pipeline
// =============================================================================
//
// This module orchestrates a conversion run:
//   1. Discover input files in the input directory
//   2. For each file, strictly one after another:
//      a. Run the external converter and wait for it
//      b. On exit status 0, repair the scene graph of the produced DAE
//   3. Aggregate the results into a run summary
//
// A failing job is reported and skipped; it never stops the batch.
//
// =============================================================================

package pipeline

import (
	"context"
	"time"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/config"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/converter"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/dae"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/logger"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/progress"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/report"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/types"
	"github.com/ginjaninja78/fbx-to-dae-automation/pkg/utils"
)

// Converter turns one input file into an output file.
type Converter interface {
	Convert(ctx context.Context, inputPath string) (string, error)
}

// Normalizer repairs a produced output file in place.
type Normalizer interface {
	NormalizeFile(path string) (dae.Result, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, inputPath string) (string, error)

// Convert calls f.
func (f ConverterFunc) Convert(ctx context.Context, inputPath string) (string, error) {
	return f(ctx, inputPath)
}

// NormalizerFunc adapts a function to the Normalizer interface.
type NormalizerFunc func(path string) (dae.Result, error)

// NormalizeFile calls f.
func (f NormalizerFunc) NormalizeFile(path string) (dae.Result, error) { return f(path) }

// Pipeline runs conversion jobs.
type Pipeline struct {
	cfg        config.Config
	converter  Converter
	normalizer Normalizer
	files      *utils.FileManager
	reporter   progress.Reporter
	logger     logger.Logger
}

// New creates a Pipeline. Nil collaborators fall back to the defaults built
// from cfg.
func New(
	cfg config.Config,
	conv Converter,
	norm Normalizer,
	files *utils.FileManager,
	reporter progress.Reporter,
	log logger.Logger,
) *Pipeline {
	if log == nil {
		log = logger.NewNop()
	}
	if conv == nil {
		conv = converter.New(cfg, nil, log)
	}
	if norm == nil {
		norm = dae.NewNormalizer(cfg.IndentSpaces, log)
	}
	if files == nil {
		files = utils.NewFileManager(cfg.InputDir, cfg.OutputDir)
	}
	if reporter == nil {
		reporter = progress.Nop
	}
	return &Pipeline{
		cfg:        cfg,
		converter:  conv,
		normalizer: norm,
		files:      files,
		reporter:   reporter,
		logger:     log,
	}
}

// Discover returns the input files of the run in name order.
func (p *Pipeline) Discover() ([]string, error) {
	return p.files.DiscoverInputFiles(p.cfg.MatchesInput)
}

// =============================================================================
// JOB PROCESSING
// =============================================================================

// ProcessFile converts and repairs a single input file. Failures are
// reported and returned in the result, never as a separate error.
func (p *Pipeline) ProcessFile(ctx context.Context, inputPath string) types.JobResult {
	start := time.Now()
	job := types.Job{
		InputPath:  inputPath,
		OutputPath: p.cfg.OutputPathFor(inputPath),
	}
	log := p.logger.With("input", inputPath)

	result := types.JobResult{Job: job}
	finish := func(stage types.Stage, err error) types.JobResult {
		result.Stage = stage
		result.Err = err
		result.Duration = time.Since(start)
		p.reporter.Report(job.OutputPath, stage)
		if err != nil {
			log.Error("Job failed", "output", job.OutputPath, "error", err)
		}
		return result
	}

	p.reporter.Report(job.OutputPath, types.StageConverting)

	outputPath, err := p.converter.Convert(ctx, inputPath)
	if err != nil {
		result.ExitCode = converter.ExitCode(err)
		return finish(types.StageFailed, err)
	}
	if outputPath != "" && outputPath != job.OutputPath {
		log.Debug("Converter wrote a different output", "expected", job.OutputPath, "output", outputPath)
		job.OutputPath = outputPath
		result.Job = job
	}

	p.reporter.Report(job.OutputPath, types.StageRemovingArtifacts)

	normalized, err := p.normalizer.NormalizeFile(job.OutputPath)
	if err != nil {
		return finish(types.StageFailed, err)
	}
	result.Normalized = normalized.Normalized
	result.NodesMoved = normalized.Moved

	result = finish(types.StageFinished, nil)
	if !normalized.Normalized {
		log.Warn("No wrapper node to remove", "output", job.OutputPath)
	}
	return result
}

// Run processes every discovered input file in order and returns the run
// summary. The only errors are failures to create or read the input and
// output directories; a cancelled context stops the run before the next job
// starts.
func (p *Pipeline) Run(ctx context.Context) (report.Summary, error) {
	summary := report.NewSummary()
	log := p.logger.With("run_id", summary.RunID)

	if err := p.files.EnsureDirectories(); err != nil {
		summary.Finish()
		return summary, err
	}

	inputs, err := p.Discover()
	if err != nil {
		summary.Finish()
		return summary, err
	}
	log.Info("Starting conversion", "files", len(inputs), "input_dir", p.cfg.InputDir, "output_dir", p.cfg.OutputDir)

	for _, input := range inputs {
		if ctx.Err() != nil {
			log.Warn("Run interrupted", "remaining", len(inputs)-summary.Total())
			summary.Finish()
			return summary, nil
		}
		summary.Add(p.ProcessFile(ctx, input))
	}

	summary.Finish()
	log.Info("Conversion finished",
		"succeeded", summary.Succeeded(),
		"failed", summary.Failed(),
		"duration", summary.Duration())
	return summary, nil
}
