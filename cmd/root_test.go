package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/config"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/logger"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/report"
)

func useConfigFile(t *testing.T, path string) {
	t.Helper()
	prev, prevOverrides := cfgFile, overrides
	cfgFile = path
	t.Cleanup(func() {
		cfgFile = prev
		overrides = prevOverrides
	})
}

func TestLoadConfig_MissingFile(t *testing.T) {
	useConfigFile(t, filepath.Join(t.TempDir(), "config.yaml"))

	cfg, err := loadConfig(false)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOutputDir, cfg.OutputDir)

	_, err = loadConfig(true)
	require.Error(t, err)
}

func TestLoadConfig_LegacyFallbackAndOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.xml"),
		[]byte(`<FbxConverterAutomation fbx_converter_path="conv.exe" fbx_dir="in" dae_dir="out"/>`), 0o644))
	useConfigFile(t, filepath.Join(dir, "config.yaml"))
	overrides = config.Overrides{OutputDir: "elsewhere"}

	cfg, err := loadConfig(true)
	require.NoError(t, err)

	assert.Equal(t, "conv.exe", cfg.ConverterPath)
	assert.Equal(t, "in", cfg.InputDir)
	assert.Equal(t, "elsewhere", cfg.OutputDir)
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"convert", "normalize", "validate", "watch", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestReportFlagsPerCommand(t *testing.T) {
	t.Cleanup(func() {
		convertSummary, convertReport = false, ""
		watchSummary, watchReport = false, ""
	})

	require.NoError(t, convertCmd.Flags().Set("report", "convert.xlsx"))
	require.NoError(t, convertCmd.Flags().Set("summary", "true"))

	assert.Equal(t, "convert.xlsx", convertReport)
	assert.True(t, convertSummary)
	assert.Empty(t, watchReport)
	assert.False(t, watchSummary)
	assert.Equal(t, "", watchCmd.Flags().Lookup("report").Value.String())
}

func TestWriteReports(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	workbook := filepath.Join(t.TempDir(), "report.xlsx")

	summary := report.NewSummary()
	summary.Finish()

	writeReports(summary, cfg, logger.NewNop(), true, workbook)

	logs, err := filepath.Glob(filepath.Join(cfg.OutputDir, "conversion_summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.FileExists(t, workbook)
}

func TestWriteReports_NothingRequested(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()

	writeReports(report.NewSummary(), cfg, logger.NewNop(), false, "")

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
