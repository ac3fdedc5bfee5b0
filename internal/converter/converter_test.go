package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/config"
)

func testConfig(outputDir string) config.Config {
	return config.Config{
		ConverterPath:   "FbxConverter.exe",
		OutputDir:       outputDir,
		OutputExtension: "dae",
		InputFormat:     "FBX",
		OutputFormat:    "DAE",
	}
}

type recordingRunner struct {
	code  int
	err   error
	calls [][]string
	names []string
	ctx   context.Context
}

func (r *recordingRunner) Run(ctx context.Context, name string, args []string) (int, error) {
	r.ctx = ctx
	r.names = append(r.names, name)
	r.calls = append(r.calls, args)
	return r.code, r.err
}

func TestInvoker_OutputPathAndArgs(t *testing.T) {
	inv := New(testConfig("dae"), &recordingRunner{}, nil)

	out := inv.OutputPath(filepath.Join("fbx", "chair.fbx"))
	assert.Equal(t, filepath.Join("dae", "chair.dae"), out)

	assert.Equal(t,
		[]string{"fbx/chair.fbx", "dae/chair.dae", "/sffFBX", "/dffDAE"},
		inv.Args("fbx/chair.fbx", "dae/chair.dae"),
	)
}

func TestInvoker_Convert(t *testing.T) {
	t.Run("exit zero succeeds", func(t *testing.T) {
		runner := &recordingRunner{code: 0}
		inv := New(testConfig("dae"), runner, nil)

		out, err := inv.Convert(context.Background(), filepath.Join("fbx", "chair.fbx"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("dae", "chair.dae"), out)

		require.Len(t, runner.calls, 1)
		assert.Equal(t, "FbxConverter.exe", runner.names[0])
		assert.Equal(t, []string{filepath.Join("fbx", "chair.fbx"), out, "/sffFBX", "/dffDAE"}, runner.calls[0])
	})

	t.Run("non-zero exit fails", func(t *testing.T) {
		inv := New(testConfig("dae"), &recordingRunner{code: 1}, nil)

		out, err := inv.Convert(context.Background(), "broken.fbx")
		require.Error(t, err)
		assert.Equal(t, filepath.Join("dae", "broken.dae"), out)

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 1, exitErr.Code)
		assert.Equal(t, 1, ExitCode(err))
	})

	t.Run("spawn failure fails", func(t *testing.T) {
		cause := errors.New("file not found")
		inv := New(testConfig("dae"), &recordingRunner{code: -1, err: cause}, nil)

		_, err := inv.Convert(context.Background(), "chair.fbx")
		require.Error(t, err)

		var spawnErr *SpawnError
		require.True(t, errors.As(err, &spawnErr))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, -1, ExitCode(err))
	})

	t.Run("timeout sets a deadline", func(t *testing.T) {
		cfg := testConfig("dae")
		cfg.ConverterTimeout = time.Minute
		runner := &recordingRunner{}

		_, err := New(cfg, runner, nil).Convert(context.Background(), "chair.fbx")
		require.NoError(t, err)

		_, ok := runner.ctx.Deadline()
		assert.True(t, ok)
	})

	t.Run("no timeout by default", func(t *testing.T) {
		runner := &recordingRunner{}

		_, err := New(testConfig("dae"), runner, nil).Convert(context.Background(), "chair.fbx")
		require.NoError(t, err)

		_, ok := runner.ctx.Deadline()
		assert.False(t, ok)
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 3, ExitCode(&ExitError{Code: 3}))
	assert.Equal(t, -1, ExitCode(errors.New("boom")))
}

func TestRunnerFunc(t *testing.T) {
	var got []string
	r := RunnerFunc(func(_ context.Context, name string, args []string) (int, error) {
		got = append([]string{name}, args...)
		return 7, nil
	})

	code, err := r.Run(context.Background(), "conv", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 7, code)
	assert.Equal(t, []string{"conv", "a", "b"}, got)
}

// =============================================================================
// EXEC RUNNER
// =============================================================================

const (
	helperEnv     = "FBX2DAE_HELPER_PROCESS"
	helperExitEnv = "FBX2DAE_HELPER_EXIT"
	helperWaitEnv = "FBX2DAE_HELPER_SLEEP"
)

// TestHelperProcess is not a real test. It is the fake converter executed
// by the ExecRunner tests: it writes the output file and exits with the
// requested code.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}

	if d, err := time.ParseDuration(os.Getenv(helperWaitEnv)); err == nil {
		time.Sleep(d)
	}

	code, _ := strconv.Atoi(os.Getenv(helperExitEnv))
	if code == 0 && len(args) >= 2 {
		_ = os.WriteFile(args[1], []byte("<COLLADA/>"), 0o644)
	}
	os.Exit(code)
}

func helperArgs(in, out string) []string {
	return []string{"-test.run=^TestHelperProcess$", "--", in, out, "/sffFBX", "/dffDAE"}
}

func TestExecRunner_ExitCodes(t *testing.T) {
	t.Setenv(helperEnv, "1")

	t.Run("zero", func(t *testing.T) {
		t.Setenv(helperExitEnv, "0")
		out := filepath.Join(t.TempDir(), "chair.dae")

		code, err := NewExecRunner(nil).Run(context.Background(), os.Args[0], helperArgs("chair.fbx", out))
		require.NoError(t, err)
		assert.Equal(t, 0, code)
		assert.FileExists(t, out)
	})

	t.Run("non-zero", func(t *testing.T) {
		t.Setenv(helperExitEnv, "2")
		out := filepath.Join(t.TempDir(), "broken.dae")

		code, err := NewExecRunner(nil).Run(context.Background(), os.Args[0], helperArgs("broken.fbx", out))
		require.NoError(t, err)
		assert.Equal(t, 2, code)
		assert.NoFileExists(t, out)
	})
}

func TestExecRunner_SpawnFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "FbxConverter.exe")

	code, err := NewExecRunner(nil).Run(context.Background(), missing, nil)
	require.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestExecRunner_ContextExpiry(t *testing.T) {
	t.Setenv(helperEnv, "1")
	t.Setenv(helperExitEnv, "0")
	t.Setenv(helperWaitEnv, "10s")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	code, err := NewExecRunner(nil).Run(ctx, os.Args[0], helperArgs("slow.fbx", filepath.Join(t.TempDir(), "slow.dae")))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, -1, code)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestInvoker_WithExecRunner(t *testing.T) {
	t.Setenv(helperEnv, "1")
	t.Setenv(helperExitEnv, "0")

	outDir := t.TempDir()
	cfg := testConfig(outDir)
	cfg.ConverterPath = os.Args[0]

	runner := RunnerFunc(func(ctx context.Context, name string, args []string) (int, error) {
		full := append([]string{"-test.run=^TestHelperProcess$", "--"}, args...)
		return NewExecRunner(nil).Run(ctx, name, full)
	})

	out, err := New(cfg, runner, nil).Convert(context.Background(), "chair.fbx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "chair.dae"), out)
	assert.FileExists(t, out)
}
