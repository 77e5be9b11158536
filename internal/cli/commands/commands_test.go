package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tlaunch/internal/cli"
	"tlaunch/internal/config"
	"tlaunch/internal/discovery"
	"tlaunch/internal/domain"
	"tlaunch/internal/execution"
	"tlaunch/internal/parser"
	"tlaunch/internal/storage"
	"tlaunch/internal/ui"
)

type fakeViewer struct {
	calls int
}

func (v *fakeViewer) View(*domain.ResultsOutput) error {
	v.calls++
	return nil
}

type fixture struct {
	cfg     *config.Config
	cmds    *Commands
	out     *bytes.Buffer
	storage storage.Storage
	viewer  *fakeViewer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test binaries are shell scripts")
	}

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.BinDir = "bin"
	binDir := filepath.Join(cfg.ProjectPath, "bin")
	require.NoError(t, os.Mkdir(binDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "cargo-unit-tests"), []byte("#!/bin/sh\nexit 0\n"), 0o755))

	fx := &fixture{
		cfg:     cfg,
		out:     &bytes.Buffer{},
		storage: storage.NewJSONStorage(cfg),
		viewer:  &fakeViewer{},
	}

	resolver := execution.NewResolver(cfg)
	runner := execution.NewRunner(cfg, parser.NewBoostParser())
	runner.SetOutput(io.Discard, io.Discard)
	formatter := ui.NewFormatterTo(fx.out)

	fx.cmds = &Commands{
		All:      NewAllCommand(cfg, resolver, runner, fx.storage, formatter),
		Launch:   NewLaunchCommand(cfg, resolver, runner, fx.storage, formatter),
		List:     NewListCommand(cfg, discovery.NewFilter(), discovery.NewChecker(resolver), formatter),
		Failures: NewFailuresCommand(cfg, fx.storage, formatter, fx.viewer),
	}
	return fx
}

func (fx *fixture) execute(args ...string) error {
	rootCmd := &cobra.Command{Use: "tlaunch", SilenceUsage: true, SilenceErrors: true}
	var flags cli.Flags
	fx.cmds.Register(rootCmd, &flags, fx.cfg)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	return rootCmd.ExecuteContext(context.Background())
}

func TestListCommand(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.TestBinaries = []string{"cargo-unit-tests", "vasum-unit-tests"}

	require.NoError(t, fx.execute("list"))

	out := fx.out.String()
	assert.Contains(t, out, "Found 2 test binaries:")
	assert.Contains(t, out, filepath.Join(fx.cfg.ProjectPath, "bin", "cargo-unit-tests"))
	assert.Contains(t, out, "└── vasum-unit-tests [missing:")
}

func TestListCommand_Filter(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.TestBinaries = []string{"cargo-unit-tests", "vasum-unit-tests"}

	require.NoError(t, fx.execute("list", "-f", "vasum*"))
	assert.Contains(t, fx.out.String(), "Found 1 test binary:")
	assert.NotContains(t, fx.out.String(), "cargo-unit-tests")
}

func TestLaunchCommand(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.execute("launch", "cargo-unit-tests", "--valgrind", "--run_test=Suite"))

	assert.False(t, fx.cfg.Flags.Valgrind, "flags after the binary belong to the binary")
	assert.Contains(t, fx.out.String(), "Starting cargo-unit-tests ...")
	assert.Contains(t, fx.out.String(), "cargo-unit-tests finished.")

	results, err := fx.storage.Load()
	require.NoError(t, err)
	require.Len(t, results.Launches, 1)
	args := results.Launches[0].Args
	assert.Equal(t, []string{"--valgrind", "--run_test=Suite"}, args[1:3])
}

func TestLaunchCommand_Flags(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.ValgrindPath = "tlaunch-no-such-valgrind"

	err := fx.execute("launch", "--strict", "--valgrind", "--tool-arg=--leak-check=full", "cargo-unit-tests")

	var toolErr *execution.ToolNotFoundError
	require.ErrorAs(t, err, &toolErr)
	assert.True(t, fx.cfg.Strict)
	assert.Equal(t, []string{"--leak-check=full"}, fx.cfg.Flags.ToolArgs)
}

func TestLaunchCommand_InvalidArgs(t *testing.T) {
	fx := newFixture(t)

	assert.Error(t, fx.execute("launch"))

	err := fx.execute("launch", "--valgrind", "--gdb", "cargo-unit-tests")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valgrind")
	assert.Empty(t, fx.out.String())
}

func TestAllCommand(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.execute("all", "--random=1", "--help"))

	results, err := fx.storage.Load()
	require.NoError(t, err)
	require.Len(t, results.Launches, 1)
	assert.Equal(t, []string{"--random=1", "--help"}, results.Launches[0].Args[1:3])
	assert.Contains(t, fx.out.String(), "Test Launch Statistics")
	assert.Contains(t, fx.out.String(), "All test binaries passed!")
}

func TestAllCommand_StatisticsCoverOnlyThisRun(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.storage.Save(&domain.LaunchResult{
		RunID:    "earlier-run",
		Binary:   "other-tests",
		ExitCode: 201,
	}))

	require.NoError(t, fx.execute("all"))

	out := fx.out.String()
	assert.Contains(t, out, "All test binaries passed!")
	assert.NotContains(t, out, "test binary failed")

	stored, err := fx.storage.Load()
	require.NoError(t, err)
	assert.Len(t, stored.Launches, 2, "earlier results stay in the store")
}

func TestAllCommand_StopsAtFirstError(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.TestBinaries = []string{"cargo-unit-tests", "vasum-unit-tests", "cargo-unit-tests"}

	err := fx.execute("all")

	var notFound *execution.BinaryNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 1, bytes.Count(fx.out.Bytes(), []byte("Starting cargo-unit-tests")))
	assert.NotContains(t, fx.out.String(), "Test Launch Statistics")
}

func TestAllCommand_EmptyTable(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.TestBinaries = nil

	require.NoError(t, fx.execute("all"))
	assert.Empty(t, fx.out.String())
}

func TestFailuresCommand(t *testing.T) {
	t.Run("no stored results", func(t *testing.T) {
		fx := newFixture(t)
		require.NoError(t, fx.execute("failures"))
		assert.Zero(t, fx.viewer.calls)
	})

	t.Run("viewer", func(t *testing.T) {
		fx := newFixture(t)
		require.NoError(t, fx.storage.Save(&domain.LaunchResult{Binary: "cargo-unit-tests"}))

		require.NoError(t, fx.execute("failures"))
		assert.Equal(t, 1, fx.viewer.calls)
	})

	t.Run("summary", func(t *testing.T) {
		fx := newFixture(t)
		require.NoError(t, fx.storage.Save(&domain.LaunchResult{Binary: "cargo-unit-tests", ExitCode: 1}))

		require.NoError(t, fx.execute("failures", "--summary"))
		assert.Zero(t, fx.viewer.calls)
		assert.Contains(t, fx.out.String(), "✗ 1 test binary failed")
	})
}

func TestProgressReporter_Finished(t *testing.T) {
	var buf bytes.Buffer
	reporter := &progressReporter{Formatter: ui.NewFormatterTo(&buf), bar: ui.NewProgressBar(3)}

	reporter.Finished(&domain.LaunchResult{Binary: "a"})
	reporter.Finished(&domain.LaunchResult{Binary: "b", ExitCode: 201})
	reporter.Finished(&domain.LaunchResult{Binary: "c", Signal: 11, ExitCode: -1})

	assert.Equal(t, 1, reporter.passed)
	assert.Equal(t, 2, reporter.failed)
	assert.Contains(t, buf.String(), "c finished.")
}
