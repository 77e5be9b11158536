package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"tlaunch/internal/config"
	"tlaunch/internal/domain"
	"tlaunch/internal/log"
	"tlaunch/internal/parser"
)

// Runner executes a single test binary process
type Runner struct {
	dir    string
	parser parser.Parser
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a new Runner attached to the process's stdio
func NewRunner(cfg *config.Config, p parser.Parser) *Runner {
	return &Runner{
		dir:    cfg.ProjectPath,
		parser: p,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetOutput redirects the child's passthrough output
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

func (r *Runner) command(ctx context.Context, argv []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.Dir = r.dir
	return cmd
}

// RunParsed runs argv, echoing its output while capturing and parsing the
// XML test log from stdout. A non-zero exit is reported in the result, not
// as an error.
func (r *Runner) RunParsed(ctx context.Context, name string, argv []string) (domain.LaunchResult, error) {
	logger := log.WithBinary(name)
	result := domain.LaunchResult{
		Binary:    name,
		Args:      argv,
		StartedAt: time.Now(),
	}

	cmd := r.command(ctx, argv)
	cmd.Stderr = r.stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return result, fmt.Errorf("open stdout of %s: %w", name, err)
	}

	logger.Debug("starting process", "argv", argv, "dir", r.dir)
	if err := cmd.Start(); err != nil {
		return result, fmt.Errorf("start %s: %w", name, err)
	}

	testLog, readErr := parser.ExtractLog(stdout, r.stdout)
	if readErr != nil {
		// keep draining so the child never blocks on a full pipe
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()
	result.Duration = time.Since(result.StartedAt)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("launch %s: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return result, fmt.Errorf("wait for %s: %w", name, waitErr)
	}
	if readErr != nil {
		logger.Warn("test output truncated", "error", readErr)
	}

	result.ExitCode = cmd.ProcessState.ExitCode()
	if ws, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		result.Signal = int(ws.Signal())
	}
	logger.Debug("process exited", "exit_code", result.ExitCode, "signal", result.Signal, "duration", result.Duration)

	suites, failures, err := r.parser.Parse(name, testLog)
	if err != nil {
		// a crashed binary leaves a truncated log behind, and output written
		// while the log is open ends up inside it
		logger.Warn("could not parse test log", "error", err)
		result.LogError = err.Error()
	}
	result.Suites = suites
	result.Failures = failures

	return result, nil
}

// RunAttached runs argv with the terminal attached and nothing captured.
// ctx is only checked before the start. Once running, the process owns the
// terminal and receives Ctrl+C itself; cancellation does not kill it.
func (r *Runner) RunAttached(ctx context.Context, argv []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run %s: %w", argv[0], err)
	}

	cmd := r.command(context.WithoutCancel(ctx), argv)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	log.Get().Debug("starting attached process", "argv", argv)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Get().Debug("attached process exited", "exit_code", exitErr.ExitCode())
			return nil
		}
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}
