package execution

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tlaunch/internal/config"
	"tlaunch/internal/domain"
	"tlaunch/internal/log"
	"tlaunch/internal/storage"
)

// Reporter displays launch progress and results
type Reporter interface {
	Starting(name string)
	// Finished receives the result of every launch that ran to completion
	Finished(result *domain.LaunchResult)
	LaunchSummary(result *domain.LaunchResult)
	TerminatedBySignal(command string, signal int)
}

// Launcher launches one test binary per call. Results of all launches made
// through one Launcher share its run ID.
type Launcher struct {
	runID    string
	config   *config.Config
	tool     Tool
	resolver *Resolver
	runner   *Runner
	storage  storage.Storage
	reporter Reporter
}

// NewLauncher creates a new Launcher. st may be nil, in which case results
// are not persisted.
func NewLauncher(cfg *config.Config, tool Tool, resolver *Resolver, runner *Runner, st storage.Storage, reporter Reporter) *Launcher {
	return &Launcher{
		runID:    uuid.NewString(),
		config:   cfg,
		tool:     tool,
		resolver: resolver,
		runner:   runner,
		storage:  st,
		reporter: reporter,
	}
}

// RunID identifies the results stored by this Launcher
func (l *Launcher) RunID() string {
	return l.runID
}

// Launch runs the test binary named by args[0] with the remaining args.
// Failing tests are reported but only returned as an error in strict mode.
func (l *Launcher) Launch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoBinary
	}
	name, passthrough := args[0], args[1:]

	toolCmd := l.tool.Command(l.config)
	if len(toolCmd) > 0 {
		if err := CheckTool(toolCmd[0]); err != nil {
			return err
		}
	}

	path, err := l.resolver.Resolve(name)
	if err != nil {
		return err
	}
	log.WithBinary(name).Debug("resolved test binary", "path", path, "tool", l.tool.String())

	argv := make([]string, 0, len(toolCmd)+1+len(passthrough)+len(l.config.LaunchArgs))
	argv = append(argv, toolCmd...)
	argv = append(argv, path)
	argv = append(argv, passthrough...)

	l.reporter.Starting(name)

	if l.tool.Interactive() {
		if err := l.runner.RunAttached(ctx, argv); err != nil {
			return err
		}
		// the debugger owns the terminal, so there is no result to report
		l.reporter.Finished(&domain.LaunchResult{RunID: l.runID, Binary: name, Path: path, Tool: l.tool.String()})
		return nil
	}

	argv = append(argv, l.config.LaunchArgs...)
	result, err := l.runner.RunParsed(ctx, name, argv)
	if err != nil {
		return err
	}
	result.RunID = l.runID
	result.Path = path
	result.Tool = l.tool.String()

	if len(result.Suites) > 0 || len(result.Failures) > 0 || result.LogError != "" {
		l.reporter.LaunchSummary(&result)
	}
	if result.Signal != 0 {
		l.reporter.TerminatedBySignal(strings.Join(args, " "), result.Signal)
	}

	if l.storage != nil {
		if err := l.storage.Save(&result); err != nil {
			return fmt.Errorf("save results of %s: %w", name, err)
		}
	}

	l.reporter.Finished(&result)

	if l.config.Strict && !result.Success() {
		return fmt.Errorf("%s: %w", name, ErrTestsFailed)
	}
	return nil
}
