package commands

import (
	"fmt"
	"time"

	"tlaunch/internal/config"
	"tlaunch/internal/dispatch"
	"tlaunch/internal/domain"
	"tlaunch/internal/execution"
	"tlaunch/internal/storage"
	"tlaunch/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// AllCommand handles the all command
type AllCommand struct {
	config    *config.Config
	resolver  *execution.Resolver
	runner    *execution.Runner
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewAllCommand creates a new AllCommand
func NewAllCommand(
	cfg *config.Config,
	resolver *execution.Resolver,
	runner *execution.Runner,
	st storage.Storage,
	formatter *ui.Formatter,
) *AllCommand {
	return &AllCommand{
		config:    cfg,
		resolver:  resolver,
		runner:    runner,
		storage:   st,
		formatter: formatter,
	}
}

// progressReporter counts finished launches on the progress bar
type progressReporter struct {
	*ui.Formatter
	bar    *ui.ProgressBar
	passed int
	failed int
}

func (p *progressReporter) Finished(result *domain.LaunchResult) {
	if result.Success() {
		p.passed++
	} else {
		p.failed++
	}
	p.bar.Update(p.passed, p.failed)
	p.Formatter.Finished(result)
}

// Execute runs the command
func (ac *AllCommand) Execute(cmd *cobra.Command, args []string) error {
	tests := ac.config.TestBinaries
	if len(tests) == 0 {
		color.Yellow("No test binaries to launch")
		return nil
	}

	progressBar := ui.NewProgressBar(len(tests))
	reporter := &progressReporter{Formatter: ac.formatter, bar: progressBar}
	launcher := execution.NewLauncher(ac.config, execution.ToolNone, ac.resolver, ac.runner, ac.storage, reporter)

	err := dispatch.New(tests, launcher).Run(cmd.Context(), args)
	progressBar.Finish()
	if err != nil {
		return err
	}

	// the store also holds launches from earlier invocations
	results, err := ac.storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load test results: %w", err)
	}
	ac.formatter.PrintMetaStats(results.ForRun(launcher.RunID(), time.Now()))
	return nil
}
