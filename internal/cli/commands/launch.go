package commands

import (
	"tlaunch/internal/config"
	"tlaunch/internal/execution"
	"tlaunch/internal/storage"
	"tlaunch/internal/ui"

	"github.com/spf13/cobra"
)

// LaunchCommand handles the launch command
type LaunchCommand struct {
	config    *config.Config
	resolver  *execution.Resolver
	runner    *execution.Runner
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewLaunchCommand creates a new LaunchCommand
func NewLaunchCommand(
	cfg *config.Config,
	resolver *execution.Resolver,
	runner *execution.Runner,
	st storage.Storage,
	formatter *ui.Formatter,
) *LaunchCommand {
	return &LaunchCommand{
		config:    cfg,
		resolver:  resolver,
		runner:    runner,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *LaunchCommand) Execute(cmd *cobra.Command, args []string) error {
	tool := execution.ToolFromFlags(lc.config.Flags)
	launcher := execution.NewLauncher(lc.config, tool, lc.resolver, lc.runner, lc.storage, lc.formatter)
	return launcher.Launch(cmd.Context(), args)
}
