package commands

import (
	"errors"
	"io/fs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"tlaunch/internal/config"
	"tlaunch/internal/storage"
	"tlaunch/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.storage.Load()
	if errors.Is(err, fs.ErrNotExist) {
		color.Yellow("No stored test results, launch some tests first")
		return nil
	}
	if err != nil {
		return err
	}

	if fc.config.Flags.Summary {
		fc.formatter.PrintMetaStats(results)
		return nil
	}
	return fc.viewer.View(results)
}
