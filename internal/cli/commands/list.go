package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"tlaunch/internal/config"
	"tlaunch/internal/discovery"
	"tlaunch/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	checker   *discovery.Checker
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	checker *discovery.Checker,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		checker:   checker,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	tests := lc.filter.FilterByName(lc.config.TestBinaries, lc.config.Flags.NameFilter)

	if len(tests) == 0 {
		color.Yellow("No test binaries found")
		return nil
	}

	lc.formatter.PrintTestList(lc.checker.Check(tests))
	return nil
}
