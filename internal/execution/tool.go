package execution

import (
	"os/exec"

	"tlaunch/internal/config"
)

// Tool is an external program a test binary can be launched under
type Tool int

const (
	ToolNone Tool = iota
	ToolValgrind
	ToolGDB
)

// ToolFromFlags picks the tool selected on the command line
func ToolFromFlags(flags config.Flags) Tool {
	switch {
	case flags.GDB:
		return ToolGDB
	case flags.Valgrind:
		return ToolValgrind
	default:
		return ToolNone
	}
}

func (t Tool) String() string {
	switch t {
	case ToolValgrind:
		return "valgrind"
	case ToolGDB:
		return "gdb"
	default:
		return ""
	}
}

// Interactive reports whether the tool needs the terminal, in which case
// the binary's output is not captured or parsed.
func (t Tool) Interactive() bool {
	return t == ToolGDB
}

// Command returns the argv prefix that runs a binary under the tool
func (t Tool) Command(cfg *config.Config) []string {
	switch t {
	case ToolValgrind:
		return append([]string{cfg.ValgrindPath}, cfg.Flags.ToolArgs...)
	case ToolGDB:
		// everything after --args belongs to the debugged program
		argv := append([]string{cfg.GDBPath}, cfg.Flags.ToolArgs...)
		return append(argv, "--args")
	default:
		return nil
	}
}

// CheckTool verifies that an external tool can be executed
func CheckTool(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return &ToolNotFoundError{Tool: name, Err: err}
	}
	return nil
}
