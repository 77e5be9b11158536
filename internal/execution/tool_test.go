package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tlaunch/internal/config"
)

func TestToolFromFlags(t *testing.T) {
	assert.Equal(t, ToolNone, ToolFromFlags(config.Flags{}))
	assert.Equal(t, ToolValgrind, ToolFromFlags(config.Flags{Valgrind: true}))
	assert.Equal(t, ToolGDB, ToolFromFlags(config.Flags{GDB: true}))
}

func TestTool_Command(t *testing.T) {
	cfg := config.New()
	cfg.ValgrindPath = "/opt/valgrind/bin/valgrind"

	assert.Nil(t, ToolNone.Command(cfg))
	assert.Equal(t, []string{"/opt/valgrind/bin/valgrind"}, ToolValgrind.Command(cfg))
	assert.Equal(t, []string{"gdb", "--args"}, ToolGDB.Command(cfg))

	cfg.Flags.ToolArgs = []string{"--leak-check=full", "--error-exitcode=3"}
	assert.Equal(t,
		[]string{"/opt/valgrind/bin/valgrind", "--leak-check=full", "--error-exitcode=3"},
		ToolValgrind.Command(cfg))
	assert.Nil(t, ToolNone.Command(cfg), "tool args need a tool")

	cfg.Flags.ToolArgs = []string{"-batch", "-ex", "run"}
	assert.Equal(t, []string{"gdb", "-batch", "-ex", "run", "--args"}, ToolGDB.Command(cfg))
}

func TestTool_Interactive(t *testing.T) {
	assert.True(t, ToolGDB.Interactive())
	assert.False(t, ToolValgrind.Interactive())
	assert.False(t, ToolNone.Interactive())
}

func TestCheckTool(t *testing.T) {
	err := CheckTool("tlaunch-no-such-tool")

	var toolErr *ToolNotFoundError
	assert.ErrorAs(t, err, &toolErr)
	assert.Contains(t, err.Error(), "tlaunch-no-such-tool is not installed")
}
