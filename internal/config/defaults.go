package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultEnvFile is the env file read from the project path
	DefaultEnvFile = ".env"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultLogLevel is the diagnostics level when none is configured
	DefaultLogLevel = "WARN"
	// DefaultValgrindPath is the valgrind executable looked up on PATH
	DefaultValgrindPath = "valgrind"
	// DefaultGDBPath is the gdb executable looked up on PATH
	DefaultGDBPath = "gdb"
)

// DefaultTestBinaries is the table of test binaries launched by "tlaunch all".
// Insert other test binaries here.
var DefaultTestBinaries = []string{
	"cargo-unit-tests",
}

// DefaultLaunchArgs are appended to every parsed launch so the binary emits
// an XML log on stdout.
var DefaultLaunchArgs = []string{
	"--log_format=XML",
	"--log_level=test_suite",
	"--report_level=short",
	"--catch_system_errors=no",
}

// Environment variables read by Load.
const (
	EnvProjectPath = "TLAUNCH_PROJECT_PATH"
	EnvBinDir      = "TLAUNCH_BIN_DIR"
	EnvLogLevel    = "TLAUNCH_LOG_LEVEL"
	EnvStrict      = "TLAUNCH_STRICT"
	EnvResultsDSN  = "TLAUNCH_RESULTS_DSN"
	EnvValgrind    = "TLAUNCH_VALGRIND"
	EnvGDB         = "TLAUNCH_GDB"
)
