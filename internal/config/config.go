package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	BinDir      string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	ResultsDSN     string

	// Test binaries launched by "all"; fixed at build time
	TestBinaries []string
	LaunchArgs   []string

	// External tools
	ValgrindPath string
	GDBPath      string

	LogLevel string
	Strict   bool

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Valgrind   bool
	GDB        bool
	ToolArgs   []string
	Strict     bool
	NameFilter string
	Summary    bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		ValgrindPath:   DefaultValgrindPath,
		GDBPath:        DefaultGDBPath,
		LogLevel:       DefaultLogLevel,
	}
	// Copy default tables so callers can't mutate the package-level ones
	cfg.TestBinaries = make([]string, len(DefaultTestBinaries))
	copy(cfg.TestBinaries, DefaultTestBinaries)
	cfg.LaunchArgs = make([]string, len(DefaultLaunchArgs))
	copy(cfg.LaunchArgs, DefaultLaunchArgs)
	return cfg
}

// Load creates a config from defaults, the project .env file and the
// process environment. A missing .env file is not an error.
func Load() (*Config, error) {
	cfg := New()
	if p := os.Getenv(EnvProjectPath); p != "" {
		cfg.ProjectPath = p
	}

	envPath := filepath.Join(cfg.ProjectPath, DefaultEnvFile)
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envPath, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if p := os.Getenv(EnvProjectPath); p != "" {
		c.ProjectPath = p
	}
	if v := os.Getenv(EnvBinDir); v != "" {
		c.BinDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvResultsDSN); v != "" {
		c.ResultsDSN = v
	}
	if v := os.Getenv(EnvValgrind); v != "" {
		c.ValgrindPath = v
	}
	if v := os.Getenv(EnvGDB); v != "" {
		c.GDBPath = v
	}
	if v := os.Getenv(EnvStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvStrict, v, err)
		}
		c.Strict = strict
	}
	return nil
}

// ApplyFlags copies parsed command flags into the config
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Strict {
		c.Strict = true
	}
}

// GetBinDir returns the directory test binaries are resolved against, or ""
// when binaries are looked up on PATH.
func (c *Config) GetBinDir() string {
	if c.BinDir == "" {
		return ""
	}
	if filepath.IsAbs(c.BinDir) {
		return c.BinDir
	}
	return filepath.Join(c.ProjectPath, c.BinDir)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so launches and the failures viewer always
// read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
