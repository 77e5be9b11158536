package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetBinDir(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "unset uses PATH",
			config:   &Config{ProjectPath: "/project"},
			expected: "",
		},
		{
			name:     "relative to project",
			config:   &Config{ProjectPath: "/project", BinDir: "build/bin"},
			expected: "/project/build/bin",
		},
		{
			name:     "absolute bin dir",
			config:   &Config{ProjectPath: "/project", BinDir: "/usr/lib/tests"},
			expected: "/usr/lib/tests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetBinDir()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	expected := "/project/storage/test-results.json"
	if got := cfg.GetOutputPath(); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if len(cfg.TestBinaries) != len(DefaultTestBinaries) {
		t.Errorf("expected %d test binaries, got %d", len(DefaultTestBinaries), len(cfg.TestBinaries))
	}

	cfg.TestBinaries[0] = "changed"
	if DefaultTestBinaries[0] == "changed" {
		t.Error("New must copy the default test table")
	}

	if cfg.Strict {
		t.Error("strict mode should be off by default")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	env := "TLAUNCH_BIN_DIR=out/tests\nTLAUNCH_STRICT=true\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	t.Setenv(EnvProjectPath, dir)
	t.Setenv(EnvLogLevel, "debug")
	// godotenv.Load never overrides variables already present, so clear the
	// ones the file sets and let it populate them
	t.Setenv(EnvBinDir, "")
	t.Setenv(EnvStrict, "")
	os.Unsetenv(EnvBinDir)
	os.Unsetenv(EnvStrict)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BinDir != "out/tests" {
		t.Errorf("expected BinDir from .env, got %q", cfg.BinDir)
	}
	if !cfg.Strict {
		t.Error("expected strict mode from .env")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level from environment, got %q", cfg.LogLevel)
	}
	if got := cfg.GetBinDir(); got != filepath.Join(dir, "out/tests") {
		t.Errorf("unexpected bin dir %s", got)
	}
}

func TestLoad_InvalidStrict(t *testing.T) {
	t.Setenv(EnvProjectPath, t.TempDir())
	t.Setenv(EnvStrict, "maybe")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid strict value")
	}
}

func TestConfig_ApplyFlags(t *testing.T) {
	cfg := New()
	cfg.ApplyFlags(Flags{Strict: true, Valgrind: true})

	if !cfg.Strict {
		t.Error("--strict should enable strict mode")
	}
	if !cfg.Flags.Valgrind {
		t.Error("flags should be stored on the config")
	}
}
