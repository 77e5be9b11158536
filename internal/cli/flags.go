package cli

import "tlaunch/internal/config"

// Flags holds command-line flags
type Flags struct {
	Valgrind   bool
	GDB        bool
	ToolArgs   []string
	Strict     bool
	NameFilter string
	Summary    bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Valgrind:   f.Valgrind,
		GDB:        f.GDB,
		ToolArgs:   f.ToolArgs,
		Strict:     f.Strict,
		NameFilter: f.NameFilter,
		Summary:    f.Summary,
	}
}
