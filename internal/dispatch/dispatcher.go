// Package dispatch launches every binary of a fixed test table in order.
package dispatch

import "context"

// Launcher runs one test binary. args[0] is the test identifier, the rest
// are passthrough arguments.
type Launcher interface {
	Launch(ctx context.Context, args []string) error
}

// LauncherFunc adapts a function to the Launcher interface
type LauncherFunc func(ctx context.Context, args []string) error

// Launch calls f(ctx, args)
func (f LauncherFunc) Launch(ctx context.Context, args []string) error {
	return f(ctx, args)
}

// Dispatcher sequences launches over a fixed table of test identifiers
type Dispatcher struct {
	tests    []string
	launcher Launcher
}

// New creates a Dispatcher for the given test table
func New(tests []string, launcher Launcher) *Dispatcher {
	t := make([]string, len(tests))
	copy(t, tests)
	return &Dispatcher{tests: t, launcher: launcher}
}

// Tests returns a copy of the test table
func (d *Dispatcher) Tests() []string {
	t := make([]string, len(d.tests))
	copy(t, d.tests)
	return t
}

// Run launches each test with forwarded appended to its identifier, one at a
// time in table order. The first launcher error is returned as is and the
// remaining tests are not launched.
func (d *Dispatcher) Run(ctx context.Context, forwarded []string) error {
	for _, test := range d.tests {
		args := make([]string, 0, len(forwarded)+1)
		args = append(args, test)
		args = append(args, forwarded...)
		if err := d.launcher.Launch(ctx, args); err != nil {
			return err
		}
	}
	return nil
}
