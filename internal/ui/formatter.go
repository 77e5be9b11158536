package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"tlaunch/internal/domain"
)

const suiteColumnWidth = 40

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to the colored stdout
func NewFormatter() *Formatter {
	return &Formatter{out: color.Output}
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

func (f *Formatter) line(c *color.Color, format string, args ...interface{}) {
	c.Fprintf(f.out, format, args...)
	fmt.Fprintln(f.out)
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// Starting announces a launch
func (f *Formatter) Starting(name string) {
	f.line(cyan, "Starting %s ...", name)
}

// Finished announces the end of a launch
func (f *Formatter) Finished(result *domain.LaunchResult) {
	f.line(cyan, "%s finished.", result.Binary)
}

// TerminatedBySignal reports a binary killed by a signal
func (f *Formatter) TerminatedBySignal(command string, signal int) {
	f.line(red, "\n%s has been terminated by signal %d", command, signal)
}

// LaunchSummary prints the per-suite table and the failed test cases of one launch
func (f *Formatter) LaunchSummary(result *domain.LaunchResult) {
	if result.LogError != "" {
		fmt.Fprintln(f.out)
		f.line(red, "✗ %s: test log could not be parsed, exit code %d", result.Binary, result.ExitCode)
		f.line(white, "       %s", result.LogError)
		return
	}

	passed, failed, skipped := result.CaseCounts()

	fmt.Fprintln(f.out)
	f.line(cyan, "╔═══════════════════════════════════════════════════════════════╗")
	f.line(cyan, "║ %-61s ║", truncate("Test results: "+result.Binary, 61))
	f.line(cyan, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.out, "┌──────────────────────────────────────────┬────────┬────────┬─────────┐")
	fmt.Fprintf(f.out, "│ %-40s │ %6s │ %6s │ %7s │\n", "Suite", "Passed", "Failed", "Skipped")
	fmt.Fprintln(f.out, "├──────────────────────────────────────────┼────────┼────────┼─────────┤")
	for _, s := range result.Suites {
		var p, fl, sk int
		for _, c := range s.Cases {
			switch c.Status {
			case domain.StatusPassed:
				p++
			case domain.StatusFailed:
				fl++
			case domain.StatusSkipped:
				sk++
			}
		}
		fmt.Fprintf(f.out, "│ %-40s │ %s │ %s │ %s │\n",
			truncate(s.Name, suiteColumnWidth),
			green.Sprintf("%6d", p),
			red.Sprintf("%6d", fl),
			yellow.Sprintf("%7d", sk),
		)
	}
	fmt.Fprintln(f.out, "└──────────────────────────────────────────┴────────┴────────┴─────────┘")

	fmt.Fprintln(f.out)
	if failed == 0 && len(result.Failures) == 0 {
		f.line(green, "✓ %s: all %d test case(s) passed (%d skipped) in %s", result.Binary, passed, skipped, result.Duration.Round(time.Millisecond))
		return
	}
	f.line(red, "✗ %s: %d of %d test case(s) failed", result.Binary, failed, passed+failed)
	f.printFailedTests(result.Failures)
}

// printFailedTests prints failures grouped by suite
func (f *Formatter) printFailedTests(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	bySuite := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		bySuite[failure.Suite] = append(bySuite[failure.Suite], failure)
	}
	var suites []string
	for suite := range bySuite {
		suites = append(suites, suite)
	}
	sort.Strings(suites)

	for _, suite := range suites {
		f.line(cyan, "%s", suite)
		for _, failure := range bySuite[suite] {
			location := ""
			if failure.File != "" {
				location = fmt.Sprintf(" (%s at %s:%d)", failure.Level, failure.File, failure.Line)
			}
			f.line(red, "  |_ %s%s", failure.TestName, location)
			for _, msg := range strings.Split(failure.Message, "\n") {
				if msg != "" {
					f.line(white, "       %s", msg)
				}
			}
		}
	}
}

// PrintTestList prints the configured test binaries and whether each one was found
func (f *Formatter) PrintTestList(binaries []domain.BinaryStatus) {
	f.line(green, "Found %d test binar%s:", len(binaries), plural(len(binaries), "y", "ies"))
	fmt.Fprintln(f.out)

	for i, b := range binaries {
		connector := "├──"
		if i == len(binaries)-1 {
			connector = "└──"
		}
		if b.Found {
			fmt.Fprintf(f.out, "%s %s %s\n", connector, cyan.Sprint(b.Name), white.Sprint(b.Path))
		} else {
			fmt.Fprintf(f.out, "%s %s %s\n", connector, cyan.Sprint(b.Name), red.Sprintf("[missing: %s]", b.Error))
		}
	}
}

// PrintMetaStats displays the statistics of the stored results
func (f *Formatter) PrintMetaStats(output *domain.ResultsOutput) {
	meta := output.Meta

	fmt.Fprintln(f.out)
	f.line(cyan, "╔═══════════════════════════════════════════════════════════════╗")
	f.line(cyan, "║                    Test Launch Statistics                     ║")
	f.line(cyan, "╚═══════════════════════════════════════════════════════════════╝")

	row := func(label string, c *color.Color, value string) {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", label, c.Sprintf("%-27s", value))
	}
	sep := "├─────────────────────────────────┼─────────────────────────────┤"

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row("Test Binaries", white, fmt.Sprint(meta.TotalBinaries))
	fmt.Fprintln(f.out, sep)
	row("Passed Binaries", green, fmt.Sprint(meta.PassedBinaries))
	fmt.Fprintln(f.out, sep)
	row("Failed Binaries", red, fmt.Sprint(meta.FailedBinaries))
	fmt.Fprintln(f.out, sep)
	row("Failed Test Cases", red, fmt.Sprint(meta.FailedTestCases))
	fmt.Fprintln(f.out, sep)
	row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Fprintln(f.out, sep)
	row("Timestamp", white, meta.Timestamp)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedBinaries == 0 {
		f.line(green, "✓ All test binaries passed!")
		return
	}
	f.line(red, "✗ %d test binar%s failed with %d test case failure(s)", meta.FailedBinaries, plural(meta.FailedBinaries, "y", "ies"), meta.FailedTestCases)
	fmt.Fprintln(f.out)
	f.printFailedTests(output.Failures())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
