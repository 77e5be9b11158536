package domain

import "time"

// LaunchResult represents the result of launching a single test binary
type LaunchResult struct {
	ID        int64         `json:"-"`              // Row id when stored in a database
	RunID     string        `json:"run_id"`         // Shared by all launches of one invocation
	Binary    string        `json:"binary"`         // Identifier from the test table or command line
	Path      string        `json:"path"`           // Resolved executable path
	Args      []string      `json:"args"`           // Full argv, external tool included
	Tool      string        `json:"tool,omitempty"` // External tool the binary ran under
	ExitCode  int           `json:"exit_code"`      // -1 when terminated by a signal
	Signal    int           `json:"signal,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Suites    []SuiteResult `json:"suites,omitempty"`
	Failures  []TestFailure `json:"failures,omitempty"`
	LogError  string        `json:"log_error,omitempty"` // Set when the XML log could not be parsed
}

// Success reports whether the binary exited cleanly with no failed cases.
// A launch whose log could not be parsed is never successful.
func (r *LaunchResult) Success() bool {
	return r.ExitCode == 0 && r.Signal == 0 && len(r.Failures) == 0 && r.LogError == ""
}

// CaseCounts returns the number of passed, failed and skipped test cases
func (r *LaunchResult) CaseCounts() (passed, failed, skipped int) {
	for _, s := range r.Suites {
		for _, c := range s.Cases {
			switch c.Status {
			case StatusPassed:
				passed++
			case StatusFailed:
				failed++
			case StatusSkipped:
				skipped++
			}
		}
	}
	return passed, failed, skipped
}

// ResultsMeta contains metadata about the stored launches
type ResultsMeta struct {
	TotalBinaries   int     `json:"total_binaries"`
	FailedBinaries  int     `json:"failed_binaries"`
	PassedBinaries  int     `json:"passed_binaries"`
	FailedTestCases int     `json:"failed_test_cases"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// ResultsOutput is the complete stored results structure
type ResultsOutput struct {
	Meta     ResultsMeta    `json:"meta"`
	Launches []LaunchResult `json:"launches"`
}

// Failures flattens the failures of every stored launch
func (o *ResultsOutput) Failures() []TestFailure {
	var all []TestFailure
	for _, l := range o.Launches {
		all = append(all, l.Failures...)
	}
	return all
}

// ForRun returns the launches made under runID with Meta recomputed
func (o *ResultsOutput) ForRun(runID string, now time.Time) *ResultsOutput {
	run := &ResultsOutput{}
	for _, l := range o.Launches {
		if l.RunID == runID {
			run.Launches = append(run.Launches, l)
		}
	}
	run.Recompute(now)
	return run
}

// Recompute rebuilds Meta from Launches
func (o *ResultsOutput) Recompute(now time.Time) {
	meta := ResultsMeta{
		TotalBinaries: len(o.Launches),
		Timestamp:     now.Format(time.RFC3339),
	}
	for i := range o.Launches {
		l := &o.Launches[i]
		if l.Success() {
			meta.PassedBinaries++
		} else {
			meta.FailedBinaries++
		}
		_, failed, _ := l.CaseCounts()
		meta.FailedTestCases += failed
		meta.DurationSeconds += l.Duration.Seconds()
	}
	o.Meta = meta
}
