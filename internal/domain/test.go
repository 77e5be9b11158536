package domain

// Case statuses
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// SuiteResult represents one test suite from a binary's XML log
type SuiteResult struct {
	Name  string       `json:"name"` // Nested suites are joined with "/"
	Cases []CaseResult `json:"cases"`
}

// CaseResult represents a single test case
type CaseResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"` // Why the case was skipped
	TimeMicros int64  `json:"time_us"`
}
