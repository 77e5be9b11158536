package domain

// Failure levels as reported in the XML log
const (
	LevelError      = "error"
	LevelFatalError = "fatal_error"
	LevelException  = "exception"
)

// TestFailure represents a failed test case
type TestFailure struct {
	ID       int64  `json:"-"`
	Binary   string `json:"binary"`
	Suite    string `json:"suite"`
	TestName string `json:"test_name"`
	Level    string `json:"level"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
	Resolved bool   `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
