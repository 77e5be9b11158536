package parser

import "tlaunch/internal/domain"

// Parser parses a test binary's log into suite results and failures
type Parser interface {
	Parse(binary string, log []byte) ([]domain.SuiteResult, []domain.TestFailure, error)
}
