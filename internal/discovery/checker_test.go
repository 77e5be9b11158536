package discovery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tlaunch/internal/domain"
)

type mapResolver map[string]string

func (m mapResolver) Resolve(name string) (string, error) {
	if p, ok := m[name]; ok {
		return p, nil
	}
	return "", errors.New("not found")
}

func TestChecker_Check(t *testing.T) {
	checker := NewChecker(mapResolver{
		"cargo-unit-tests": "/opt/tests/cargo-unit-tests",
	})

	statuses := checker.Check([]string{"cargo-unit-tests", "vasum-unit-tests"})

	assert.Equal(t, []domain.BinaryStatus{
		{Name: "cargo-unit-tests", Path: "/opt/tests/cargo-unit-tests", Found: true},
		{Name: "vasum-unit-tests", Error: "not found"},
	}, statuses)
}

func TestChecker_Check_Empty(t *testing.T) {
	statuses := NewChecker(mapResolver{}).Check(nil)
	assert.Empty(t, statuses)
}
