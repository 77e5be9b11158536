package discovery

import "tlaunch/internal/domain"

// Resolver maps a test identifier to an executable path
type Resolver interface {
	Resolve(name string) (string, error)
}

// Checker reports which configured test binaries can be launched
type Checker struct {
	resolver Resolver
}

// NewChecker creates a new Checker
func NewChecker(resolver Resolver) *Checker {
	return &Checker{resolver: resolver}
}

// Check resolves every test binary, keeping table order
func (c *Checker) Check(tests []string) []domain.BinaryStatus {
	statuses := make([]domain.BinaryStatus, 0, len(tests))
	for _, name := range tests {
		status := domain.BinaryStatus{Name: name}
		path, err := c.resolver.Resolve(name)
		if err != nil {
			status.Error = err.Error()
		} else {
			status.Path = path
			status.Found = true
		}
		statuses = append(statuses, status)
	}
	return statuses
}
