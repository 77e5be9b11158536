package domain

// BinaryStatus describes a configured test binary and whether it can be launched
type BinaryStatus struct {
	Name  string
	Path  string
	Found bool
	Error string
}
