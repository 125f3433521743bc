package clipboard

// Memory is a Provider that keeps clipboard text in the process.
// It never fails.
type Memory struct {
	contents [2]string
}

// NewMemory creates an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// Name returns "memory".
func (m *Memory) Name() string {
	return "memory"
}

// GetContents returns the text last set for t.
func (m *Memory) GetContents(t Type) (string, error) {
	if t != System && t != Primary {
		return "", ErrUnsupported
	}
	return m.contents[t], nil
}

// SetContents stores text for t.
func (m *Memory) SetContents(text string, t Type) error {
	if t != System && t != Primary {
		return ErrUnsupported
	}
	m.contents[t] = text
	return nil
}
