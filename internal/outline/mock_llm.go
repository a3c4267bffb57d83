package outline

import "context"

// MockLLM is a deterministic LLM implementation for testing.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// LastSystem and LastUser store the most recent prompt parts
	// passed to Generate.
	LastSystem string
	LastUser   string
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or error.
func (m *MockLLM) Generate(ctx context.Context, system, user string) (string, error) {
	m.LastSystem = system
	m.LastUser = user

	if m.Error != nil {
		return "", m.Error
	}
	return m.Response, nil
}
