package embed

import "context"

// MockEmbedder is a deterministic Embedder implementation for testing.
type MockEmbedder struct {
	// Vectors maps input text to the embedding to return. Texts not
	// present yield Default.
	Vectors map[string][]float32

	// Default is returned for texts missing from Vectors.
	Default []float32

	// Err, if set, is returned by every Embed call.
	Err error

	// ModelName reported by Model; defaults to "mock-embed".
	ModelName string

	// CallCount tracks how many times Embed was invoked.
	CallCount int
}

// Model returns the configured model name.
func (m *MockEmbedder) Model() string {
	if m.ModelName == "" {
		return "mock-embed"
	}
	return m.ModelName
}

// Embed returns the configured vector or error for the text.
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	return m.Default, nil
}
