//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=../mocks/mock_generator.go -package=mocks
package ai

import (
	"context"
	"encoding/json"
)

// Prompt is a complete structured instruction: the rendered text plus the
// JSON schema the answer must follow.
type Prompt struct {
	Name        string
	Instruction string
	Schema      map[string]any
}

// Generator is the text-generation collaborator. It returns the raw JSON
// object produced for the prompt.
type Generator interface {
	Complete(ctx context.Context, prompt Prompt) (json.RawMessage, error)
}
