// Package ai wraps the text-generation collaborator behind a narrow
// completion interface so callers can be tested with a mock.
package ai

import (
	"context"

	"github.com/openai/openai-go"
)

// Completion is the single outbound contract the engine depends on.
type Completion interface {
	Completions(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, tools []openai.ChatCompletionToolParam, model string) (openai.ChatCompletionMessage, error)
}
