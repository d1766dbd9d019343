package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a canned completion provider for local runs without an API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Complete returns a canned reply shaped for whichever pipeline stage the
// prompt looks like, so the whole workflow can be exercised offline.
func (m *MockConnector) Complete(ctx context.Context, prompt, model string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] completion request",
		zap.String("model", model),
		zap.Int("prompt_length", len(prompt)),
	)

	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "extract") && strings.Contains(lower, "json"):
		return `{
  "goal_type": "function",
  "details": {
    "function_name": "mock_function",
    "purpose": "Demonstrate the workflow without a live provider",
    "inputs": [{"name": "value", "type": "string", "description": "input value"}],
    "outputs": {"type": "string", "description": "processed value"},
    "core_logic": ["validate the input", "return the processed value"]
  }
}`, nil

	case strings.Contains(lower, "intent"):
		return "INTENT: CREATE_NEW\nCONFIDENCE: 0.9\nREASONING: The prompt asks for new code.", nil

	case strings.Contains(lower, "review") || strings.Contains(lower, "analyze"):
		return "Score: 8.5\nThe code is clear and handles its inputs correctly.\nConsider adding input validation for edge cases.", nil

	default:
		return fmt.Sprintf("```python\ndef mock_function(value):\n    return value\n```\n\nThis is a mock reply for model %s.", model), nil
	}
}
