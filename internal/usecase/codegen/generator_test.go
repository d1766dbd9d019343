package codegen

import (
	"context"
	"testing"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOracle replies with a scripted text and records prompts.
type stubOracle struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (s *stubOracle) Complete(ctx context.Context, prompt, model string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func TestBuildGenerationPrompt(t *testing.T) {
	prompt := BuildGenerationPrompt(&entity.GenerateCodeRequest{
		Prompt:   "a binary search over a sorted slice",
		Language: "go",
	})

	assert.Contains(t, prompt, "Generate go code for the following requirement:")
	assert.Contains(t, prompt, "a binary search over a sorted slice")
	assert.Contains(t, prompt, "1. Clean, well-structured code")
	assert.NotContains(t, prompt, "framework")
}

func TestBuildGenerationPrompt_OptionalSections(t *testing.T) {
	prompt := BuildGenerationPrompt(&entity.GenerateCodeRequest{
		Prompt:            "a REST endpoint",
		Language:          "python",
		Framework:         "FastAPI",
		AdditionalContext: `{"goal_kind":"function"}`,
	})

	assert.Contains(t, prompt, "Use FastAPI framework.")
	assert.Contains(t, prompt, `Additional context: {"goal_kind":"function"}`)
}

func TestSplitCodeAndExplanation_FencedBlock(t *testing.T) {
	reply := "Here is the implementation:\n```python\ndef add(a, b):\n    return a + b\n```\nIt simply adds the arguments."

	code, explanation := SplitCodeAndExplanation(reply)

	assert.Equal(t, "def add(a, b):\n    return a + b", code)
	assert.Contains(t, explanation, "Here is the implementation:")
	assert.Contains(t, explanation, "It simply adds the arguments.")
	assert.NotContains(t, explanation, "```")
}

func TestSplitCodeAndExplanation_FirstOfMultipleBlocks(t *testing.T) {
	reply := "```go\npackage main\n```\nsome prose\n```bash\ngo run .\n```"

	code, explanation := SplitCodeAndExplanation(reply)

	assert.Equal(t, "package main", code)
	assert.NotContains(t, explanation, "```", "all fences are stripped from the explanation")
	assert.Contains(t, explanation, "some prose")
}

func TestSplitCodeAndExplanation_NoFence(t *testing.T) {
	code, explanation := SplitCodeAndExplanation("def f():\n    pass")

	assert.Equal(t, "def f():\n    pass", code)
	assert.Equal(t, "Code generated successfully", explanation)
}

func TestGenerator_Generate(t *testing.T) {
	oracle := &stubOracle{reply: "```python\nprint('hi')\n```\nPrints a greeting."}
	g := NewGenerator(oracle)

	code, explanation, err := g.Generate(context.Background(), &entity.GenerateCodeRequest{
		Prompt:   "print hi",
		Language: "python",
	})
	require.NoError(t, err)

	assert.Equal(t, "print('hi')", code)
	assert.Equal(t, "Prints a greeting.", explanation)
	require.Len(t, oracle.prompts, 1)
	assert.Contains(t, oracle.prompts[0], "Generate python code")
}
