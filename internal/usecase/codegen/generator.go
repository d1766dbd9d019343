package codegen

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

// fencedBlockPattern matches a triple-backtick code block, ignoring the
// optional language tag after the opening fence.
var fencedBlockPattern = regexp.MustCompile("(?s)```[a-zA-Z0-9+#_-]*\n(.*?)```")

const missingFencePlaceholder = "Code generated successfully"

// Generator builds generation prompts and splits provider replies into code
// and explanation.
type Generator struct {
	oracle Oracle
}

func NewGenerator(oracle Oracle) *Generator {
	return &Generator{oracle: oracle}
}

// Generate runs a single generation call and parses the reply.
func (g *Generator) Generate(ctx context.Context, req *entity.GenerateCodeRequest) (string, string, error) {
	prompt := BuildGenerationPrompt(req)

	reply, err := g.oracle.Complete(ctx, prompt, req.Model)
	if err != nil {
		return "", "", fmt.Errorf("generation call: %w", err)
	}

	code, explanation := SplitCodeAndExplanation(reply)
	return code, explanation, nil
}

// BuildGenerationPrompt concatenates the requirement text, optional framework
// hint and extra context with the fixed instruction footer.
func BuildGenerationPrompt(req *entity.GenerateCodeRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate %s code for the following requirement:\n\n", req.Language)
	fmt.Fprintf(&sb, "%s\n\n", req.Prompt)

	if req.Framework != "" {
		fmt.Fprintf(&sb, "Use %s framework.\n", req.Framework)
	}
	if req.AdditionalContext != "" {
		fmt.Fprintf(&sb, "Additional context: %s\n", req.AdditionalContext)
	}

	sb.WriteString("\nPlease provide:\n")
	sb.WriteString("1. Clean, well-structured code\n")
	sb.WriteString("2. Comments explaining key parts\n")
	sb.WriteString("3. Brief explanation of the implementation\n")

	return sb.String()
}

// SplitCodeAndExplanation extracts the first fenced code block; the remaining
// prose with all fences removed becomes the explanation. A reply without a
// fence is treated entirely as code with a fixed placeholder explanation.
func SplitCodeAndExplanation(reply string) (string, string) {
	matches := fencedBlockPattern.FindStringSubmatch(reply)
	if matches == nil {
		return reply, missingFencePlaceholder
	}

	code := strings.TrimSpace(matches[1])
	explanation := strings.TrimSpace(fencedBlockPattern.ReplaceAllString(reply, ""))

	return code, explanation
}
