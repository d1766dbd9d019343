package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// modifyKeywords short-circuits classification for obvious modification
// requests without a provider call. The list is matched as substrings of the
// lowercased message.
var modifyKeywords = []string{
	"sửa", "fix", "chỉnh sửa", "thay đổi", "cập nhật",
	"modify", "update", "change", "correct", "improve",
}

const (
	keywordConfidence   = 0.9
	createNewConfidence = 0.9
	modifyConfidence    = 0.85
	analyzeConfidence   = 0.8
)

const classifyPromptTemplate = `Classify the user's intent based on the following prompt:
"%s"

Context (if any): %s

Determine the intent as one of:
- CREATE_NEW: the user wants new code or a new function
- MODIFY_EXISTING: the user wants to change or improve existing code
- ANALYZE: the user wants the code analyzed or reviewed
- UNKNOWN: the intent is unclear

Reply in EXACTLY this format:
INTENT: <CREATE_NEW|MODIFY_EXISTING|ANALYZE|UNKNOWN>
CONFIDENCE: <0.0-1.0>
REASONING: <why>`

// Classifier labels a user message with one of the fixed intents. Tier one is
// a local keyword match, tier two asks the provider.
type Classifier struct {
	oracle Oracle
}

func NewClassifier(oracle Oracle) *Classifier {
	return &Classifier{oracle: oracle}
}

// Classify returns the intent of the message. contextJSON is optional
// serialized session context included in the provider prompt.
func (c *Classifier) Classify(ctx context.Context, message, contextJSON, model string) (*entity.Classification, error) {
	if MatchesModifyKeyword(message) {
		ctxzap.Debug(ctx, "intent matched modification keyword, skipping provider call")
		return &entity.Classification{
			Intent:     entity.IntentModifyExisting,
			Confidence: keywordConfidence,
			Reasoning:  "message contains a modification keyword",
		}, nil
	}

	prompt := fmt.Sprintf(classifyPromptTemplate, message, contextJSON)

	reply, err := c.oracle.Complete(ctx, prompt, model)
	if err != nil {
		return nil, fmt.Errorf("classify call: %w", err)
	}

	result := ParseClassificationReply(reply)
	ctxzap.Debug(ctx, "intent classified",
		zap.String("intent", string(result.Intent)),
		zap.Float64("confidence", result.Confidence),
	)

	return result, nil
}

// MatchesModifyKeyword reports whether the message contains one of the fixed
// modification verbs.
func MatchesModifyKeyword(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range modifyKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ParseClassificationReply scans the reply for intent labels in order of
// specificity. CREATE_NEW is checked before MODIFY so that the generic
// "MODIFY" substring cannot shadow it, and an unmatched reply is unknown with
// zero confidence.
func ParseClassificationReply(reply string) *entity.Classification {
	upper := strings.ToUpper(reply)

	result := &entity.Classification{
		Intent:     entity.IntentUnknown,
		Confidence: 0,
		Reasoning:  extractReasoning(reply),
	}

	switch {
	case strings.Contains(upper, "CREATE_NEW"):
		result.Intent = entity.IntentCreateNew
		result.Confidence = createNewConfidence
	case strings.Contains(upper, "MODIFY"):
		result.Intent = entity.IntentModifyExisting
		result.Confidence = modifyConfidence
	case strings.Contains(upper, "ANALYZE"):
		result.Intent = entity.IntentAnalyze
		result.Confidence = analyzeConfidence
	}

	return result
}

func extractReasoning(reply string) string {
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "REASONING:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return strings.TrimSpace(reply)
}
