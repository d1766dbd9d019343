package codegen

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

const defaultReviewScore = 7.0

var scorePattern = regexp.MustCompile(`(?i)(?:score|rating)[:\s]+(\d+(?:\.\d+)?)`)

// issueKeywords mark a reply line as a flagged issue. Every match is emitted
// with severity "medium" and type "general"; this is a crude line scan, not
// structured extraction.
var issueKeywords = []string{"bug", "error", "issue", "problem", "warning"}

var improvementKeywords = []string{"suggest", "improve", "consider", "recommend"}

const maxImprovements = 5

const reviewPromptTemplate = `Review the following %s code (%s review):

%s

Please provide:
1. An overall score from 0 to 10 (format: "Score: X")
2. A list of issues found, each with its severity
3. Concrete suggestions for improvement`

// Reviewer builds review prompts and parses the provider's free-text verdict.
type Reviewer struct {
	oracle Oracle
}

func NewReviewer(oracle Oracle) *Reviewer {
	return &Reviewer{oracle: oracle}
}

// ReviewResult is the parsed outcome of one review call.
type ReviewResult struct {
	Score        float64
	Issues       []entity.ReviewIssue
	Summary      string
	Improvements []string
}

// Review runs a single review call and parses the reply.
func (r *Reviewer) Review(ctx context.Context, code, language, reviewType, model string) (*ReviewResult, error) {
	if reviewType == "" {
		reviewType = "general"
	}

	prompt := fmt.Sprintf(reviewPromptTemplate, language, reviewType, code)

	reply, err := r.oracle.Complete(ctx, prompt, model)
	if err != nil {
		return nil, fmt.Errorf("review call: %w", err)
	}

	return ParseReviewReply(reply), nil
}

// ParseReviewReply extracts the score, issue lines and improvement lines from
// a free-text review.
func ParseReviewReply(reply string) *ReviewResult {
	result := &ReviewResult{
		Score:        defaultReviewScore,
		Issues:       []entity.ReviewIssue{},
		Summary:      reply,
		Improvements: []string{},
	}

	if match := scorePattern.FindStringSubmatch(reply); match != nil {
		if score, err := strconv.ParseFloat(match[1], 64); err == nil {
			result.Score = score
		}
	}

	lines := strings.Split(reply, "\n")

	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, keyword := range issueKeywords {
			if strings.Contains(lower, keyword) {
				result.Issues = append(result.Issues, entity.ReviewIssue{
					Severity:    "medium",
					IssueType:   "general",
					Description: strings.TrimSpace(line),
					Suggestion:  "Review and fix as suggested",
				})
				break
			}
		}
	}

	replyLower := strings.ToLower(reply)
	if strings.Contains(replyLower, "improvement") || strings.Contains(replyLower, "suggest") {
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			lower := strings.ToLower(trimmed)
			for _, keyword := range improvementKeywords {
				if strings.Contains(lower, keyword) {
					result.Improvements = append(result.Improvements, trimmed)
					break
				}
			}
			if len(result.Improvements) == maxImprovements {
				break
			}
		}
	}

	return result
}
