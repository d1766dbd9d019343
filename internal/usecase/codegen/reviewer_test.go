package codegen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReviewReply_Score(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		score float64
	}{
		{"colon format", "Score: 8.5\nLooks good overall.", 8.5},
		{"rating keyword", "My rating: 6 out of 10.", 6},
		{"case insensitive", "SCORE: 9", 9},
		{"no score defaults", "Looks fine to me.", 7.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseReviewReply(tc.reply)
			assert.Equal(t, tc.score, result.Score)
		})
	}
}

func TestParseReviewReply_Issues(t *testing.T) {
	reply := "Score: 5\nThere is a bug in the loop bound.\nAlso a potential error when the slice is empty.\nThe naming is fine."

	result := ParseReviewReply(reply)

	require.Len(t, result.Issues, 2)
	assert.Equal(t, "medium", result.Issues[0].Severity)
	assert.Equal(t, "general", result.Issues[0].IssueType)
	assert.Equal(t, "There is a bug in the loop bound.", result.Issues[0].Description)
	assert.Equal(t, "Review and fix as suggested", result.Issues[0].Suggestion)
}

func TestParseReviewReply_Improvements(t *testing.T) {
	reply := "Score: 7\nI suggest extracting a helper.\nConsider adding input validation.\nRecommend a doc comment.\nThe rest is fine."

	result := ParseReviewReply(reply)

	require.Len(t, result.Improvements, 3)
	assert.Equal(t, "I suggest extracting a helper.", result.Improvements[0])
}

func TestParseReviewReply_ImprovementsRequireGateWord(t *testing.T) {
	// No "improvement" or "suggest" anywhere, so no improvement lines are
	// collected even though "consider" appears.
	reply := "Score: 8\nConsider the edge cases."

	result := ParseReviewReply(reply)
	assert.Empty(t, result.Improvements)
}

func TestParseReviewReply_ImprovementsCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Suggestions:\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("Consider refactoring block number x.\n")
	}

	result := ParseReviewReply(sb.String())
	assert.Len(t, result.Improvements, 5)
}

func TestParseReviewReply_SummaryIsWholeReply(t *testing.T) {
	reply := "Score: 9\nClean code."
	result := ParseReviewReply(reply)
	assert.Equal(t, reply, result.Summary)
}

func TestReviewer_Review_DefaultsReviewType(t *testing.T) {
	oracle := &stubOracle{reply: "Score: 8"}
	r := NewReviewer(oracle)

	result, err := r.Review(context.Background(), "x = 1", "python", "", "")
	require.NoError(t, err)

	assert.Equal(t, 8.0, result.Score)
	require.Len(t, oracle.prompts, 1)
	assert.Contains(t, oracle.prompts[0], "(general review)")
	assert.Contains(t, oracle.prompts[0], "python")
}
