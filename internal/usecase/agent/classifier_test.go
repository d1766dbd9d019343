package agent

import (
	"context"
	"testing"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_ModifyKeywordSkipsProvider(t *testing.T) {
	oracle := &stubOracle{replies: []string{"should not be called"}}
	c := NewClassifier(oracle)

	result, err := c.Classify(context.Background(), "please fix the off-by-one bug", "", "")
	require.NoError(t, err)

	assert.Equal(t, entity.IntentModifyExisting, result.Intent)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Zero(t, oracle.calls, "keyword match must not reach the provider")
}

func TestClassify_VietnameseKeyword(t *testing.T) {
	oracle := &stubOracle{}
	c := NewClassifier(oracle)

	result, err := c.Classify(context.Background(), "chỉnh sửa hàm này giúp tôi", "", "")
	require.NoError(t, err)

	assert.Equal(t, entity.IntentModifyExisting, result.Intent)
	assert.Zero(t, oracle.calls)
}

func TestClassify_ProviderReply(t *testing.T) {
	oracle := &stubOracle{replies: []string{
		"INTENT: CREATE_NEW\nCONFIDENCE: 0.95\nREASONING: the user asks for a brand new function",
	}}
	c := NewClassifier(oracle)

	result, err := c.Classify(context.Background(), "write a binary search", "", "")
	require.NoError(t, err)

	assert.Equal(t, entity.IntentCreateNew, result.Intent)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, "the user asks for a brand new function", result.Reasoning)
	assert.Equal(t, 1, oracle.calls)
}

func TestParseClassificationReply_LabelPriority(t *testing.T) {
	cases := []struct {
		name       string
		reply      string
		intent     entity.Intent
		confidence float64
	}{
		{"create new", "INTENT: CREATE_NEW", entity.IntentCreateNew, 0.9},
		{"modify", "INTENT: MODIFY_EXISTING", entity.IntentModifyExisting, 0.85},
		{"analyze", "INTENT: ANALYZE", entity.IntentAnalyze, 0.8},
		{"unmatched", "no label at all", entity.IntentUnknown, 0},
		{"create wins over modify", "CREATE_NEW or maybe MODIFY_EXISTING", entity.IntentCreateNew, 0.9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseClassificationReply(tc.reply)
			assert.Equal(t, tc.intent, result.Intent)
			assert.Equal(t, tc.confidence, result.Confidence)
		})
	}
}

func TestExtractReasoning_FallsBackToWholeReply(t *testing.T) {
	result := ParseClassificationReply("just some text")
	assert.Equal(t, "just some text", result.Reasoning)
}
