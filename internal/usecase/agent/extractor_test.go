package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOracle replies with scripted texts in order and counts calls.
type stubOracle struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (s *stubOracle) Complete(ctx context.Context, prompt, model string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

func TestParseExtractionReply_SlicesJSONOutOfProse(t *testing.T) {
	reply := `Sure, here is the extraction you asked for:
{"function_name": "add", "purpose": "adds two numbers", "inputs": [{"name": "a", "type": "int"}], "core_logic": ["return a + b"], "outputs": {"type": "int", "description": "the sum"}}
Let me know if you need anything else.`

	req, err := ParseExtractionReply(reply)
	require.NoError(t, err)
	require.NotNil(t, req.Function)

	assert.Equal(t, entity.GoalFunction, req.GoalKind)
	assert.Equal(t, "add", req.Function.Name)
	assert.Equal(t, "adds two numbers", req.Function.Purpose)
	require.Len(t, req.Function.Inputs, 1)
	assert.Equal(t, "int", req.Function.Inputs[0].Type)
	require.NotNil(t, req.Function.Output)
	assert.Equal(t, "int", req.Function.Output.Type)
}

func TestParseExtractionReply_NoJSON(t *testing.T) {
	_, err := ParseExtractionReply("I cannot help with that.")
	assert.ErrorIs(t, err, entity.ErrNoJSONLocated)
}

func TestParseExtractionReply_MalformedJSON(t *testing.T) {
	_, err := ParseExtractionReply(`{"function_name": "add", }`)
	assert.ErrorIs(t, err, entity.ErrMalformedJSON)
}

func TestParseExtractionReply_MissingKey(t *testing.T) {
	_, err := ParseExtractionReply(`{"function_name": "add", "purpose": "x", "inputs": [], "core_logic": []}`)
	assert.ErrorIs(t, err, entity.ErrIncompleteSchema)
	assert.Contains(t, err.Error(), "outputs")
}

func TestParseExtractionReply_NullKeyCountsAsPresent(t *testing.T) {
	reply := `{"function_name": null, "purpose": "greets", "inputs": null, "core_logic": "print greeting", "outputs": null}`

	req, err := ParseExtractionReply(reply)
	require.NoError(t, err)

	fn := req.Function
	assert.Empty(t, fn.Name)
	assert.Nil(t, fn.Inputs)
	assert.Equal(t, []string{"print greeting"}, fn.CoreLogic, "scalar core_logic becomes a one-step list")
	assert.Nil(t, fn.Output, "null outputs stays empty")
}

func TestParseExtractionReply_NormalizesInputTypes(t *testing.T) {
	reply := `{"function_name": "f", "purpose": "p", "inputs": [{"name": "x"}, {"name": "y", "type": "float"}], "core_logic": [], "outputs": "not an object"}`

	req, err := ParseExtractionReply(reply)
	require.NoError(t, err)

	require.Len(t, req.Function.Inputs, 2)
	assert.Equal(t, "string", req.Function.Inputs[0].Type, "missing input type defaults to string")
	assert.Equal(t, "float", req.Function.Inputs[1].Type)
	assert.Nil(t, req.Function.Output, "non-object outputs is dropped")
}

func TestParseExtractionReply_KeepsObjectInputsAmongJunk(t *testing.T) {
	reply := `{"function_name": "f", "purpose": "p", "inputs": [{"name": "a", "type": "int"}, "b", null], "core_logic": [], "outputs": null}`

	req, err := ParseExtractionReply(reply)
	require.NoError(t, err)

	require.Len(t, req.Function.Inputs, 1, "only the malformed items are skipped")
	assert.Equal(t, "a", req.Function.Inputs[0].Name)
	assert.Equal(t, "int", req.Function.Inputs[0].Type)
}

func TestParseExtractionReply_EmptyCoreLogicScalars(t *testing.T) {
	for _, scalar := range []string{`0`, `false`, `""`} {
		reply := `{"function_name": "f", "purpose": "p", "inputs": [], "core_logic": ` + scalar + `, "outputs": null}`

		req, err := ParseExtractionReply(reply)
		require.NoError(t, err, "core_logic %s", scalar)
		assert.Empty(t, req.Function.CoreLogic, "core_logic %s holds no step", scalar)
	}
}

func TestParseExtractionReply_DetailsWrapper(t *testing.T) {
	reply := `{"goal_type": "function", "details": {"function_name": "add", "purpose": "adds", "inputs": [], "core_logic": [], "outputs": {"type": "int"}}}`

	req, err := ParseExtractionReply(reply)
	require.NoError(t, err)
	assert.Equal(t, "add", req.Function.Name)
}

func TestExtractor_Extract_PropagatesOracleError(t *testing.T) {
	oracle := &stubOracle{err: errors.New("boom")}
	e := NewExtractor(oracle)

	_, err := e.Extract(context.Background(), "some context", "")
	assert.Error(t, err)
	assert.Equal(t, 1, oracle.calls)
}
