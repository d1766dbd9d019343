package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// requiredExtractionKeys must all be present at the top level of the parsed
// reply. A key holding null still counts as present.
var requiredExtractionKeys = []string{"function_name", "purpose", "inputs", "core_logic", "outputs"}

const extractionPromptTemplate = `You are a professional AI requirements engineer.

INPUT CONTEXT
%s

TARGET JSON STRUCTURE
{
  "function_name": "suggested function name",
  "purpose": "main purpose description",
  "inputs": [{"name": "name", "type": "type", "description": "description"}],
  "core_logic": ["Step 1", "Step 2"],
  "outputs": {"type": "type", "description": "description"}
}

RULES:
- Return ONLY the JSON, no explanation
- Extract the requirement from the input context above
- If information is missing: use null or []
- Ensure the JSON is valid`

// Extractor converts free-text user input into a structured requirement with
// a single provider call.
type Extractor struct {
	oracle Oracle
}

func NewExtractor(oracle Oracle) *Extractor {
	return &Extractor{oracle: oracle}
}

// Extract performs a one-shot extraction. There is no multi-turn refinement
// at this stage; an incomplete reply is a hard failure, never a partial result.
func (e *Extractor) Extract(ctx context.Context, rawText, model string) (*entity.Requirement, error) {
	prompt := fmt.Sprintf(extractionPromptTemplate, rawText)

	reply, err := e.oracle.Complete(ctx, prompt, model)
	if err != nil {
		return nil, fmt.Errorf("extraction call: %w", err)
	}

	req, err := ParseExtractionReply(reply)
	if err != nil {
		ctxzap.Warn(ctx, "extraction reply rejected",
			zap.Error(err),
			zap.Int("reply_length", len(reply)),
		)
		return nil, err
	}

	return req, nil
}

// ParseExtractionReply slices the JSON object out of a provider reply and
// converts it into a Requirement.
func ParseExtractionReply(reply string) (*entity.Requirement, error) {
	jsonStr, err := locateJSON(reply)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedJSON, err)
	}

	// Some models wrap the payload as {"goal_type": ..., "details": {...}}.
	// Descend into details when present so both shapes parse the same way.
	if details, ok := raw["details"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(details, &inner); err == nil {
			raw = inner
		}
	}

	for _, key := range requiredExtractionKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", entity.ErrIncompleteSchema, key)
		}
	}

	fn, err := buildFunctionSpec(raw)
	if err != nil {
		return nil, err
	}

	return &entity.Requirement{
		GoalKind: entity.GoalFunction,
		Function: fn,
	}, nil
}

// locateJSON slices the reply between the first '{' and the last '}',
// tolerating leading and trailing prose around the JSON object.
func locateJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")

	if start == -1 || end == -1 || end < start {
		return "", entity.ErrNoJSONLocated
	}

	return reply[start : end+1], nil
}

func buildFunctionSpec(raw map[string]json.RawMessage) (*entity.FunctionSpec, error) {
	fn := &entity.FunctionSpec{
		ErrorHandling: []entity.ErrorRule{},
	}

	fn.Name = decodeString(raw["function_name"])
	fn.Purpose = decodeString(raw["purpose"])
	fn.Inputs = decodeInputs(raw["inputs"])
	fn.CoreLogic = decodeCoreLogic(raw["core_logic"])
	fn.Output = decodeOutput(raw["outputs"])

	return fn, nil
}

func decodeString(msg json.RawMessage) string {
	var s string
	if msg == nil {
		return ""
	}
	if err := json.Unmarshal(msg, &s); err != nil {
		return ""
	}
	return s
}

// decodeInputs normalizes each input item: a missing type defaults to
// "string" and a missing description to empty. Non-object items are skipped.
func decodeInputs(msg json.RawMessage) []entity.ParamSpec {
	if msg == nil {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil
	}

	var inputs []entity.ParamSpec
	for _, rawItem := range items {
		var item map[string]any
		if err := json.Unmarshal(rawItem, &item); err != nil || item == nil {
			continue
		}
		param := entity.ParamSpec{Type: "string"}
		if name, ok := item["name"].(string); ok {
			param.Name = name
		}
		if typ, ok := item["type"].(string); ok && typ != "" {
			param.Type = typ
		}
		if desc, ok := item["description"].(string); ok {
			param.Description = desc
		}
		inputs = append(inputs, param)
	}

	return inputs
}

// decodeCoreLogic coerces a scalar reply into a single-step list. Empty and
// zero-valued scalars carry no step and map to an empty list.
func decodeCoreLogic(msg json.RawMessage) []string {
	if msg == nil {
		return nil
	}

	var steps []string
	if err := json.Unmarshal(msg, &steps); err == nil {
		return steps
	}

	var scalar any
	if err := json.Unmarshal(msg, &scalar); err != nil {
		return nil
	}

	switch v := scalar.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
	case bool:
		if !v {
			return nil
		}
	case float64:
		if v == 0 {
			return nil
		}
	}

	return []string{fmt.Sprintf("%v", scalar)}
}

// decodeOutput drops outputs that are not a JSON object.
func decodeOutput(msg json.RawMessage) *entity.OutputSpec {
	if msg == nil {
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(msg, &obj); err != nil || obj == nil {
		return nil
	}

	out := &entity.OutputSpec{Type: "void"}
	if typ, ok := obj["type"].(string); ok && typ != "" {
		out.Type = typ
	}
	if desc, ok := obj["description"].(string); ok {
		out.Description = desc
	}

	return out
}
