package agent

import (
	"testing"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestNextQuestion_FollowsMissingFieldOrder(t *testing.T) {
	req := &entity.Requirement{GoalKind: entity.GoalFunction, Function: &entity.FunctionSpec{}}

	field, question := NextQuestion(req)
	assert.Equal(t, entity.FieldFunctionName, field)
	assert.Equal(t, "What would you like to name the function?", question)

	req.Function.Name = "add"
	field, question = NextQuestion(req)
	assert.Equal(t, entity.FieldPurpose, field)
	assert.Equal(t, "What is this function supposed to do?", question)
}

func TestNextQuestion_EveryFieldHasAQuestion(t *testing.T) {
	fields := []entity.FieldTag{
		entity.FieldFunctionName, entity.FieldPurpose, entity.FieldInputs,
		entity.FieldCoreLogic, entity.FieldOutputs,
		entity.FieldGroupName, entity.FieldSharedContext, entity.FieldFunctions,
		entity.FieldFunctionDetails,
		entity.FieldPageName, entity.FieldComponents, entity.FieldLayout, entity.FieldStyle,
	}

	for _, f := range fields {
		q, ok := fieldQuestions[f]
		assert.True(t, ok, "field %s has no question", f)
		assert.NotEmpty(t, q)
	}
}

func TestNextQuestion_FallbackWhenNothingMissing(t *testing.T) {
	req := &entity.Requirement{
		GoalKind: entity.GoalFunction,
		Function: &entity.FunctionSpec{
			Name:      "add",
			Purpose:   "adds two numbers",
			Inputs:    []entity.ParamSpec{{Name: "a"}},
			CoreLogic: []string{"return a + b"},
			Output:    &entity.OutputSpec{Type: "int"},
		},
	}

	field, question := NextQuestion(req)
	assert.Empty(t, field)
	assert.Equal(t, fallbackQuestion, question)
}
