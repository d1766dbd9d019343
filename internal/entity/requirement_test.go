package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirement_IsComplete_Function(t *testing.T) {
	req := &Requirement{GoalKind: GoalFunction}
	assert.False(t, req.IsComplete(), "nil function payload is never complete")

	req.Function = &FunctionSpec{Purpose: "adds two numbers"}
	assert.False(t, req.IsComplete(), "purpose alone is not enough")

	req.Function.Inputs = []ParamSpec{{Name: "a", Type: "int"}}
	assert.True(t, req.IsComplete(), "purpose plus inputs is complete")

	req.Function.Inputs = nil
	req.Function.CoreLogic = []string{"return a + b"}
	assert.True(t, req.IsComplete(), "purpose plus core logic is complete")
}

func TestRequirement_IsComplete_FunctionGroup(t *testing.T) {
	req := &Requirement{GoalKind: GoalFunctionGroup}
	assert.False(t, req.IsComplete())

	req.Group = &FunctionGroupSpec{Name: "auth"}
	assert.False(t, req.IsComplete(), "a group without functions is incomplete")

	req.Group.Functions = []FunctionSpec{{Name: "login"}}
	assert.False(t, req.IsComplete(), "every function lacks a purpose")

	req.Group.Functions[0].Purpose = "authenticate a user"
	assert.True(t, req.IsComplete())
}

func TestRequirement_IsComplete_Layout(t *testing.T) {
	req := &Requirement{GoalKind: GoalLayout}
	assert.False(t, req.IsComplete())

	req.Layout = &LayoutSpec{PageName: "login page"}
	assert.False(t, req.IsComplete())

	req.Layout.Components = []ComponentSpec{{Type: "button", Text: "Sign in"}}
	assert.True(t, req.IsComplete())
}

func TestRequirement_MissingFields_Order(t *testing.T) {
	req := &Requirement{GoalKind: GoalFunction, Function: &FunctionSpec{}}
	assert.Equal(t,
		[]FieldTag{FieldFunctionName, FieldPurpose, FieldInputs, FieldCoreLogic, FieldOutputs},
		req.MissingFields(),
	)

	req.Function.Name = "add"
	req.Function.Purpose = "adds two numbers"
	assert.Equal(t, []FieldTag{FieldInputs, FieldCoreLogic, FieldOutputs}, req.MissingFields())

	req.Function.Inputs = []ParamSpec{{Name: "a"}}
	req.Function.CoreLogic = []string{"return a + b"}
	req.Function.Output = &OutputSpec{Type: "int"}
	assert.Empty(t, req.MissingFields())
}

func TestRequirement_MissingFields_GroupDetails(t *testing.T) {
	req := &Requirement{
		GoalKind: GoalFunctionGroup,
		Group: &FunctionGroupSpec{
			Name:          "math",
			SharedContext: "arithmetic helpers",
			Functions: []FunctionSpec{
				{Name: "add", Purpose: "adds"},
				{Name: "sub"},
			},
		},
	}
	assert.Equal(t, []FieldTag{FieldFunctionDetails}, req.MissingFields(),
		"a single purpose-less function surfaces as missing details")
}

func TestWorkflowStatusValidators(t *testing.T) {
	assert.True(t, ExecutionStatus("pending").IsValid())
	assert.False(t, ExecutionStatus("done").IsValid())

	assert.True(t, RequestStatus("completed").IsValid())
	assert.False(t, RequestStatus("finished").IsValid())
}
