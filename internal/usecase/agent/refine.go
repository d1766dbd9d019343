package agent

import (
	"strings"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

// ApplyAnswer merges a user's reply into the slot that was asked about,
// mutating the requirement in place.
func ApplyAnswer(req *entity.Requirement, field entity.FieldTag, answer string) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return
	}

	switch req.GoalKind {
	case entity.GoalFunction:
		if req.Function == nil {
			req.Function = &entity.FunctionSpec{}
		}
		applyFunctionAnswer(req.Function, field, answer)
	case entity.GoalFunctionGroup:
		if req.Group == nil {
			req.Group = &entity.FunctionGroupSpec{}
		}
		applyGroupAnswer(req.Group, field, answer)
	case entity.GoalLayout:
		if req.Layout == nil {
			req.Layout = &entity.LayoutSpec{}
		}
		applyLayoutAnswer(req.Layout, field, answer)
	}
}

func applyFunctionAnswer(fn *entity.FunctionSpec, field entity.FieldTag, answer string) {
	switch field {
	case entity.FieldFunctionName:
		fn.Name = answer
	case entity.FieldPurpose:
		fn.Purpose = answer
	case entity.FieldInputs:
		for _, name := range splitListAnswer(answer) {
			fn.Inputs = append(fn.Inputs, entity.ParamSpec{
				Name: name,
				Type: "string",
			})
		}
	case entity.FieldCoreLogic:
		fn.CoreLogic = append(fn.CoreLogic, splitStepAnswer(answer)...)
	case entity.FieldOutputs:
		fn.Output = &entity.OutputSpec{
			Type:        "string",
			Description: answer,
		}
	}
}

func applyGroupAnswer(group *entity.FunctionGroupSpec, field entity.FieldTag, answer string) {
	switch field {
	case entity.FieldGroupName:
		group.Name = answer
	case entity.FieldSharedContext:
		group.SharedContext = answer
	case entity.FieldFunctions:
		for _, name := range splitListAnswer(answer) {
			group.Functions = append(group.Functions, entity.FunctionSpec{Name: name})
		}
	case entity.FieldFunctionDetails:
		// The answer describes the first function still lacking a purpose.
		for i := range group.Functions {
			if group.Functions[i].Purpose == "" {
				group.Functions[i].Purpose = answer
				return
			}
		}
	}
}

func applyLayoutAnswer(layout *entity.LayoutSpec, field entity.FieldTag, answer string) {
	switch field {
	case entity.FieldPageName:
		layout.PageName = answer
	case entity.FieldComponents:
		for _, name := range splitListAnswer(answer) {
			layout.Components = append(layout.Components, entity.ComponentSpec{Type: name})
		}
	case entity.FieldLayout:
		layout.Layout = &entity.LayoutStructure{Structure: answer}
	case entity.FieldStyle:
		layout.Style = &entity.StyleSpec{Other: []string{answer}}
	}
}

// splitListAnswer splits a comma- or newline-separated enumeration.
func splitListAnswer(answer string) []string {
	sep := ","
	if strings.Contains(answer, "\n") {
		sep = "\n"
	}

	var items []string
	for _, part := range strings.Split(answer, sep) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// splitStepAnswer splits a multi-line answer into ordered steps, keeping a
// single-line answer as one step.
func splitStepAnswer(answer string) []string {
	if !strings.Contains(answer, "\n") {
		return []string{answer}
	}

	var steps []string
	for _, line := range strings.Split(answer, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}
