package agent

import "github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"

// fieldQuestions maps each requirement slot to its fixed follow-up question.
var fieldQuestions = map[entity.FieldTag]string{
	entity.FieldFunctionName:    "What would you like to name the function?",
	entity.FieldPurpose:         "What is this function supposed to do?",
	entity.FieldInputs:          "What input parameters does the function need?",
	entity.FieldCoreLogic:       "How should the main logic of the function work?",
	entity.FieldOutputs:         "What should the function return?",
	entity.FieldGroupName:       "What would you like to name this group of functions?",
	entity.FieldSharedContext:   "What shared context do these functions operate on?",
	entity.FieldFunctions:       "Which functions should this group contain?",
	entity.FieldFunctionDetails: "Can you describe what each function in the group should do?",
	entity.FieldPageName:        "What is the name of the page you want to build?",
	entity.FieldComponents:      "Which components should the page contain?",
	entity.FieldLayout:          "How should the components be arranged on the page?",
	entity.FieldStyle:           "What colors and fonts should the page use?",
}

const fallbackQuestion = "Could you share more details about what you need?"

// NextQuestion returns the question for the highest-priority missing field.
// The fallback only fires when the requirement is incomplete but no field is
// reported missing, which means the two predicates have drifted apart.
func NextQuestion(req *entity.Requirement) (entity.FieldTag, string) {
	missing := req.MissingFields()
	if len(missing) == 0 {
		return "", fallbackQuestion
	}

	field := missing[0]
	if q, ok := fieldQuestions[field]; ok {
		return field, q
	}
	return field, fallbackQuestion
}
