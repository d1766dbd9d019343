package entity

// GoalKind discriminates the Requirement union. Exactly one payload field of
// Requirement is populated for a given kind; payloads of other kinds are
// meaningless and must not be read.
type GoalKind string

const (
	GoalFunction      GoalKind = "function"
	GoalFunctionGroup GoalKind = "function_group"
	GoalLayout        GoalKind = "layout"
)

// FieldTag names a requirement slot the slot-filling protocol can ask about.
type FieldTag string

const (
	FieldFunctionName    FieldTag = "function_name"
	FieldPurpose         FieldTag = "purpose"
	FieldInputs          FieldTag = "inputs"
	FieldCoreLogic       FieldTag = "core_logic"
	FieldOutputs         FieldTag = "outputs"
	FieldGroupName       FieldTag = "group_name"
	FieldSharedContext   FieldTag = "shared_context"
	FieldFunctions       FieldTag = "functions"
	FieldFunctionDetails FieldTag = "function_details"
	FieldPageName        FieldTag = "page_name"
	FieldComponents      FieldTag = "components"
	FieldLayout          FieldTag = "layout"
	FieldStyle           FieldTag = "style"
)

type ParamSpec struct {
	Name        string `json:"name" bson:"name"`
	Type        string `json:"type" bson:"type"`
	Description string `json:"description" bson:"description"`
}

type OutputSpec struct {
	Type        string `json:"type" bson:"type"`
	Description string `json:"description" bson:"description"`
}

type ErrorRule struct {
	Condition string `json:"condition" bson:"condition"`
	Action    string `json:"action" bson:"action"`
}

type FunctionSpec struct {
	Name          string      `json:"function_name" bson:"function_name"`
	Purpose       string      `json:"purpose" bson:"purpose"`
	Inputs        []ParamSpec `json:"inputs" bson:"inputs"`
	CoreLogic     []string    `json:"core_logic" bson:"core_logic"`
	Output        *OutputSpec `json:"outputs,omitempty" bson:"outputs,omitempty"`
	ErrorHandling []ErrorRule `json:"error_handling" bson:"error_handling"`
}

type FunctionGroupSpec struct {
	Name          string         `json:"group_name" bson:"group_name"`
	Description   string         `json:"description" bson:"description"`
	SharedContext string         `json:"shared_context" bson:"shared_context"`
	Functions     []FunctionSpec `json:"functions" bson:"functions"`
}

type ComponentSpec struct {
	Type        string `json:"type" bson:"type"`
	Text        string `json:"text,omitempty" bson:"text,omitempty"`
	Placeholder string `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Identifier  string `json:"identifier,omitempty" bson:"identifier,omitempty"`
}

type LayoutStructure struct {
	Alignment string `json:"alignment,omitempty" bson:"alignment,omitempty"`
	Structure string `json:"structure,omitempty" bson:"structure,omitempty"`
}

type StyleSpec struct {
	Colors string   `json:"colors,omitempty" bson:"colors,omitempty"`
	Font   string   `json:"font,omitempty" bson:"font,omitempty"`
	Other  []string `json:"other,omitempty" bson:"other,omitempty"`
}

// Requirement is the structured extraction of a user's natural-language
// request. It is created by the extractor, mutated in place by the
// slot-filling protocol and read-only for the code generator.
type Requirement struct {
	GoalKind GoalKind           `json:"goal_kind" bson:"goal_kind"`
	Function *FunctionSpec      `json:"function,omitempty" bson:"function,omitempty"`
	Group    *FunctionGroupSpec `json:"group,omitempty" bson:"group,omitempty"`
	Layout   *LayoutSpec        `json:"layout,omitempty" bson:"layout,omitempty"`
}

type LayoutSpec struct {
	PageName   string           `json:"page_name" bson:"page_name"`
	Components []ComponentSpec  `json:"components" bson:"components"`
	Layout     *LayoutStructure `json:"layout,omitempty" bson:"layout,omitempty"`
	Style      *StyleSpec       `json:"style,omitempty" bson:"style,omitempty"`
}

// IsComplete reports whether the requirement carries enough information to
// proceed to code generation. It is a pure function of the variant's own
// fields.
func (r *Requirement) IsComplete() bool {
	switch r.GoalKind {
	case GoalFunction:
		if r.Function == nil {
			return false
		}
		return r.Function.Purpose != "" && (len(r.Function.Inputs) > 0 || len(r.Function.CoreLogic) > 0)
	case GoalFunctionGroup:
		if r.Group == nil || r.Group.Name == "" || len(r.Group.Functions) == 0 {
			return false
		}
		for _, fn := range r.Group.Functions {
			if fn.Purpose != "" {
				return true
			}
		}
		return false
	case GoalLayout:
		if r.Layout == nil {
			return false
		}
		return r.Layout.PageName != "" && len(r.Layout.Components) > 0
	default:
		return false
	}
}

// MissingFields enumerates empty slots in fixed priority order. The order
// drives which follow-up question is asked first.
func (r *Requirement) MissingFields() []FieldTag {
	var missing []FieldTag

	switch r.GoalKind {
	case GoalFunction:
		if r.Function == nil {
			return []FieldTag{FieldFunctionName, FieldPurpose, FieldInputs, FieldCoreLogic, FieldOutputs}
		}
		if r.Function.Name == "" {
			missing = append(missing, FieldFunctionName)
		}
		if r.Function.Purpose == "" {
			missing = append(missing, FieldPurpose)
		}
		if len(r.Function.Inputs) == 0 {
			missing = append(missing, FieldInputs)
		}
		if len(r.Function.CoreLogic) == 0 {
			missing = append(missing, FieldCoreLogic)
		}
		if r.Function.Output == nil {
			missing = append(missing, FieldOutputs)
		}
	case GoalFunctionGroup:
		if r.Group == nil {
			return []FieldTag{FieldGroupName, FieldSharedContext, FieldFunctions}
		}
		if r.Group.Name == "" {
			missing = append(missing, FieldGroupName)
		}
		if r.Group.SharedContext == "" {
			missing = append(missing, FieldSharedContext)
		}
		if len(r.Group.Functions) == 0 {
			missing = append(missing, FieldFunctions)
		} else {
			for _, fn := range r.Group.Functions {
				if fn.Purpose == "" {
					missing = append(missing, FieldFunctionDetails)
					break
				}
			}
		}
	case GoalLayout:
		if r.Layout == nil {
			return []FieldTag{FieldPageName, FieldComponents, FieldLayout, FieldStyle}
		}
		if r.Layout.PageName == "" {
			missing = append(missing, FieldPageName)
		}
		if len(r.Layout.Components) == 0 {
			missing = append(missing, FieldComponents)
		}
		if r.Layout.Layout == nil {
			missing = append(missing, FieldLayout)
		}
		if r.Layout.Style == nil {
			missing = append(missing, FieldStyle)
		}
	}

	return missing
}
