package validator

import (
	"fmt"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

// Validator validates inbound request payloads
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateSession validates CreateSessionRequest
func (v *Validator) ValidateCreateSession(req *entity.CreateSessionRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}

	return nil
}

// ValidateProcessContext validates the context submission of a session
func (v *Validator) ValidateProcessContext(req *entity.ProcessContextRequest) error {
	if req.ContextText == "" {
		return fmt.Errorf("%w: context_text", entity.ErrMissingField)
	}

	return nil
}

// ValidateProcessPrompt validates a follow-up prompt submission
func (v *Validator) ValidateProcessPrompt(req *entity.ProcessPromptRequest) error {
	if req.Prompt == "" {
		return fmt.Errorf("%w: prompt", entity.ErrMissingField)
	}

	return nil
}

// ValidateSessionMessage validates a free-form message sent into a session
func (v *Validator) ValidateSessionMessage(req *entity.SessionMessageRequest) error {
	if req.Text == "" {
		return fmt.Errorf("%w: text", entity.ErrMissingField)
	}

	return nil
}
