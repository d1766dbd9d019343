package validator

import (
	"fmt"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

// ValidateCreateConversation validates CreateConversationRequest
func (v *Validator) ValidateCreateConversation(req *entity.CreateConversationRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title", entity.ErrMissingField)
	}

	return nil
}

// ValidateUpdateConversation requires at least one updatable field
func (v *Validator) ValidateUpdateConversation(req *entity.UpdateConversationRequest) error {
	if req.Title == "" && req.Goal == "" && len(req.Facts) == 0 {
		return fmt.Errorf("%w: at least one of title, goal or facts must be set", entity.ErrMissingField)
	}

	return nil
}

// ValidateSendMessage validates SendMessageRequest
func (v *Validator) ValidateSendMessage(req *entity.SendMessageRequest) error {
	if req.Text == "" {
		return fmt.Errorf("%w: text", entity.ErrMissingField)
	}
	if err := req.Sender.Validate(); err != nil {
		return err
	}

	return nil
}
