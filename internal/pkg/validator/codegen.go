package validator

import (
	"fmt"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

// ValidateGenerateCode validates a standalone generation request
func (v *Validator) ValidateGenerateCode(req *entity.GenerateCodeRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}
	if req.Prompt == "" {
		return fmt.Errorf("%w: prompt", entity.ErrMissingField)
	}
	if req.Language == "" {
		return fmt.Errorf("%w: language", entity.ErrMissingField)
	}

	return nil
}

// ValidateReviewCode validates a review request
func (v *Validator) ValidateReviewCode(req *entity.ReviewCodeRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}
	if req.Code == "" {
		return fmt.Errorf("%w: code", entity.ErrMissingField)
	}
	if req.Language == "" {
		return fmt.Errorf("%w: language", entity.ErrMissingField)
	}

	return nil
}

// ValidateClassifyIntent validates an intent classification request
func (v *Validator) ValidateClassifyIntent(req *entity.ClassifyIntentRequest) error {
	if req.Prompt == "" {
		return fmt.Errorf("%w: prompt", entity.ErrMissingField)
	}

	return nil
}

// ValidateCreateExecutionLog validates an execution log submission
func (v *Validator) ValidateCreateExecutionLog(req *entity.CreateExecutionLogRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}
	if req.Code == "" {
		return fmt.Errorf("%w: code", entity.ErrMissingField)
	}
	if req.Language == "" {
		return fmt.Errorf("%w: language", entity.ErrMissingField)
	}
	if req.Status != "" && !req.Status.IsValid() {
		return fmt.Errorf("%w: status %q", entity.ErrInvalidParameter, req.Status)
	}

	return nil
}

// ValidateCreateRequest validates a generic request record submission
func (v *Validator) ValidateCreateRequest(req *entity.CreateRequestRecord) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}
	if req.RequestType == "" {
		return fmt.Errorf("%w: request_type", entity.ErrMissingField)
	}

	return nil
}

// ValidateUpdateRequestStatus validates a request status transition
func (v *Validator) ValidateUpdateRequestStatus(req *entity.UpdateRequestStatus) error {
	if req.Status == "" {
		return fmt.Errorf("%w: status", entity.ErrMissingField)
	}
	if !req.Status.IsValid() {
		return fmt.Errorf("%w: status %q", entity.ErrInvalidParameter, req.Status)
	}

	return nil
}
