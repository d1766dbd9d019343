package validator

import (
	"fmt"
	"strings"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

// ValidateCreateUser validates CreateUserRequest
func (v *Validator) ValidateCreateUser(req *entity.CreateUserRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name", entity.ErrMissingField)
	}
	if req.Email == "" {
		return fmt.Errorf("%w: email", entity.ErrMissingField)
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: email %q", entity.ErrInvalidParameter, req.Email)
	}

	return nil
}
