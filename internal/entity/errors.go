package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNoCodeToAnalyze = errors.New("no code to analyze")
	ErrRefinementLimit = errors.New("refinement turn limit exceeded")

	// Extraction errors
	ErrNoJSONLocated     = errors.New("no JSON located")
	ErrIncompleteSchema  = errors.New("incomplete schema")
	ErrMalformedJSON     = errors.New("malformed JSON in reply")
	ErrEmptyOracleReply  = errors.New("empty reply from oracle")
	ErrOracleUnavailable = errors.New("oracle call failed")

	// Conversation errors
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")

	// Artifact errors
	ErrGenerationNotFound   = errors.New("code generation not found")
	ErrReviewNotFound       = errors.New("code review not found")
	ErrExecutionLogNotFound = errors.New("execution log not found")
	ErrRequestNotFound      = errors.New("request not found")
	ErrUserNotFound         = errors.New("user not found")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// IsNotFound reports whether err is one of the not-found domain errors.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrConversationNotFound),
		errors.Is(err, ErrMessageNotFound),
		errors.Is(err, ErrGenerationNotFound),
		errors.Is(err, ErrReviewNotFound),
		errors.Is(err, ErrExecutionLogNotFound),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrUserNotFound):
		return true
	default:
		return false
	}
}

// IsValidation reports whether err is caused by malformed caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) || errors.Is(err, ErrInvalidParameter)
}
