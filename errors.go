package gate

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeCredentialRejected marks the distinguished authorization
	// rejection from a protected call.
	TextCodeCredentialRejected = "CREDENTIAL_REJECTED"
	// TextCodeValidationFailed marks a structured per-field rejection.
	TextCodeValidationFailed = "VALIDATION_FAILED"
	// TextCodeRequestFailed marks network errors and unstructured bodies.
	TextCodeRequestFailed = "REQUEST_FAILED"
	// TextCodeMissingCredential marks a protected call issued while the
	// store is empty.
	TextCodeMissingCredential = "MISSING_CREDENTIAL"
	// TextCodeInvalidFlowStep marks a rejected auth-flow transition.
	TextCodeInvalidFlowStep = "INVALID_FLOW_STEP"
)

// ErrCredentialRejected is returned when a protected call answers with the
// platform's not-authorized status. The request client clears the store
// before surfacing it; callers never retry, they navigate.
var ErrCredentialRejected = goerrors.New("credential rejected by the platform", goerrors.CategoryAuth).
	WithTextCode(TextCodeCredentialRejected).
	WithCode(goerrors.CodeUnauthorized)

// ErrValidationFailed is the base error for structured field errors on 4xx
// responses. The offending fields travel in the metadata under "fields".
var ErrValidationFailed = goerrors.New("the submitted fields did not validate", goerrors.CategoryValidation).
	WithTextCode(TextCodeValidationFailed).
	WithCode(goerrors.CodeBadRequest)

// ErrRequestFailed is the base error for network failures and unstructured
// error bodies, surfaced as a single form-level message.
var ErrRequestFailed = goerrors.New("the request could not be completed", goerrors.CategoryOperation).
	WithTextCode(TextCodeRequestFailed)

// ErrInvalidFlowStep is returned when an auth flow is asked to advance to a
// step its transition table does not allow.
var ErrInvalidFlowStep = goerrors.New("invalid auth flow transition", goerrors.CategoryValidation).
	WithTextCode(TextCodeInvalidFlowStep).
	WithCode(goerrors.CodeBadRequest)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// IsAuthorizationRejection reports whether err is the distinguished
// not-authorized rejection that cleared the credential store.
func IsAuthorizationRejection(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeCredentialRejected
}

// FieldErrorsFrom extracts per-field messages from a validation error.
// The second return is false for anything that is not a structured
// validation failure.
func FieldErrorsFrom(err error) (FieldErrors, bool) {
	if err == nil {
		return nil, false
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return nil, false
	}
	if richErr.TextCode != TextCodeValidationFailed {
		return nil, false
	}

	raw, ok := richErr.Metadata["fields"]
	if !ok {
		return nil, false
	}

	switch fields := raw.(type) {
	case FieldErrors:
		return fields, true
	case map[string]string:
		return fields, true
	case map[string]any:
		out := FieldErrors{}
		for k, v := range fields {
			if msg, ok := v.(string); ok {
				out[k] = msg
			}
		}
		return out, true
	}

	return nil, false
}

// validationError builds a structured field rejection.
func validationError(fields FieldErrors) error {
	clone := ErrValidationFailed.Clone()
	if clone == nil {
		return ErrValidationFailed
	}
	return clone.WithMetadata(map[string]any{"fields": fields})
}

// requestError builds a form-level failure carrying the server message when
// one was present.
func requestError(message string, status int) error {
	clone := ErrRequestFailed.Clone()
	if clone == nil {
		return ErrRequestFailed
	}
	if message != "" {
		clone.Message = message
	}
	return clone.WithMetadata(map[string]any{"status": status})
}
