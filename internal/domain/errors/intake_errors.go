package errors

import (
	"fmt"
)

// IntakeError represents errors raised while processing a webhook delivery
type IntakeError struct {
	Type           string
	Message        string
	OrganizationID string
	Provider       string
	Cause          error
}

func (e *IntakeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (org: %s, provider: %s) - %v",
			e.Type, e.Message, e.OrganizationID, e.Provider, e.Cause)
	}
	return fmt.Sprintf("%s: %s (org: %s, provider: %s)",
		e.Type, e.Message, e.OrganizationID, e.Provider)
}

func (e *IntakeError) Unwrap() error {
	return e.Cause
}

// Intake error types
const (
	ErrTypeUnknownProvider  = "UNKNOWN_PROVIDER"
	ErrTypeInvalidPayload   = "INVALID_PAYLOAD"
	ErrTypeOwnerNotFound    = "OWNER_NOT_FOUND"
	ErrTypeFallbackLoad     = "FALLBACK_USER_LOAD_FAILED"
	ErrTypeStorageFailure   = "STORAGE_FAILURE"
	ErrTypeMissingCandidate = "MISSING_CANDIDATE_FIELDS"
)

// NewUnknownProviderError reports an unregistered provider path segment.
func NewUnknownProviderError(provider string) *IntakeError {
	return &IntakeError{
		Type:     ErrTypeUnknownProvider,
		Message:  "no webhook normalizer registered for provider",
		Provider: provider,
	}
}

// NewInvalidPayloadError reports a payload the provider normalizer could not parse.
func NewInvalidPayloadError(provider string, cause error) *IntakeError {
	return &IntakeError{
		Type:     ErrTypeInvalidPayload,
		Message:  "webhook payload could not be normalized",
		Provider: provider,
		Cause:    cause,
	}
}

// NewOwnerNotFoundError reports an unknown integration owner in the webhook path.
func NewOwnerNotFoundError(provider, userID string) *IntakeError {
	return &IntakeError{
		Type:     ErrTypeOwnerNotFound,
		Message:  fmt.Sprintf("integration owner %q not found", userID),
		Provider: provider,
	}
}

// NewFallbackLoadError reports that the integration owner could not be loaded
// during resolution. This is the one hard failure of the identity resolver.
func NewFallbackLoadError(orgID, userID string, cause error) *IntakeError {
	return &IntakeError{
		Type:           ErrTypeFallbackLoad,
		Message:        fmt.Sprintf("failed to load fallback user %q", userID),
		OrganizationID: orgID,
		Cause:          cause,
	}
}

// NewStorageError wraps an unexpected storage failure. Surfaced as 5xx so the
// sending platform retries the delivery.
func NewStorageError(orgID string, cause error) *IntakeError {
	return &IntakeError{
		Type:           ErrTypeStorageFailure,
		Message:        "storage operation failed",
		OrganizationID: orgID,
		Cause:          cause,
	}
}

// NewMissingCandidateError reports a candidate lacking required context.
func NewMissingCandidateError(message string) *IntakeError {
	return &IntakeError{
		Type:    ErrTypeMissingCandidate,
		Message: message,
	}
}
