package entity

import "github.com/dealsignal/callintake/internal/domain/model"

// ResolutionMethod records how a sales rep was resolved, for audit logs.
type ResolutionMethod string

const (
	// ResolvedByExactEmail means an active user in the organization matched
	// the webhook's host email.
	ResolvedByExactEmail ResolutionMethod = "exact_email_match"

	// ResolvedByDomainFallback is reserved for matching on the email domain.
	// Not produced by the current resolver.
	ResolvedByDomainFallback ResolutionMethod = "domain_fallback"

	// ResolvedByWebhookOwner means the call was credited to the user who
	// owns the integration the webhook arrived through.
	ResolvedByWebhookOwner ResolutionMethod = "webhook_owner_fallback"
)

// ResolutionResult is the outcome of sales rep resolution.
type ResolutionResult struct {
	User       *model.User      `json:"user"`
	ResolvedBy ResolutionMethod `json:"resolved_by"`
}
