package entity

// MatchType identifies which strategy recognized an existing record.
type MatchType string

const (
	// MatchTypeExternalID means the provider-assigned meeting id matched.
	MatchTypeExternalID MatchType = "external_id"

	// MatchTypeComposite means scheduled time plus title or participant
	// overlap matched, for deliveries without a usable external id.
	MatchTypeComposite MatchType = "composite"

	// MatchTypeNone means no strategy found an existing record.
	MatchTypeNone MatchType = "none"
)

// DuplicateCheckResult is the outcome of the duplicate matcher cascade.
type DuplicateCheckResult struct {
	IsDuplicate    bool      `json:"is_duplicate"`
	MatchType      MatchType `json:"match_type"`
	ExistingCallID string    `json:"existing_call_id,omitempty"`
	Message        string    `json:"message"`
}
