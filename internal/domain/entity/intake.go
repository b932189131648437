package entity

// IntakeAction is the terminal outcome of one webhook delivery.
type IntakeAction string

const (
	IntakeActionCreated IntakeAction = "created"
	IntakeActionSkipped IntakeAction = "skipped"
)

// IntakeResult is returned to webhook handlers. Both outcomes are successes;
// a duplicate is an expected, non-error result.
type IntakeResult struct {
	Action IntakeAction `json:"action"`
	CallID string       `json:"call_id"`
	Detail string       `json:"detail"`

	// ResolvedBy and MatchType surface orchestration decisions for
	// operator-facing logs and responses.
	ResolvedBy ResolutionMethod `json:"resolved_by"`
	MatchType  MatchType        `json:"match_type,omitempty"`
}

// CallCreatedEvent is published on the event bus after a new record is
// persisted. The scoring pipeline consumes it asynchronously.
type CallCreatedEvent struct {
	CallRecordID string `json:"call_record_id"`
	Source       string `json:"source"`
}
