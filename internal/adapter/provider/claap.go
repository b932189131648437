package provider

import (
	"encoding/json"
	"time"

	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	"github.com/dealsignal/callintake/internal/domain/model"
)

// claapPayload is the shape of a Claap recording webhook.
type claapPayload struct {
	RecordingID string `json:"recording_id"`
	Name        string `json:"name"`
	StartedAt   string `json:"started_at"`
	Owner       struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"owner"`
	Attendees []struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"attendees"`
}

type claapNormalizer struct{}

// NewClaapNormalizer creates the Claap webhook normalizer.
func NewClaapNormalizer() Normalizer {
	return &claapNormalizer{}
}

func (n *claapNormalizer) Provider() string {
	return ProviderClaap
}

func (n *claapNormalizer) Normalize(payload json.RawMessage, owner *model.User) (*entity.CandidateCall, *string, error) {
	var body claapPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, nil, domainErrors.NewInvalidPayloadError(ProviderClaap, err)
	}
	if body.RecordingID == "" {
		return nil, nil, domainErrors.NewInvalidPayloadError(ProviderClaap, errNoMeetingID)
	}

	candidate := newCandidate(ProviderClaap, owner)
	candidate.ExternalIDs[ProviderClaap] = body.RecordingID
	candidate.Title = body.Name
	candidate.SalesRepEmail = body.Owner.Email
	candidate.SalesRepName = body.Owner.Name

	if body.StartedAt != "" {
		if start, err := time.Parse(time.RFC3339, body.StartedAt); err == nil {
			candidate.ScheduledStartTime = start.UTC()
		}
	}

	for _, attendee := range body.Attendees {
		if attendee.Email != "" {
			candidate.ParticipantEmails = append(candidate.ParticipantEmails, attendee.Email)
		}
		if attendee.Name != "" {
			candidate.ParticipantNames = append(candidate.ParticipantNames, attendee.Name)
		}
	}

	eventID := ProviderClaap + ":" + body.RecordingID
	return candidate, &eventID, nil
}
