package provider

import (
	"encoding/json"
	"time"

	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	"github.com/dealsignal/callintake/internal/domain/model"
)

// fathomPayload is the shape of a Fathom recording webhook.
type fathomPayload struct {
	CallID             string `json:"call_id"`
	Title              string `json:"title"`
	ScheduledStartTime string `json:"scheduled_start_time"`
	Host               struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"host"`
	Invitees []struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"invitees"`
}

type fathomNormalizer struct{}

// NewFathomNormalizer creates the Fathom webhook normalizer.
func NewFathomNormalizer() Normalizer {
	return &fathomNormalizer{}
}

func (n *fathomNormalizer) Provider() string {
	return ProviderFathom
}

func (n *fathomNormalizer) Normalize(payload json.RawMessage, owner *model.User) (*entity.CandidateCall, *string, error) {
	var body fathomPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, nil, domainErrors.NewInvalidPayloadError(ProviderFathom, err)
	}

	candidate := newCandidate(ProviderFathom, owner)
	candidate.Title = body.Title
	candidate.SalesRepEmail = body.Host.Email
	candidate.SalesRepName = body.Host.Name

	// Fathom assigns call ids only after processing finishes; early webhooks
	// may arrive without one and rely on the composite matcher.
	if body.CallID != "" {
		candidate.ExternalIDs[ProviderFathom] = body.CallID
	}

	if body.ScheduledStartTime != "" {
		if start, err := time.Parse(time.RFC3339, body.ScheduledStartTime); err == nil {
			candidate.ScheduledStartTime = start.UTC()
		}
	}

	for _, invitee := range body.Invitees {
		if invitee.Email != "" {
			candidate.ParticipantEmails = append(candidate.ParticipantEmails, invitee.Email)
		}
		if invitee.Name != "" {
			candidate.ParticipantNames = append(candidate.ParticipantNames, invitee.Name)
		}
	}

	var eventID *string
	if body.CallID != "" {
		id := ProviderFathom + ":" + body.CallID
		eventID = &id
	}
	return candidate, eventID, nil
}
