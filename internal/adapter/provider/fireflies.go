package provider

import (
	"encoding/json"
	"time"

	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	"github.com/dealsignal/callintake/internal/domain/model"
)

// firefliesPayload is the shape of a Fireflies "Transcription completed"
// webhook.
type firefliesPayload struct {
	MeetingID      string   `json:"meetingId"`
	EventType      string   `json:"eventType"`
	Title          string   `json:"title"`
	DateMillis     int64    `json:"date"`
	OrganizerEmail string   `json:"organizerEmail"`
	Participants   []string `json:"participants"`
	Speakers       []struct {
		Name string `json:"name"`
	} `json:"speakers"`
}

type firefliesNormalizer struct{}

// NewFirefliesNormalizer creates the Fireflies webhook normalizer.
func NewFirefliesNormalizer() Normalizer {
	return &firefliesNormalizer{}
}

func (n *firefliesNormalizer) Provider() string {
	return ProviderFireflies
}

func (n *firefliesNormalizer) Normalize(payload json.RawMessage, owner *model.User) (*entity.CandidateCall, *string, error) {
	var body firefliesPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, nil, domainErrors.NewInvalidPayloadError(ProviderFireflies, err)
	}
	if body.MeetingID == "" {
		return nil, nil, domainErrors.NewInvalidPayloadError(ProviderFireflies, errNoMeetingID)
	}

	candidate := newCandidate(ProviderFireflies, owner)
	candidate.ExternalIDs[ProviderFireflies] = body.MeetingID
	candidate.Title = body.Title
	candidate.SalesRepEmail = body.OrganizerEmail
	candidate.ParticipantEmails = body.Participants

	if body.DateMillis > 0 {
		candidate.ScheduledStartTime = time.UnixMilli(body.DateMillis).UTC()
	}

	for _, speaker := range body.Speakers {
		candidate.ParticipantNames = append(candidate.ParticipantNames, speaker.Name)
	}

	eventID := ProviderFireflies + ":" + body.MeetingID
	return candidate, &eventID, nil
}
