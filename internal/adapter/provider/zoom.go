package provider

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	"github.com/dealsignal/callintake/internal/domain/model"
)

// zoomPayload is the shape of a Zoom "recording.completed" webhook.
type zoomPayload struct {
	Event   string `json:"event"`
	EventTS int64  `json:"event_ts"`
	Payload struct {
		Object struct {
			ID        int64  `json:"id"`
			UUID      string `json:"uuid"`
			Topic     string `json:"topic"`
			StartTime string `json:"start_time"`
			HostEmail string `json:"host_email"`
			HostName  string `json:"host_name"`
			Participants []struct {
				UserName string `json:"user_name"`
				Email    string `json:"email"`
			} `json:"participants"`
		} `json:"object"`
	} `json:"payload"`
}

type zoomNormalizer struct{}

// NewZoomNormalizer creates the Zoom webhook normalizer.
func NewZoomNormalizer() Normalizer {
	return &zoomNormalizer{}
}

func (n *zoomNormalizer) Provider() string {
	return ProviderZoom
}

func (n *zoomNormalizer) Normalize(payload json.RawMessage, owner *model.User) (*entity.CandidateCall, *string, error) {
	var body zoomPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, nil, domainErrors.NewInvalidPayloadError(ProviderZoom, err)
	}

	object := body.Payload.Object

	// Zoom reuses the numeric meeting id across recurrences; the UUID is
	// unique per occurrence, so it wins when present.
	meetingID := object.UUID
	if meetingID == "" && object.ID != 0 {
		meetingID = strconv.FormatInt(object.ID, 10)
	}
	if meetingID == "" {
		return nil, nil, domainErrors.NewInvalidPayloadError(ProviderZoom, errNoMeetingID)
	}

	candidate := newCandidate(ProviderZoom, owner)
	candidate.ExternalIDs[ProviderZoom] = meetingID
	candidate.Title = object.Topic
	candidate.SalesRepEmail = object.HostEmail
	candidate.SalesRepName = object.HostName

	if object.StartTime != "" {
		if start, err := time.Parse(time.RFC3339, object.StartTime); err == nil {
			candidate.ScheduledStartTime = start.UTC()
		}
	}

	for _, p := range object.Participants {
		if p.Email != "" {
			candidate.ParticipantEmails = append(candidate.ParticipantEmails, p.Email)
		}
		if p.UserName != "" {
			candidate.ParticipantNames = append(candidate.ParticipantNames, p.UserName)
		}
	}

	eventID := ProviderZoom + ":" + meetingID
	return candidate, &eventID, nil
}
