package provider

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	"github.com/dealsignal/callintake/internal/domain/model"
)

func testOwner() *model.User {
	return &model.User{
		ID:             uuid.New(),
		OrganizationID: "org-1",
		Email:          "owner@co.com",
		Name:           "Oscar Owner",
		Status:         model.UserStatusActive,
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()

	for _, name := range []string{ProviderFireflies, ProviderZoom, ProviderFathom, ProviderClaap} {
		n, err := registry.Get(name)
		assert.NoError(t, err)
		assert.Equal(t, name, n.Provider())
	}

	_, err := registry.Get("gong")
	var intakeErr *domainErrors.IntakeError
	assert.ErrorAs(t, err, &intakeErr)
	assert.Equal(t, domainErrors.ErrTypeUnknownProvider, intakeErr.Type)
}

func TestFirefliesNormalizer(t *testing.T) {
	owner := testOwner()

	t.Run("transcription completed payload", func(t *testing.T) {
		payload := json.RawMessage(`{
			"meetingId": "ASxwZxCstx",
			"eventType": "Transcription completed",
			"title": "Q2 pricing discussion",
			"date": 1773154800000,
			"organizerEmail": "rep@co.com",
			"participants": ["rep@co.com", "buyer@acme.com"],
			"speakers": [{"name": "Rita Rep"}, {"name": "Bob Buyer"}]
		}`)

		candidate, eventID, err := NewFirefliesNormalizer().Normalize(payload, owner)

		assert.NoError(t, err)
		assert.Equal(t, "org-1", candidate.OrganizationID)
		assert.Equal(t, ProviderFireflies, candidate.Source)
		assert.Equal(t, "ASxwZxCstx", candidate.ExternalIDs[ProviderFireflies])
		assert.Equal(t, "Q2 pricing discussion", candidate.Title)
		assert.Equal(t, "rep@co.com", candidate.SalesRepEmail)
		assert.Equal(t, []string{"rep@co.com", "buyer@acme.com"}, candidate.ParticipantEmails)
		assert.Equal(t, []string{"Rita Rep", "Bob Buyer"}, candidate.ParticipantNames)
		assert.Equal(t, time.UnixMilli(1773154800000).UTC(), candidate.ScheduledStartTime)
		if assert.NotNil(t, eventID) {
			assert.Equal(t, "fireflies:ASxwZxCstx", *eventID)
		}
	})

	t.Run("missing meeting id is rejected", func(t *testing.T) {
		_, _, err := NewFirefliesNormalizer().Normalize(json.RawMessage(`{"title": "no id"}`), owner)

		var intakeErr *domainErrors.IntakeError
		assert.ErrorAs(t, err, &intakeErr)
		assert.Equal(t, domainErrors.ErrTypeInvalidPayload, intakeErr.Type)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		_, _, err := NewFirefliesNormalizer().Normalize(json.RawMessage(`{"meetingId":`), owner)

		var intakeErr *domainErrors.IntakeError
		assert.ErrorAs(t, err, &intakeErr)
		assert.Equal(t, domainErrors.ErrTypeInvalidPayload, intakeErr.Type)
	})
}

func TestZoomNormalizer(t *testing.T) {
	owner := testOwner()

	t.Run("recording completed payload prefers occurrence uuid", func(t *testing.T) {
		payload := json.RawMessage(`{
			"event": "recording.completed",
			"payload": {
				"object": {
					"id": 987654321,
					"uuid": "4444AAAiAAAAAiAiAiiAii==",
					"topic": "Weekly pipeline sync",
					"start_time": "2026-03-10T15:00:00Z",
					"host_email": "rep@co.com",
					"host_name": "Rita Rep",
					"participants": [
						{"user_name": "Bob Buyer", "email": "buyer@acme.com"},
						{"user_name": "Silent Sam", "email": ""}
					]
				}
			}
		}`)

		candidate, eventID, err := NewZoomNormalizer().Normalize(payload, owner)

		assert.NoError(t, err)
		assert.Equal(t, "4444AAAiAAAAAiAiAiiAii==", candidate.ExternalIDs[ProviderZoom])
		assert.Equal(t, "Weekly pipeline sync", candidate.Title)
		assert.Equal(t, "rep@co.com", candidate.SalesRepEmail)
		assert.Equal(t, "Rita Rep", candidate.SalesRepName)
		assert.Equal(t, []string{"buyer@acme.com"}, candidate.ParticipantEmails)
		assert.Equal(t, []string{"Bob Buyer", "Silent Sam"}, candidate.ParticipantNames)
		assert.Equal(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), candidate.ScheduledStartTime)
		if assert.NotNil(t, eventID) {
			assert.Equal(t, "zoom:4444AAAiAAAAAiAiAiiAii==", *eventID)
		}
	})

	t.Run("numeric id is used when uuid is absent", func(t *testing.T) {
		payload := json.RawMessage(`{"payload": {"object": {"id": 987654321, "topic": "sync"}}}`)

		candidate, eventID, err := NewZoomNormalizer().Normalize(payload, owner)

		assert.NoError(t, err)
		assert.Equal(t, "987654321", candidate.ExternalIDs[ProviderZoom])
		if assert.NotNil(t, eventID) {
			assert.Equal(t, "zoom:987654321", *eventID)
		}
	})

	t.Run("payload without any meeting id is rejected", func(t *testing.T) {
		_, _, err := NewZoomNormalizer().Normalize(json.RawMessage(`{"payload": {"object": {"topic": "sync"}}}`), owner)

		var intakeErr *domainErrors.IntakeError
		assert.ErrorAs(t, err, &intakeErr)
		assert.Equal(t, domainErrors.ErrTypeInvalidPayload, intakeErr.Type)
	})
}

func TestFathomNormalizer(t *testing.T) {
	owner := testOwner()

	t.Run("full payload", func(t *testing.T) {
		payload := json.RawMessage(`{
			"call_id": "fc-1001",
			"title": "Renewal negotiation",
			"scheduled_start_time": "2026-03-10T15:00:00Z",
			"host": {"email": "rep@co.com", "name": "Rita Rep"},
			"invitees": [{"email": "buyer@acme.com", "name": "Bob Buyer"}]
		}`)

		candidate, eventID, err := NewFathomNormalizer().Normalize(payload, owner)

		assert.NoError(t, err)
		assert.Equal(t, "fc-1001", candidate.ExternalIDs[ProviderFathom])
		assert.Equal(t, "Renewal negotiation", candidate.Title)
		if assert.NotNil(t, eventID) {
			assert.Equal(t, "fathom:fc-1001", *eventID)
		}
	})

	t.Run("missing call id still yields a candidate without an event id", func(t *testing.T) {
		payload := json.RawMessage(`{
			"title": "Renewal negotiation",
			"scheduled_start_time": "2026-03-10T15:00:00Z",
			"host": {"email": "rep@co.com"}
		}`)

		candidate, eventID, err := NewFathomNormalizer().Normalize(payload, owner)

		assert.NoError(t, err)
		assert.Nil(t, eventID)
		assert.Empty(t, candidate.ExternalIDs)
		assert.Equal(t, "Renewal negotiation", candidate.Title)
		assert.Equal(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC), candidate.ScheduledStartTime)
	})
}

func TestClaapNormalizer(t *testing.T) {
	owner := testOwner()

	t.Run("recording payload", func(t *testing.T) {
		payload := json.RawMessage(`{
			"recording_id": "rec-77",
			"name": "Discovery with Acme",
			"started_at": "2026-03-10T15:00:00Z",
			"owner": {"email": "rep@co.com", "name": "Rita Rep"},
			"attendees": [
				{"email": "buyer@acme.com", "name": "Bob Buyer"},
				{"email": "cfo@acme.com", "name": "Carla CFO"}
			]
		}`)

		candidate, eventID, err := NewClaapNormalizer().Normalize(payload, owner)

		assert.NoError(t, err)
		assert.Equal(t, "rec-77", candidate.ExternalIDs[ProviderClaap])
		assert.Equal(t, "Discovery with Acme", candidate.Title)
		assert.Equal(t, "rep@co.com", candidate.SalesRepEmail)
		assert.Equal(t, []string{"buyer@acme.com", "cfo@acme.com"}, candidate.ParticipantEmails)
		if assert.NotNil(t, eventID) {
			assert.Equal(t, "claap:rec-77", *eventID)
		}
	})

	t.Run("missing recording id is rejected", func(t *testing.T) {
		_, _, err := NewClaapNormalizer().Normalize(json.RawMessage(`{"name": "no id"}`), owner)

		var intakeErr *domainErrors.IntakeError
		assert.ErrorAs(t, err, &intakeErr)
		assert.Equal(t, domainErrors.ErrTypeInvalidPayload, intakeErr.Type)
	})
}
