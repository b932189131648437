package repository

import (
	"context"
	"encoding/json"

	"github.com/dealsignal/callintake/internal/domain/model"
)

// WebhookDeliveryRepository journals inbound deliveries for audit and manual
// replay.
type WebhookDeliveryRepository interface {
	// Save journals a delivery. When the provider supplied an event id and a
	// row for (provider, event id) already exists, the call is a no-op and
	// the existing row is returned.
	Save(ctx context.Context, provider string, eventID *string, ownerUserID string, payload json.RawMessage) (*model.WebhookDelivery, error)

	// MarkProcessed records the terminal intake outcome for a delivery.
	MarkProcessed(ctx context.Context, id int64, orgID, outcome string, callRecordID *string) error

	// MarkFailed records a processing failure with the error message kept
	// for operators.
	MarkFailed(ctx context.Context, id int64, processErr error) error
}
