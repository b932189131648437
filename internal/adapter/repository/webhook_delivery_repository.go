package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dealsignal/callintake/internal/domain/model"
	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type webhookDeliveryRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewWebhookDeliveryRepository creates a new webhook delivery repository
func NewWebhookDeliveryRepository(db *gorm.DB, logger *zap.Logger) domainRepo.WebhookDeliveryRepository {
	return &webhookDeliveryRepository{
		db:     db,
		logger: logger,
	}
}

// Save journals a delivery. Redeliveries carrying the same provider event id
// hit ON CONFLICT DO NOTHING and get the already-journaled row back.
func (r *webhookDeliveryRepository) Save(ctx context.Context, provider string, eventID *string, ownerUserID string, payload json.RawMessage) (*model.WebhookDelivery, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(payload, &body); err != nil {
		// Journal unparseable bodies too; operators replay them manually.
		body = map[string]interface{}{"raw": string(payload)}
	}

	delivery := &model.WebhookDelivery{
		Provider:    provider,
		EventID:     eventID,
		OwnerUserID: ownerUserID,
		Payload:     model.JSONB(body),
		Status:      model.DeliveryStatusReceived,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(delivery).Error
	if err != nil {
		r.logger.Error("Failed to journal webhook delivery",
			zap.String("provider", provider),
			zap.Error(err))
		return nil, fmt.Errorf("failed to journal webhook delivery: %w", err)
	}

	// A zero id after DoNothing means this event was journaled earlier.
	if delivery.ID == 0 && eventID != nil {
		var existing model.WebhookDelivery
		if err := r.db.WithContext(ctx).
			Where("provider = ? AND event_id = ?", provider, *eventID).
			First(&existing).Error; err == nil {
			return &existing, nil
		}
	}

	return delivery, nil
}

func (r *webhookDeliveryRepository) MarkProcessed(ctx context.Context, id int64, orgID, outcome string, callRecordID *string) error {
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.WebhookDelivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          model.DeliveryStatusProcessed,
			"organization_id": orgID,
			"outcome":         outcome,
			"call_record_id":  callRecordID,
			"processed_at":    &now,
		})

	if result.Error != nil {
		r.logger.Error("Failed to mark delivery as processed",
			zap.Int64("delivery_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark delivery as processed: %w", result.Error)
	}

	return nil
}

func (r *webhookDeliveryRepository) MarkFailed(ctx context.Context, id int64, processErr error) error {
	errorMsg := processErr.Error()
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.WebhookDelivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       model.DeliveryStatusFailed,
			"last_error":   &errorMsg,
			"processed_at": &now,
		})

	if result.Error != nil {
		r.logger.Error("Failed to mark delivery as failed",
			zap.Int64("delivery_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark delivery as failed: %w", result.Error)
	}

	return nil
}
