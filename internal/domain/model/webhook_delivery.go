package model

import (
	"database/sql/driver"
	"time"
)

// DeliveryStatus represents the processing outcome of a webhook delivery
type DeliveryStatus string

const (
	DeliveryStatusReceived  DeliveryStatus = "received"
	DeliveryStatusProcessed DeliveryStatus = "processed"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)

// Scan implements sql.Scanner interface
func (s *DeliveryStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = DeliveryStatus(v)
	case []byte:
		*s = DeliveryStatus(v)
	default:
		*s = DeliveryStatusReceived
	}
	return nil
}

// Value implements driver.Valuer interface
func (s DeliveryStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// WebhookDelivery journals one inbound webhook call. The raw payload is kept
// so malformed or failed deliveries can be replayed manually. Providers that
// send an event id get at most one journal row per event within a tenant's
// integration (redeliveries hit ON CONFLICT DO NOTHING).
type WebhookDelivery struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Provider       string         `gorm:"size:50;not null;uniqueIndex:uniq_provider_event_id,where:event_id IS NOT NULL" json:"provider"`
	EventID        *string        `gorm:"size:255;uniqueIndex:uniq_provider_event_id,where:event_id IS NOT NULL" json:"event_id,omitempty"`
	OrganizationID string         `gorm:"size:100;index" json:"organization_id"`
	OwnerUserID    string         `gorm:"size:100" json:"owner_user_id"`
	Payload        JSONB          `gorm:"type:jsonb;not null" json:"payload"`
	Status         DeliveryStatus `gorm:"type:delivery_status;default:'received';index" json:"status"`
	Outcome        string         `gorm:"size:50" json:"outcome"`
	CallRecordID   *string        `gorm:"size:100" json:"call_record_id,omitempty"`
	LastError      *string        `json:"last_error,omitempty"`
	ProcessedAt    *time.Time     `json:"processed_at,omitempty"`
	CreatedAt      time.Time      `gorm:"default:now();index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (WebhookDelivery) TableName() string {
	return "webhook_deliveries"
}
