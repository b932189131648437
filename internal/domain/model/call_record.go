package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// CallStatus represents the lifecycle state of a call record
type CallStatus string

const (
	CallStatusPending   CallStatus = "pending"
	CallStatusEvaluated CallStatus = "evaluated"
	CallStatusArchived  CallStatus = "archived"
)

// Scan implements sql.Scanner interface
func (s *CallStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = CallStatus(v)
	case []byte:
		*s = CallStatus(v)
	default:
		*s = CallStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s CallStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// CallRecord is a persisted sales call awaiting (or holding) an evaluation.
type CallRecord struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID     string     `gorm:"size:100;not null;index:idx_call_records_org_rep" json:"organization_id"`
	SalesRepID         string     `gorm:"size:100;not null;index:idx_call_records_org_rep" json:"sales_rep_id"`
	SalesRepName       string     `gorm:"size:255" json:"sales_rep_name"`
	Source             string     `gorm:"size:50;not null" json:"source"`
	Title              string     `gorm:"size:500" json:"title"`
	ScheduledStartTime time.Time  `gorm:"not null;index" json:"scheduled_start_time"`
	ParticipantEmails  StringList `gorm:"type:jsonb" json:"participant_emails"`
	ParticipantNames   StringList `gorm:"type:jsonb" json:"participant_names"`
	Status             CallStatus `gorm:"type:call_status;default:'pending';index" json:"status"`
	CreatedAt          time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"default:now()" json:"updated_at"`

	// Relations
	ExternalRefs []CallExternalRef `gorm:"foreignKey:CallRecordID" json:"external_refs,omitempty"`
}

// TableName specifies the table name for GORM
func (CallRecord) TableName() string {
	return "call_records"
}

// CallExternalRef maps a provider-assigned meeting id to a call record.
// The (organization_id, sales_rep_id, provider, external_id) unique index is
// the hard guarantee that at most one record exists per provider id for a
// rep, even when two deliveries for the same meeting race past the read-side
// duplicate check. It carries the same scope as the duplicate matcher: the
// same meeting recorded through two reps' integrations is two records.
type CallExternalRef struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CallRecordID   uuid.UUID `gorm:"type:uuid;not null;index" json:"call_record_id"`
	OrganizationID string    `gorm:"size:100;not null;uniqueIndex:uniq_org_rep_provider_external_id" json:"organization_id"`
	SalesRepID     string    `gorm:"size:100;not null;uniqueIndex:uniq_org_rep_provider_external_id" json:"sales_rep_id"`
	Provider       string    `gorm:"size:50;not null;uniqueIndex:uniq_org_rep_provider_external_id" json:"provider"`
	ExternalID     string    `gorm:"size:255;not null;uniqueIndex:uniq_org_rep_provider_external_id" json:"external_id"`
	CreatedAt      time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (CallExternalRef) TableName() string {
	return "call_external_refs"
}
