package repository

import (
	"context"
	"time"

	"github.com/dealsignal/callintake/internal/domain/model"
)

// CallRecordRepository is the storage port for call records. Read methods
// return (nil, nil) when nothing matches; only genuine storage failures are
// returned as errors.
type CallRecordRepository interface {
	// Create persists the record and its external refs atomically. Returns
	// gorm.ErrDuplicatedKey when another delivery already claimed one of the
	// record's (organization, provider, external id) tuples.
	Create(ctx context.Context, record *model.CallRecord) error

	// FindByExternalID looks up a record by provider id, scoped to the
	// organization and resolved sales rep.
	FindByExternalID(ctx context.Context, orgID, salesRepID, provider, externalID string) (*model.CallRecord, error)

	// FindInTimeWindow returns records for the same org and rep whose
	// scheduled start falls within [from, to].
	FindInTimeWindow(ctx context.Context, orgID, salesRepID string, from, to time.Time) ([]*model.CallRecord, error)

	GetByID(ctx context.Context, orgID, id string) (*model.CallRecord, error)
	ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*model.CallRecord, int64, error)
}
