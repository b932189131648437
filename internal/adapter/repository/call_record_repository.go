package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dealsignal/callintake/internal/domain/model"
	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type callRecordRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCallRecordRepository creates a new call record repository
func NewCallRecordRepository(db *gorm.DB, logger *zap.Logger) domainRepo.CallRecordRepository {
	return &callRecordRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a call record and its external refs in one transaction.
// A unique-index violation on the refs surfaces as gorm.ErrDuplicatedKey and
// is the caller's signal that a concurrent delivery won.
func (r *callRecordRepository) Create(ctx context.Context, record *model.CallRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		r.logger.Error("Failed to create call record",
			zap.String("organization_id", record.OrganizationID),
			zap.String("sales_rep_id", record.SalesRepID),
			zap.Error(err))
		return fmt.Errorf("failed to create call record: %w", err)
	}
	return nil
}

func (r *callRecordRepository) FindByExternalID(ctx context.Context, orgID, salesRepID, provider, externalID string) (*model.CallRecord, error) {
	var record model.CallRecord

	err := r.db.WithContext(ctx).
		Joins("JOIN call_external_refs ON call_external_refs.call_record_id = call_records.id").
		Where("call_external_refs.organization_id = ? AND call_external_refs.sales_rep_id = ? AND call_external_refs.provider = ? AND call_external_refs.external_id = ?",
			orgID, salesRepID, provider, externalID).
		Preload("ExternalRefs").
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find call record by external id",
			zap.String("organization_id", orgID),
			zap.String("provider", provider),
			zap.String("external_id", externalID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find call record by external id: %w", err)
	}

	return &record, nil
}

func (r *callRecordRepository) FindInTimeWindow(ctx context.Context, orgID, salesRepID string, from, to time.Time) ([]*model.CallRecord, error) {
	var records []*model.CallRecord

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND sales_rep_id = ?", orgID, salesRepID).
		Where("scheduled_start_time BETWEEN ? AND ?", from, to).
		Order("scheduled_start_time ASC").
		Find(&records).Error

	if err != nil {
		r.logger.Error("Failed to find call records in time window",
			zap.String("organization_id", orgID),
			zap.String("sales_rep_id", salesRepID),
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find call records in time window: %w", err)
	}

	return records, nil
}

func (r *callRecordRepository) GetByID(ctx context.Context, orgID, id string) (*model.CallRecord, error) {
	var record model.CallRecord

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		Preload("ExternalRefs").
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get call record",
			zap.String("organization_id", orgID),
			zap.String("call_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get call record: %w", err)
	}

	return &record, nil
}

func (r *callRecordRepository) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*model.CallRecord, int64, error) {
	var records []*model.CallRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.CallRecord{}).
		Where("organization_id = ?", orgID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count call records: %w", err)
	}

	query := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("scheduled_start_time DESC").
		Preload("ExternalRefs")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&records).Error; err != nil {
		r.logger.Error("Failed to list call records",
			zap.String("organization_id", orgID),
			zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list call records: %w", err)
	}

	return records, total, nil
}
