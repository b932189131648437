package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dealsignal/callintake/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.User{},
		&model.CallRecord{},
		&model.CallExternalRef{},
		&model.WebhookDelivery{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes GORM tags don't express. The external
// ref uniqueness is declared in the model; the explicit statement here keeps
// it present even on databases migrated before the tag existed.
func createCustomIndexes(db *gorm.DB) error {
	// An earlier revision scoped this index to the organization only, which
	// wrongly collapsed the same meeting across two reps' integrations.
	if err := db.Exec(`DROP INDEX IF EXISTS uniq_org_provider_external_id`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_org_rep_provider_external_id ON call_external_refs (organization_id, sales_rep_id, provider, external_id)`).Error; err != nil {
		return err
	}

	// Partial unique index: deliveries without an event id are always
	// journaled as fresh rows.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_provider_event_id ON webhook_deliveries (provider, event_id) WHERE event_id IS NOT NULL`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_webhook_deliveries_failed ON webhook_deliveries (created_at) WHERE status = 'failed'`).Error; err != nil {
		return err
	}

	return nil
}

// createCustomTypes creates custom PostgreSQL types
func createCustomTypes(db *gorm.DB) error {
	var exists bool

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'call_status')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE call_status AS ENUM ('pending', 'evaluated', 'archived')`).Error; err != nil {
			return err
		}
	}

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'delivery_status')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE delivery_status AS ENUM ('received', 'processed', 'failed')`).Error; err != nil {
			return err
		}
	}

	return nil
}
