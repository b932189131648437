package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dealsignal/callintake/internal/adapter/repository"
	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	CallRecord      domainRepo.CallRecordRepository
	User            domainRepo.UserRepository
	WebhookDelivery domainRepo.WebhookDeliveryRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		CallRecord:      repository.NewCallRecordRepository(db, logger),
		User:            repository.NewUserRepository(db, logger),
		WebhookDelivery: repository.NewWebhookDeliveryRepository(db, logger),
	}
}
