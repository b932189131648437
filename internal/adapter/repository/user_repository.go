package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dealsignal/callintake/internal/domain/model"
	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type userRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger *zap.Logger) domainRepo.UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, orgID, email string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND LOWER(email) = ? AND status = ?",
			orgID, strings.ToLower(strings.TrimSpace(email)), model.UserStatusActive).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find user by email",
			zap.String("organization_id", orgID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find user by id",
			zap.String("user_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}

	return &user, nil
}

// FindByIDOrAuthID accepts either the internal uuid or the auth platform's
// user id, since provider webhook URLs were registered with whichever the
// customer had at hand.
func (r *userRepository) FindByIDOrAuthID(ctx context.Context, id string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Where("id::text = ? OR platform_auth_id = ?", id, id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find user by id or auth id",
			zap.String("user_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find user by id or auth id: %w", err)
	}

	return &user, nil
}
