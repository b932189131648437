package usecase

import (
	"context"

	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
	"go.uber.org/zap"
)

// IdentityResolver maps a webhook's nominal host identity to the sales rep of
// record. Webhooks often arrive through an integration owned by a manager on
// behalf of a rep's own meeting, so the host email takes priority over the
// integration owner.
type IdentityResolver struct {
	userRepo domainRepo.UserRepository
	logger   *zap.Logger
}

// ResolveInput carries the identity hints extracted from one delivery.
type ResolveInput struct {
	OrganizationID string
	// Email is the host/organizer address reported by the provider. May be
	// empty.
	Email string
	// FallbackUserID identifies the integration owner, already validated by
	// the webhook handler.
	FallbackUserID string
}

// NewIdentityResolver creates a new identity resolver
func NewIdentityResolver(userRepo domainRepo.UserRepository, logger *zap.Logger) *IdentityResolver {
	return &IdentityResolver{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ResolveSalesRep applies the resolution strategies in strict priority order;
// the first one that succeeds wins. "No user matched the email" is never an
// error, it just falls through to the integration owner. The only hard
// failure is the fallback user itself not loading.
func (r *IdentityResolver) ResolveSalesRep(ctx context.Context, input ResolveInput) (*entity.ResolutionResult, error) {
	email := entity.NormalizeEmail(input.Email)

	if email != "" {
		user, err := r.userRepo.FindActiveByEmail(ctx, input.OrganizationID, email)
		if err != nil {
			return nil, domainErrors.NewStorageError(input.OrganizationID, err)
		}
		if user != nil {
			r.logger.Debug("Resolved sales rep by email",
				zap.String("organization_id", input.OrganizationID),
				zap.String("email", email),
				zap.String("user_id", user.ID.String()))
			return &entity.ResolutionResult{
				User:       user,
				ResolvedBy: entity.ResolvedByExactEmail,
			}, nil
		}
	}

	fallback, err := r.userRepo.FindByID(ctx, input.FallbackUserID)
	if err != nil {
		return nil, domainErrors.NewFallbackLoadError(input.OrganizationID, input.FallbackUserID, err)
	}
	if fallback == nil {
		return nil, domainErrors.NewFallbackLoadError(input.OrganizationID, input.FallbackUserID, nil)
	}

	r.logger.Debug("Resolved sales rep via integration owner fallback",
		zap.String("organization_id", input.OrganizationID),
		zap.String("email", email),
		zap.String("user_id", fallback.ID.String()))

	return &entity.ResolutionResult{
		User:       fallback,
		ResolvedBy: entity.ResolvedByWebhookOwner,
	}, nil
}
