package repository

import (
	"context"

	"github.com/dealsignal/callintake/internal/domain/model"
)

// UserRepository is the read-only user directory port.
type UserRepository interface {
	// FindActiveByEmail returns the active user in the organization whose
	// email equals the given address case-insensitively, or (nil, nil).
	FindActiveByEmail(ctx context.Context, orgID, email string) (*model.User, error)

	// FindByID returns the user with the given internal id, or (nil, nil).
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByIDOrAuthID resolves a webhook path user segment, which may carry
	// either the internal id or the auth platform's id.
	FindByIDOrAuthID(ctx context.Context, id string) (*model.User, error)
}
