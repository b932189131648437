package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	"github.com/dealsignal/callintake/internal/domain/model"
)

func TestIdentityResolver_ResolveSalesRep(t *testing.T) {
	logger := zap.NewNop()

	repID := uuid.New()
	ownerID := uuid.New()

	rep := &model.User{
		ID:             repID,
		OrganizationID: "org-1",
		Email:          "rep@co.com",
		Name:           "Rita Rep",
		Status:         model.UserStatusActive,
	}
	owner := &model.User{
		ID:             ownerID,
		OrganizationID: "org-1",
		Email:          "owner@co.com",
		Name:           "Oscar Owner",
		Status:         model.UserStatusActive,
	}

	tests := []struct {
		name           string
		input          ResolveInput
		mockSetup      func(*MockUserRepository)
		expectedUser   uuid.UUID
		expectedMethod entity.ResolutionMethod
		expectedError  bool
	}{
		{
			name: "exact email match wins over fallback",
			input: ResolveInput{
				OrganizationID: "org-1",
				Email:          "rep@co.com",
				FallbackUserID: ownerID.String(),
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("FindActiveByEmail", mock.Anything, "org-1", "rep@co.com").
					Return(rep, nil)
			},
			expectedUser:   repID,
			expectedMethod: entity.ResolvedByExactEmail,
		},
		{
			name: "email is lowercased and trimmed before lookup",
			input: ResolveInput{
				OrganizationID: "org-1",
				Email:          "  Rep@Co.COM ",
				FallbackUserID: ownerID.String(),
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("FindActiveByEmail", mock.Anything, "org-1", "rep@co.com").
					Return(rep, nil)
			},
			expectedUser:   repID,
			expectedMethod: entity.ResolvedByExactEmail,
		},
		{
			name: "empty email falls back to integration owner",
			input: ResolveInput{
				OrganizationID: "org-1",
				Email:          "",
				FallbackUserID: ownerID.String(),
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("FindByID", mock.Anything, ownerID.String()).
					Return(owner, nil)
			},
			expectedUser:   ownerID,
			expectedMethod: entity.ResolvedByWebhookOwner,
		},
		{
			name: "unmatched email falls back to integration owner",
			input: ResolveInput{
				OrganizationID: "org-1",
				Email:          "stranger@elsewhere.com",
				FallbackUserID: ownerID.String(),
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("FindActiveByEmail", mock.Anything, "org-1", "stranger@elsewhere.com").
					Return(nil, nil)
				repo.On("FindByID", mock.Anything, ownerID.String()).
					Return(owner, nil)
			},
			expectedUser:   ownerID,
			expectedMethod: entity.ResolvedByWebhookOwner,
		},
		{
			name: "email lookup failure is a storage error",
			input: ResolveInput{
				OrganizationID: "org-1",
				Email:          "rep@co.com",
				FallbackUserID: ownerID.String(),
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("FindActiveByEmail", mock.Anything, "org-1", "rep@co.com").
					Return(nil, errors.New("connection refused"))
			},
			expectedError: true,
		},
		{
			name: "unloadable fallback user is the resolver's only hard failure",
			input: ResolveInput{
				OrganizationID: "org-1",
				Email:          "",
				FallbackUserID: "missing-user",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("FindByID", mock.Anything, "missing-user").
					Return(nil, nil)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			resolver := NewIdentityResolver(mockRepo, logger)

			result, err := resolver.ResolveSalesRep(context.Background(), tt.input)

			if tt.expectedError {
				assert.Error(t, err)
				var intakeErr *domainErrors.IntakeError
				assert.ErrorAs(t, err, &intakeErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, result.User.ID)
				assert.Equal(t, tt.expectedMethod, result.ResolvedBy)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
