package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dealsignal/callintake/internal/domain/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindActiveByEmail(ctx context.Context, orgID, email string) (*model.User, error) {
	args := m.Called(ctx, orgID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDOrAuthID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockCallRecordRepository is a mock implementation of repository.CallRecordRepository
type MockCallRecordRepository struct {
	mock.Mock
}

func (m *MockCallRecordRepository) Create(ctx context.Context, record *model.CallRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCallRecordRepository) FindByExternalID(ctx context.Context, orgID, salesRepID, provider, externalID string) (*model.CallRecord, error) {
	args := m.Called(ctx, orgID, salesRepID, provider, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CallRecord), args.Error(1)
}

func (m *MockCallRecordRepository) FindInTimeWindow(ctx context.Context, orgID, salesRepID string, from, to time.Time) ([]*model.CallRecord, error) {
	args := m.Called(ctx, orgID, salesRepID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CallRecord), args.Error(1)
}

func (m *MockCallRecordRepository) GetByID(ctx context.Context, orgID, id string) (*model.CallRecord, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CallRecord), args.Error(1)
}

func (m *MockCallRecordRepository) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*model.CallRecord, int64, error) {
	args := m.Called(ctx, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.CallRecord), args.Get(1).(int64), args.Error(2)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}
