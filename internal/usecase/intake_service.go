package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	"github.com/dealsignal/callintake/internal/domain/model"
	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventPublisher is the outbound event port. Implemented by the Redis bus.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// IntakeService orchestrates one webhook delivery: resolve the sales rep,
// check for duplicates, persist, announce. It is the single entry point the
// provider adapters call after normalizing their payloads.
type IntakeService struct {
	resolver     *IdentityResolver
	matcher      *DuplicateMatcher
	callRepo     domainRepo.CallRecordRepository
	events       EventPublisher
	eventChannel string
	logger       *zap.Logger
}

// NewIntakeService creates a new intake service
func NewIntakeService(
	resolver *IdentityResolver,
	matcher *DuplicateMatcher,
	callRepo domainRepo.CallRecordRepository,
	events EventPublisher,
	eventChannel string,
	logger *zap.Logger,
) *IntakeService {
	return &IntakeService{
		resolver:     resolver,
		matcher:      matcher,
		callRepo:     callRepo,
		events:       events,
		eventChannel: eventChannel,
		logger:       logger,
	}
}

// Intake runs a candidate call to one of its two terminal outcomes. A
// duplicate is a success, not an error. The delivery fails (and the provider
// retries) only on storage failures or an unloadable fallback user.
func (s *IntakeService) Intake(ctx context.Context, candidate *entity.CandidateCall, fallbackUserID string) (*entity.IntakeResult, error) {
	if candidate.OrganizationID == "" {
		return nil, domainErrors.NewMissingCandidateError("candidate has no organization")
	}
	if candidate.Source == "" {
		return nil, domainErrors.NewMissingCandidateError("candidate has no source provider")
	}

	candidate.Normalize()

	resolution, err := s.resolver.ResolveSalesRep(ctx, ResolveInput{
		OrganizationID: candidate.OrganizationID,
		Email:          candidate.SalesRepEmail,
		FallbackUserID: fallbackUserID,
	})
	if err != nil {
		return nil, err
	}

	// Resolution always yields a rep: either the email matched or the
	// integration owner is credited. The candidate is never left unowned.
	candidate.SalesRepID = resolution.User.ID.String()
	if candidate.SalesRepName == "" {
		candidate.SalesRepName = resolution.User.Name
	}

	check, err := s.matcher.CheckForDuplicate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if check.IsDuplicate {
		return &entity.IntakeResult{
			Action:     entity.IntakeActionSkipped,
			CallID:     check.ExistingCallID,
			Detail:     check.Message,
			ResolvedBy: resolution.ResolvedBy,
			MatchType:  check.MatchType,
		}, nil
	}

	record := s.buildRecord(candidate)
	if err := s.callRepo.Create(ctx, record); err != nil {
		// Two deliveries for the same external id can both pass the read
		// check before either write lands. The unique index turns the loser
		// into a constraint violation, which is just a duplicate detected
		// late.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.skipAfterInsertRace(ctx, candidate, resolution)
		}
		return nil, domainErrors.NewStorageError(candidate.OrganizationID, err)
	}

	s.logger.Info("Call record created",
		zap.String("organization_id", candidate.OrganizationID),
		zap.String("sales_rep_id", candidate.SalesRepID),
		zap.String("call_id", record.ID.String()),
		zap.String("source", candidate.Source),
		zap.String("resolved_by", string(resolution.ResolvedBy)))

	s.publishCreated(ctx, record)

	return &entity.IntakeResult{
		Action:     entity.IntakeActionCreated,
		CallID:     record.ID.String(),
		Detail:     "call record created",
		ResolvedBy: resolution.ResolvedBy,
	}, nil
}

func (s *IntakeService) buildRecord(candidate *entity.CandidateCall) *model.CallRecord {
	record := &model.CallRecord{
		ID:                 uuid.New(),
		OrganizationID:     candidate.OrganizationID,
		SalesRepID:         candidate.SalesRepID,
		SalesRepName:       candidate.SalesRepName,
		Source:             candidate.Source,
		Title:              candidate.Title,
		ScheduledStartTime: candidate.ScheduledStartTime,
		ParticipantEmails:  model.StringList(candidate.ParticipantEmails),
		ParticipantNames:   model.StringList(candidate.ParticipantNames),
		Status:             model.CallStatusPending,
	}

	for provider, externalID := range candidate.ExternalIDs {
		if externalID == "" {
			continue
		}
		record.ExternalRefs = append(record.ExternalRefs, model.CallExternalRef{
			CallRecordID:   record.ID,
			OrganizationID: candidate.OrganizationID,
			SalesRepID:     candidate.SalesRepID,
			Provider:       provider,
			ExternalID:     externalID,
		})
	}

	return record
}

// skipAfterInsertRace converts a unique-constraint violation into the same
// skipped outcome a read-side match would have produced.
func (s *IntakeService) skipAfterInsertRace(ctx context.Context, candidate *entity.CandidateCall, resolution *entity.ResolutionResult) (*entity.IntakeResult, error) {
	s.logger.Info("Concurrent delivery won the insert, skipping",
		zap.String("organization_id", candidate.OrganizationID),
		zap.String("sales_rep_id", candidate.SalesRepID),
		zap.String("source", candidate.Source))

	result := &entity.IntakeResult{
		Action:     entity.IntakeActionSkipped,
		Detail:     "existing call claimed this external id during insert",
		ResolvedBy: resolution.ResolvedBy,
		MatchType:  entity.MatchTypeExternalID,
	}

	for provider, externalID := range candidate.ExternalIDs {
		if externalID == "" {
			continue
		}
		existing, err := s.callRepo.FindByExternalID(ctx, candidate.OrganizationID, candidate.SalesRepID, provider, externalID)
		if err != nil {
			// The skip outcome stands even if the winner cannot be read back.
			s.logger.Warn("Failed to load winning record after insert race",
				zap.String("organization_id", candidate.OrganizationID),
				zap.Error(err))
			break
		}
		if existing != nil {
			result.CallID = existing.ID.String()
			result.Detail = fmt.Sprintf("call %s already holds %s id %q for this rep", existing.ID, provider, externalID)
			break
		}
	}

	return result, nil
}

// publishCreated announces the new record for asynchronous scoring. Failures
// are logged only: the record stays, and external-id dedupe keeps redelivery
// of the same meeting from creating a second one.
func (s *IntakeService) publishCreated(ctx context.Context, record *model.CallRecord) {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	event := entity.CallCreatedEvent{
		CallRecordID: record.ID.String(),
		Source:       record.Source,
	}
	if err := s.events.Publish(publishCtx, s.eventChannel, event); err != nil {
		s.logger.Error("Failed to publish call created event",
			zap.String("call_id", record.ID.String()),
			zap.String("channel", s.eventChannel),
			zap.Error(err))
	}
}
