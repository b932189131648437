package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dealsignal/callintake/internal/domain/entity"
	"github.com/dealsignal/callintake/internal/domain/model"
	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
)

// MatchStrategy attempts to find an existing record for a candidate call.
// Strategies are evaluated in order from most to least confident; returning
// (nil, nil) means "no match, try the next one".
type MatchStrategy interface {
	Name() string
	AttemptMatch(ctx context.Context, candidate *entity.CandidateCall) (*entity.DuplicateCheckResult, error)
}

// externalIDStrategy matches on the provider-assigned meeting id, scoped to
// (organization, sales rep). The most reliable signal when present.
type externalIDStrategy struct {
	callRepo domainRepo.CallRecordRepository
}

// NewExternalIDStrategy builds the provider-id match strategy.
func NewExternalIDStrategy(callRepo domainRepo.CallRecordRepository) MatchStrategy {
	return &externalIDStrategy{callRepo: callRepo}
}

func (s *externalIDStrategy) Name() string {
	return "external_id"
}

func (s *externalIDStrategy) AttemptMatch(ctx context.Context, candidate *entity.CandidateCall) (*entity.DuplicateCheckResult, error) {
	for provider, externalID := range candidate.ExternalIDs {
		if externalID == "" {
			continue
		}
		existing, err := s.callRepo.FindByExternalID(ctx, candidate.OrganizationID, candidate.SalesRepID, provider, externalID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &entity.DuplicateCheckResult{
				IsDuplicate:    true,
				MatchType:      entity.MatchTypeExternalID,
				ExistingCallID: existing.ID.String(),
				Message: fmt.Sprintf("call %s already holds %s id %q for this rep",
					existing.ID, provider, externalID),
			}, nil
		}
	}
	return nil, nil
}

// compositeStrategy matches on scheduled time within a tolerance window plus
// title equality or participant overlap. It exists for providers whose
// deliveries carry no stable external id, and deliberately prefers a rare
// duplicate record over silently dropping a distinct call.
type compositeStrategy struct {
	callRepo   domainRepo.CallRecordRepository
	tolerance  time.Duration
	minOverlap int
}

// NewCompositeStrategy builds the time+title+participants strategy. tolerance
// bounds the scheduled-start window; minOverlap is the number of shared
// normalized participant identities required (1 unless tuned).
func NewCompositeStrategy(callRepo domainRepo.CallRecordRepository, tolerance time.Duration, minOverlap int) MatchStrategy {
	if minOverlap < 1 {
		minOverlap = 1
	}
	return &compositeStrategy{
		callRepo:   callRepo,
		tolerance:  tolerance,
		minOverlap: minOverlap,
	}
}

func (s *compositeStrategy) Name() string {
	return "composite"
}

func (s *compositeStrategy) AttemptMatch(ctx context.Context, candidate *entity.CandidateCall) (*entity.DuplicateCheckResult, error) {
	if candidate.ScheduledStartTime.IsZero() {
		return nil, nil
	}

	from := candidate.ScheduledStartTime.Add(-s.tolerance)
	to := candidate.ScheduledStartTime.Add(s.tolerance)

	existing, err := s.callRepo.FindInTimeWindow(ctx, candidate.OrganizationID, candidate.SalesRepID, from, to)
	if err != nil {
		return nil, err
	}

	candidateTitle := entity.NormalizeTitle(candidate.Title)
	candidateEmails := entity.NormalizeSet(candidate.ParticipantEmails)
	candidateNames := entity.NormalizeSet(candidate.ParticipantNames)

	for _, record := range existing {
		if candidateTitle != "" && entity.NormalizeTitle(record.Title) == candidateTitle {
			return &entity.DuplicateCheckResult{
				IsDuplicate:    true,
				MatchType:      entity.MatchTypeComposite,
				ExistingCallID: record.ID.String(),
				Message: fmt.Sprintf("call %s at %s has the same title %q for this rep",
					record.ID, record.ScheduledStartTime.Format(time.RFC3339), record.Title),
			}, nil
		}

		shared := countOverlap(candidateEmails, record.ParticipantEmails) +
			countOverlap(candidateNames, record.ParticipantNames)
		if shared >= s.minOverlap {
			return &entity.DuplicateCheckResult{
				IsDuplicate:    true,
				MatchType:      entity.MatchTypeComposite,
				ExistingCallID: record.ID.String(),
				Message: fmt.Sprintf("call %s at %s shares %d participant identities with this delivery",
					record.ID, record.ScheduledStartTime.Format(time.RFC3339), shared),
			}, nil
		}
	}

	return nil, nil
}

func countOverlap(candidate []string, persisted model.StringList) int {
	if len(candidate) == 0 || len(persisted) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(persisted))
	for _, v := range persisted {
		set[entity.NormalizeName(v)] = struct{}{}
	}
	count := 0
	for _, v := range candidate {
		if _, ok := set[v]; ok {
			count++
		}
	}
	return count
}
