package usecase

import (
	"context"
	"time"

	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
	"go.uber.org/zap"
)

// DuplicateMatcher decides whether a candidate call is a meeting already
// recorded for the same resolved sales rep. Strategies run in registration
// order and the first match short-circuits the rest. Matching is always
// scoped to (organization, sales rep): the same physical meeting recorded
// through two reps' integrations is two legitimate records.
type DuplicateMatcher struct {
	strategies []MatchStrategy
	logger     *zap.Logger
}

// NewDuplicateMatcher wires the default strategy cascade: external id first,
// then the composite time/title/participant heuristic.
func NewDuplicateMatcher(callRepo domainRepo.CallRecordRepository, tolerance time.Duration, logger *zap.Logger) *DuplicateMatcher {
	return NewDuplicateMatcherWithStrategies(logger,
		NewExternalIDStrategy(callRepo),
		NewCompositeStrategy(callRepo, tolerance, 1),
	)
}

// NewDuplicateMatcherWithStrategies builds a matcher over an explicit
// strategy list, ordered from most to least confident.
func NewDuplicateMatcherWithStrategies(logger *zap.Logger, strategies ...MatchStrategy) *DuplicateMatcher {
	return &DuplicateMatcher{
		strategies: strategies,
		logger:     logger,
	}
}

// CheckForDuplicate runs the cascade. Storage errors propagate unchanged so
// the orchestrator fails the delivery and the provider retries; a failed read
// must never be treated as "not a duplicate".
func (m *DuplicateMatcher) CheckForDuplicate(ctx context.Context, candidate *entity.CandidateCall) (*entity.DuplicateCheckResult, error) {
	if candidate.OrganizationID == "" || candidate.SalesRepID == "" {
		return nil, domainErrors.NewMissingCandidateError("duplicate check requires organization and resolved sales rep")
	}

	for _, strategy := range m.strategies {
		result, err := strategy.AttemptMatch(ctx, candidate)
		if err != nil {
			return nil, domainErrors.NewStorageError(candidate.OrganizationID, err)
		}
		if result != nil && result.IsDuplicate {
			m.logger.Info("Duplicate call detected",
				zap.String("organization_id", candidate.OrganizationID),
				zap.String("sales_rep_id", candidate.SalesRepID),
				zap.String("source", candidate.Source),
				zap.String("strategy", strategy.Name()),
				zap.String("existing_call_id", result.ExistingCallID))
			return result, nil
		}
	}

	return &entity.DuplicateCheckResult{
		IsDuplicate: false,
		MatchType:   entity.MatchTypeNone,
		Message:     "no existing call matched",
	}, nil
}
