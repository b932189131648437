package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dealsignal/callintake/internal/adapter/provider"
	"github.com/dealsignal/callintake/internal/domain/entity"
	domainErrors "github.com/dealsignal/callintake/internal/domain/errors"
	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
)

// IntakeOrchestrator is the slice of the intake service the handler needs.
type IntakeOrchestrator interface {
	Intake(ctx context.Context, candidate *entity.CandidateCall, fallbackUserID string) (*entity.IntakeResult, error)
}

// WebhookHandler terminates provider webhook deliveries. Duplicates are 200s:
// only malformed payloads and storage failures get error statuses, so the
// sending platform retries genuine failures and nothing else.
type WebhookHandler struct {
	logger       *zap.Logger
	registry     *provider.Registry
	userRepo     domainRepo.UserRepository
	deliveryRepo domainRepo.WebhookDeliveryRepository
	intake       IntakeOrchestrator
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(
	logger *zap.Logger,
	registry *provider.Registry,
	userRepo domainRepo.UserRepository,
	deliveryRepo domainRepo.WebhookDeliveryRepository,
	intake IntakeOrchestrator,
) *WebhookHandler {
	return &WebhookHandler{
		logger:       logger,
		registry:     registry,
		userRepo:     userRepo,
		deliveryRepo: deliveryRepo,
		intake:       intake,
	}
}

// Handle processes POST /webhooks/:provider/:userId. The userId path segment
// identifies the owning integration and accepts either an internal id or the
// auth platform's id.
func (h *WebhookHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()
	providerName := c.Param("provider")
	userID := c.Param("userId")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Failed to read webhook body",
			zap.String("provider", providerName),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Failed to read request body",
			"code":  "INVALID_REQUEST",
		})
	}

	normalizer, err := h.registry.Get(providerName)
	if err != nil {
		h.logger.Warn("Webhook for unknown provider",
			zap.String("provider", providerName))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Unknown provider",
			"code":  domainErrors.ErrTypeUnknownProvider,
		})
	}

	owner, err := h.userRepo.FindByIDOrAuthID(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to load integration owner",
			zap.String("provider", providerName),
			zap.String("user_id", userID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to load integration owner",
			"code":  domainErrors.ErrTypeStorageFailure,
		})
	}
	if owner == nil {
		// No owner means no organization to journal under, so the raw payload
		// goes into the log instead for manual replay.
		ownerErr := domainErrors.NewOwnerNotFoundError(providerName, userID)
		h.logger.Warn("Webhook for unknown integration owner",
			zap.String("provider", providerName),
			zap.String("user_id", userID),
			zap.ByteString("payload", body))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": ownerErr.Message,
			"code":  ownerErr.Type,
		})
	}

	candidate, eventID, normErr := normalizer.Normalize(body, owner)

	// Journal every delivery, parseable or not, before acting on it. The raw
	// payload is what operators replay after a bad deploy or provider change.
	delivery, err := h.deliveryRepo.Save(ctx, providerName, eventID, owner.ID.String(), body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to journal delivery",
			"code":  domainErrors.ErrTypeStorageFailure,
		})
	}

	if normErr != nil {
		h.logger.Warn("Webhook payload failed normalization",
			zap.String("provider", providerName),
			zap.Int64("delivery_id", delivery.ID),
			zap.Error(normErr))
		if markErr := h.deliveryRepo.MarkFailed(ctx, delivery.ID, normErr); markErr != nil {
			h.logger.Error("Failed to mark delivery as failed", zap.Error(markErr))
		}
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Webhook payload could not be normalized",
			"code":  domainErrors.ErrTypeInvalidPayload,
		})
	}

	result, err := h.intake.Intake(ctx, candidate, owner.ID.String())
	if err != nil {
		h.logger.Error("Intake failed",
			zap.String("provider", providerName),
			zap.String("organization_id", owner.OrganizationID),
			zap.Int64("delivery_id", delivery.ID),
			zap.Error(err))
		if markErr := h.deliveryRepo.MarkFailed(ctx, delivery.ID, err); markErr != nil {
			h.logger.Error("Failed to mark delivery as failed", zap.Error(markErr))
		}

		var intakeErr *domainErrors.IntakeError
		if errors.As(err, &intakeErr) && intakeErr.Type == domainErrors.ErrTypeMissingCandidate {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Webhook payload is missing required fields",
				"code":  intakeErr.Type,
			})
		}

		// Storage failures and unloadable fallback users are retryable.
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to process webhook",
			"code":  domainErrors.ErrTypeStorageFailure,
		})
	}

	var callRecordID *string
	if result.CallID != "" {
		callRecordID = &result.CallID
	}
	if markErr := h.deliveryRepo.MarkProcessed(ctx, delivery.ID, owner.OrganizationID, string(result.Action), callRecordID); markErr != nil {
		h.logger.Error("Failed to mark delivery as processed", zap.Error(markErr))
	}

	h.logger.Info("Webhook processed",
		zap.String("provider", providerName),
		zap.String("organization_id", owner.OrganizationID),
		zap.String("status", string(result.Action)),
		zap.String("call_id", result.CallID),
		zap.String("resolved_by", string(result.ResolvedBy)),
		zap.String("match_type", string(result.MatchType)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"status":  result.Action,
		"call_id": result.CallID,
		"detail":  result.Detail,
	})
}
