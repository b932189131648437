package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainRepo "github.com/dealsignal/callintake/internal/domain/repository"
	"github.com/dealsignal/callintake/internal/middleware/auth"
)

// CallHandler serves the operator-facing read API over intake results.
type CallHandler struct {
	logger   *zap.Logger
	callRepo domainRepo.CallRecordRepository
}

// NewCallHandler creates a new call handler
func NewCallHandler(logger *zap.Logger, callRepo domainRepo.CallRecordRepository) *CallHandler {
	return &CallHandler{
		logger:   logger,
		callRepo: callRepo,
	}
}

type listCallsParams struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// ListCalls returns the organization's call records, newest first.
func (h *CallHandler) ListCalls(c echo.Context) error {
	orgID, err := auth.OrganizationFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Missing organization context",
			"code":  "MISSING_ORG_CONTEXT",
		})
	}

	params := listCallsParams{Limit: 50}
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid query parameters",
			"code":  "INVALID_PARAMS",
		})
	}
	if err := c.Validate(&params); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid query parameters",
			"code":  "INVALID_PARAMS",
		})
	}

	records, total, err := h.callRepo.ListByOrganization(c.Request().Context(), orgID, params.Limit, params.Offset)
	if err != nil {
		h.logger.Error("Failed to list call records",
			zap.String("organization_id", orgID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to list calls",
			"code":  "STORAGE_FAILURE",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"calls":  records,
		"total":  total,
		"limit":  params.Limit,
		"offset": params.Offset,
	})
}

// GetCall returns one call record by id, scoped to the caller's organization.
func (h *CallHandler) GetCall(c echo.Context) error {
	orgID, err := auth.OrganizationFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Missing organization context",
			"code":  "MISSING_ORG_CONTEXT",
		})
	}

	record, err := h.callRepo.GetByID(c.Request().Context(), orgID, c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to get call record",
			zap.String("organization_id", orgID),
			zap.String("call_id", c.Param("id")),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to get call",
			"code":  "STORAGE_FAILURE",
		})
	}
	if record == nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Call not found",
			"code":  "CALL_NOT_FOUND",
		})
	}

	return c.JSON(http.StatusOK, record)
}
