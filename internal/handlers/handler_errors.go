package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/finbooks_app/internal/apperrors"
	"github.com/finbooks/finbooks_app/internal/core/domain"
	"github.com/finbooks/finbooks_app/internal/core/services"
	"github.com/finbooks/finbooks_app/internal/middleware"
)

// respondWithError maps service and domain sentinels onto HTTP statuses.
// Unknown errors become a 500 with a generic message; the detail stays in
// the logs.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrApprovalNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrApprovalRequired):
		// 409: the draft is valid but cannot proceed without a decision.
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrClosedPeriod),
		errors.Is(err, services.ErrCompanyCannotOperate),
		errors.Is(err, services.ErrAccountForeign),
		errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, services.ErrNegativeBalance),
		errors.Is(err, services.ErrNoFlagsToApprove),
		errors.Is(err, services.ErrApprovalNotPending),
		errors.Is(err, domain.ErrTransactionNotDraft),
		errors.Is(err, domain.ErrTransactionNotPosted),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrBusinessRule):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrTransactionUnbalanced),
		errors.Is(err, domain.ErrInsufficientLines),
		errors.Is(err, domain.ErrMissingDebitLine),
		errors.Is(err, domain.ErrMissingCreditLine),
		errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrVoidReasonMissing),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// requireUserID pulls the caller identity injected by the identity
// middleware, aborting with 401 when absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
