package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapleridge/teller_app/internal/apperrors"
)

// statusFromError maps application errors onto HTTP statuses. Business rule
// failures (insufficient funds, dispenser limits, joint limits, empty ledger)
// are conflicts: the request was well formed but the branch state refuses it.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrInsufficientCash),
		errors.Is(err, apperrors.ErrUnsatisfiableDenomination),
		errors.Is(err, apperrors.ErrUnsupportedOperation),
		errors.Is(err, apperrors.ErrJointLimitExceeded),
		errors.Is(err, apperrors.ErrNothingToUndo),
		errors.Is(err, apperrors.ErrCounterpartyNotFound):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the failure and writes the mapped status. Internal errors
// are not echoed back to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, op string) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Operation failed", slog.String("op", op), slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	logger.Warn("Operation rejected", slog.String("op", op), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
