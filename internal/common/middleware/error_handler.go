package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"arenax-backend/internal/common/errors"
	"arenax-backend/internal/common/logger"
)

// RequestID assigns every request an ID, honouring one supplied by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Recovery converts panics into INTERNAL_ERROR responses.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := getRequestID(c)

		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithRequestID(requestID).
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		sendErrorResponse(c, appErr)
	})
}

// ErrorHandler converts errors attached via c.Error into JSON responses.
// Handlers report failures with c.Error(err) and return.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		appErr, ok := errors.AsAppError(err)
		if !ok {
			appErr = errors.Wrap(err, errors.ErrCodeInternal, "Unhandled error")
		}
		sendErrorResponse(c, appErr)
	}
}

// ErrorResponse is the error envelope returned to clients.
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
}

func sendErrorResponse(c *gin.Context, appErr *errors.AppError) {
	requestID := getRequestID(c)
	appErr.WithRequestID(requestID)

	response := ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
		Path:      c.Request.URL.Path,
	}

	logError(appErr, c)
	c.AbortWithStatusJSON(statusCode(appErr), response)
}

func statusCode(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeUserNotFound,
		errors.ErrCodeTournamentNotFound, errors.ErrCodeWithdrawalNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidCredentials,
		errors.ErrCodeSessionExpired, errors.ErrCodeEmailNotConfirmed:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden, errors.ErrCodeInsufficientPrivilege,
		errors.ErrCodeUserBanned, errors.ErrCodeBalanceBlocked:
		return http.StatusForbidden
	case errors.ErrCodeConflict, errors.ErrCodeAlreadyJoined, errors.ErrCodeProfileIncomplete:
		return http.StatusConflict
	case errors.ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	case errors.ErrCodeTournamentFull, errors.ErrCodeTournamentClosed:
		return http.StatusGone
	case errors.ErrCodeInsufficientBalance, errors.ErrCodeBelowMinimum:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeProviderError, errors.ErrCodeProviderUnavailable:
		return http.StatusBadGateway
	case errors.ErrCodeCacheError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logError(appErr *errors.AppError, c *gin.Context) {
	evt := pickLevel(appErr).
		Str("request_id", getRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message)

	if appErr.UserID != "" {
		evt = evt.Str("user_id", appErr.UserID)
	}
	if appErr.Cause != nil {
		evt = evt.Err(appErr.Cause)
	}
	evt.Msg("Request failed")
}

func pickLevel(appErr *errors.AppError) *zerolog.Event {
	switch {
	case appErr.IsInternal():
		return logger.Error()
	case appErr.IsUnauthorized():
		return logger.Warn()
	default:
		return logger.Info()
	}
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}
