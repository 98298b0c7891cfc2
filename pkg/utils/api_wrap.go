package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// StatusAndMessage maps a service error to the HTTP status and the message safe to show.
func StatusAndMessage(err error) (int, string) {
	var verr *ValidationError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, ErrInvalidPage):
		return http.StatusBadRequest, "Page must be greater than 0"
	case errors.Is(err, ErrInvalidPageSize):
		return http.StatusBadRequest, "Page size must be between 1 and 100"
	case errors.Is(err, ErrTripNotFound):
		return http.StatusNotFound, "Trip not found"
	case errors.Is(err, ErrProfileNotFound):
		return http.StatusNotFound, "Profile not found"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidSession):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "Forbidden: insufficient permissions"
	case errors.Is(err, ErrInvalidOAuthFlow):
		return http.StatusBadRequest, "Sign-in failed, please try again"
	case errors.Is(err, ErrSignInUnavailable):
		return http.StatusServiceUnavailable, "Sign-in is busy, please try again later"
	case errors.Is(err, ErrUnexpectedBehaviorOfAI):
		return http.StatusBadGateway, "Failed to generate trip"
	case errors.Is(err, ErrCountriesUnavailable):
		return http.StatusBadGateway, "Country list is unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func HandleServiceError(c *gin.Context, err error) {
	code, message := StatusAndMessage(err)
	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("trace_id", c.GetString("trace_id")),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	RespondError(c, code, message)
}
