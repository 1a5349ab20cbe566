package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppError is an error that knows its HTTP status and, optionally, a
// machine-readable code the frontend branches on.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError builds an AppError without a code.
func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

// NewCodedError builds an AppError carrying a code such as OTP_REQUIRED.
func NewCodedError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// BadRequest, NotFound, ... are shorthands for the common statuses.
func BadRequest(msg string) *AppError   { return NewAppError(http.StatusBadRequest, msg) }
func Unauthorized(msg string) *AppError { return NewAppError(http.StatusUnauthorized, msg) }
func Forbidden(msg string) *AppError    { return NewAppError(http.StatusForbidden, msg) }
func NotFound(msg string) *AppError     { return NewAppError(http.StatusNotFound, msg) }
func Conflict(msg string) *AppError     { return NewAppError(http.StatusConflict, msg) }

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrorHandler recovers panics and turns them into a 500 JSON body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "Internal Server Error",
				})
			}
		}()
		c.Next()
	}
}

// RespondError writes err as JSON. AppErrors keep their status and code;
// anything else is logged and reported as a 500 with its message.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			GetLogger().Error(appErr.Message, zap.String("path", c.Request.URL.Path))
		} else {
			GetLogger().Debug(appErr.Message, zap.Int("status", appErr.Status), zap.String("path", c.Request.URL.Path))
		}
		c.AbortWithStatusJSON(appErr.Status, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
		return
	}
	GetLogger().Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string) {
	RespondError(c, NewAppError(status, message))
}
