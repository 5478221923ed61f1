package serverutils

import "github.com/gofiber/fiber/v2"

// AppError is the one error type that crosses the HTTP boundary. Everything
// else is treated as an unexpected internal error.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(message string, code int) *AppError {
	return &AppError{Code: code, Message: message}
}

func ValidationError(message string, details any) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message, Errors: details}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: fiber.StatusForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

func UpstreamFailure(message string) *AppError {
	return &AppError{Code: fiber.StatusBadGateway, Message: message}
}
