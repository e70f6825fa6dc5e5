package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"stocksim/internal/domain"
)

// Response represents a standardized API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c echo.Context, statusCode int, message string, err interface{}) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
		Error:   err,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message, nil)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusNotFound, message, nil)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, message string, err error) error {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return ErrorResponse(c, http.StatusInternalServerError, message, errMsg)
}

// DomainErrorResponse maps the trading error taxonomy onto HTTP statuses.
// Validation and business-rule failures report the human-readable message;
// anything unrecognized is a store failure and reports as 500.
func DomainErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientShares):
		return ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrUnknownSymbol):
		return ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrUsernameTaken):
		return ErrorResponse(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, domain.ErrOracleUnavailable),
		errors.Is(err, domain.ErrPriceUnavailable):
		return ErrorResponse(c, http.StatusBadGateway, err.Error(), nil)
	default:
		return InternalServerErrorResponse(c, "Operation failed", err)
	}
}
