package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "gastos/internal/errors"
	"gastos/internal/logger"
	"gastos/internal/validation"
)

// parsePathID parses the transaction ID path parameter.
func parsePathID(c *gin.Context) (uint, error) {
	id, err := validation.TransactionID(c.Param("id"))
	if err != nil {
		return 0, apperrors.FromValidation(err)
	}
	return id, nil
}

// parseUserID validates a caller-supplied user_id.
func parseUserID(raw string) (uint, error) {
	id, err := validation.UserID(raw)
	if err != nil {
		return 0, apperrors.FromValidation(err)
	}
	return id, nil
}

// queryUserID reads user_id from the query string.
func queryUserID(c *gin.Context) (uint, error) {
	return parseUserID(c.Query("user_id"))
}

// numberText returns the literal text of a JSON number field.
func numberText(n json.Number) string {
	return string(n)
}

// numericFields are request fields that take a JSON number or numeric string.
var numericFields = map[string]bool{
	"user_id": true,
	"amount":  true,
}

// queryFields maps bound struct fields to their query parameter names.
var queryFields = map[string]string{
	"Type":     "type",
	"Category": "category",
	"Page":     "page",
	"PageSize": "page_size",
}

// bindError converts a binding failure into an INVALID_INPUT response error.
// The message is a fixed reason per field; decoder text never reaches clients.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, bindReason(err))
}

func bindReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if numericFields[field] {
			return field + " must be a number"
		}
		return field + " must be text"
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "request body must be valid JSON"
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return "page and page_size must be whole numbers"
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field, ok := queryFields[fe.Field()]
		if !ok {
			field = strings.ToLower(fe.Field())
		}
		switch fe.Tag() {
		case "transaction_type":
			return field + " must be income or expense"
		case "max":
			if fe.Kind() == reflect.String {
				return fmt.Sprintf("%s is too long (max %s characters)", field, fe.Param())
			}
			return fmt.Sprintf("%s is too large (max %s)", field, fe.Param())
		case "min":
			return fmt.Sprintf("%s is too small (min %s)", field, fe.Param())
		}
		return field + " is invalid"
	}

	return "invalid request body"
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	err = apperrors.FromValidation(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
