// Package response renders the uniform API envelope: every endpoint returns
// either {ok:true, data, meta?} or {ok:false, error:{code, message, details?}}.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Error codes by status
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeUnprocessable       = "UNPROCESSABLE_ENTITY"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

var codeByStatus = map[int]string{
	http.StatusBadRequest:          CodeBadRequest,
	http.StatusUnauthorized:        CodeUnauthorized,
	http.StatusForbidden:           CodeForbidden,
	http.StatusNotFound:            CodeNotFound,
	http.StatusConflict:            CodeConflict,
	http.StatusUnprocessableEntity: CodeUnprocessable,
	http.StatusInternalServerError: CodeInternalServerError,
}

func codeFromStatus(status int) string {
	if code, ok := codeByStatus[status]; ok {
		return code
	}
	return "ERROR"
}

// APIError is the taxonomy every endpoint maps failures into: authorization
// (401/400/403), validation (400 with field details), not-found (404),
// conflict (409) and the 500 fallback.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates an APIError with the code derived from the status.
func NewAPIError(status int, message string) *APIError {
	return &APIError{
		Status:  status,
		Code:    codeFromStatus(status),
		Message: message,
	}
}

// Unauthorized is the 401 unauthenticated failure.
func Unauthorized(message string) *APIError {
	if message == "" {
		message = "You must be signed in."
	}
	return NewAPIError(http.StatusUnauthorized, message)
}

// MissingOrgContext is the 400 failure for requests with no resolvable
// organization.
func MissingOrgContext() *APIError {
	return NewAPIError(http.StatusBadRequest,
		"Active organization is required. Pass x-organization-id if needed.")
}

// Forbidden is the 403 failure for roles lacking a permission.
func Forbidden(message string) *APIError {
	if message == "" {
		message = "Access denied."
	}
	return NewAPIError(http.StatusForbidden, message)
}

// NotFound covers both "does not exist" and "exists in another tenant";
// the two must be indistinguishable to the caller.
func NotFound(message string) *APIError {
	if message == "" {
		message = "Resource not found."
	}
	return NewAPIError(http.StatusNotFound, message)
}

// Validation is the 400 failure for schema violations, with field details.
func Validation(message string, details any) *APIError {
	err := NewAPIError(http.StatusBadRequest, message)
	err.Details = details
	return err
}

// Conflict is the 409 failure for unique-constraint violations.
func Conflict(message string) *APIError {
	if message == "" {
		message = "A unique constraint was violated."
	}
	return NewAPIError(http.StatusConflict, message)
}

// Internal is the 500 fallback. The message must never leak internals.
func Internal(message string) *APIError {
	if message == "" {
		message = "Internal server error."
	}
	return NewAPIError(http.StatusInternalServerError, message)
}

// PaginationMeta is the pagination block in list envelopes.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Meta builds pagination metadata; totalPages is never below 1.
func Meta(page, pageSize int, total int64) PaginationMeta {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

type envelope struct {
	OK   bool            `json:"ok"`
	Data any             `json:"data"`
	Meta *PaginationMeta `json:"meta,omitempty"`
}

type failureEnvelope struct {
	OK    bool      `json:"ok"`
	Error *APIError `json:"error"`
}

// OK renders a 200 success envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{OK: true, Data: data})
}

// OKWithMeta renders a 200 success envelope with pagination metadata.
func OKWithMeta(c *gin.Context, data any, meta PaginationMeta) {
	c.JSON(http.StatusOK, envelope{OK: true, Data: data, Meta: &meta})
}

// Created renders a 201 success envelope.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, envelope{OK: true, Data: data})
}

// Fail renders a failure envelope for the given APIError.
func Fail(c *gin.Context, err *APIError) {
	c.JSON(err.Status, failureEnvelope{OK: false, Error: err})
}

// HandleError maps any error to a failure envelope. APIErrors pass through;
// gorm record-not-found becomes 404, duplicate-key becomes 409; everything
// else is a 500 with the fallback message so internals never leak.
func HandleError(c *gin.Context, err error, fallback string) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		Fail(c, apiErr)
	case errors.Is(err, gorm.ErrRecordNotFound):
		Fail(c, NotFound(""))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		Fail(c, Conflict(""))
	default:
		Fail(c, Internal(fallback))
	}
}
