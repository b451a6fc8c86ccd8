package app_error

import (
	"encoding/json"
	"net/http"
)

// Kind classifies a failure independently of the HTTP status it maps to,
// so callers can branch on the taxonomy instead of comparing messages.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindInvalidState     Kind = "invalid_state"
	KindCapacityExceeded Kind = "capacity_exceeded"
	KindForbidden        Kind = "forbidden"
	KindProtocolError    Kind = "protocol_error"
	KindConflict         Kind = "conflict"
	KindUnauthorized     Kind = "unauthorized"
	KindBadRequest       Kind = "bad_request"
	KindInternal         Kind = "internal"
)

type AppError struct {
	Code    int    `json:"-"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, kind Kind, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: msg,
		Field:   field,
	}
}

func NotFound(msg, field string) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, msg, field)
}

func InvalidState(msg, field string) *AppError {
	return NewAppError(http.StatusConflict, KindInvalidState, msg, field)
}

func CapacityExceeded(msg, field string) *AppError {
	return NewAppError(http.StatusConflict, KindCapacityExceeded, msg, field)
}

func Forbidden(msg, field string) *AppError {
	return NewAppError(http.StatusForbidden, KindForbidden, msg, field)
}

func Protocol(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, KindProtocolError, msg, field)
}

func Conflict(msg, field string) *AppError {
	return NewAppError(http.StatusConflict, KindConflict, msg, field)
}

func Unauthorized(msg, field string) *AppError {
	return NewAppError(http.StatusUnauthorized, KindUnauthorized, msg, field)
}

func BadRequest(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, KindBadRequest, msg, field)
}

func Internal(msg, field string) *AppError {
	return NewAppError(http.StatusInternalServerError, KindInternal, msg, field)
}
