// Package httperr carries HTTP-mapped service errors from the service layer
// to the transport boundary.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Error struct {
	Status int    `json:"-"`
	Title  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Title + ": " + e.Detail
	}
	return e.Title
}

func New(status int, title, detail string) *Error {
	return &Error{Status: status, Title: title, Detail: detail}
}

func Unauthorized(detail string) *Error {
	return New(http.StatusUnauthorized, "Unauthorized", detail)
}

func Forbidden(detail string) *Error {
	return New(http.StatusForbidden, "Forbidden", detail)
}

func NotFound(detail string) *Error {
	return New(http.StatusNotFound, "Not Found", detail)
}

func BadRequest(detail string) *Error {
	return New(http.StatusBadRequest, "Bad Request", detail)
}

// WriteError renders err as JSON. Errors without a status collapse to 500
// without leaking internals.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	_ = r
	var he *Error
	if !errors.As(err, &he) {
		he = New(http.StatusInternalServerError, "Internal Server Error", "")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.Status)
	_ = json.NewEncoder(w).Encode(he)
}
