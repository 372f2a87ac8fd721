// Package common provides shared response helpers for UI features.
package common

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/leapstack-labs/leapui/internal/compiler"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// ErrorBody is the JSON body of an error response.
type ErrorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// WriteText writes a source text response.
func WriteText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// WriteError classifies err and writes it as JSON. Unknown selectors map
// to 404; other document errors to 422.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(err), ErrorBody{Code: compiler.ErrorCode(err), Error: err.Error()})
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	var (
		missing  *core.MissingComponentError
		notFound *NotFoundError
	)
	switch {
	case errors.As(err, &missing), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, new(*BadRequestError)):
		return http.StatusBadRequest
	case compiler.ErrorCode(err) == compiler.CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// NotFoundError reports a missing resource other than a component.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + " not found"
}

// BadRequestError reports an invalid query parameter.
type BadRequestError struct {
	Param string
	Value string
}

func (e *BadRequestError) Error() string {
	return "invalid " + e.Param + ": " + e.Value
}
