package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("api: not found")
	ErrBadRequest   = errors.New("api: bad request")
	ErrUnauthorized = errors.New("api: unauthorized")
	ErrUnavailable  = errors.New("api: unavailable")
)

// ResponseError is returned for any non-2xx answer from the listings API.
// Fields holds per-field messages when the API answered with a validation payload.
type ResponseError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

func (e *ResponseError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return ErrUnauthorized
	case e.Status >= 400 && e.Status < 500:
		return ErrBadRequest
	default:
		return ErrUnavailable
	}
}

// FieldErrors returns the per-field messages carried by err, if any.
func FieldErrors(err error) map[string]string {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.Fields
	}
	return nil
}

// newResponseError decodes the API's error shapes:
// {"error": "..."} or {"field": ["msg", ...], ...}.
func newResponseError(status int, body map[string]any) *ResponseError {
	respErr := &ResponseError{Status: status}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		msg := flatten(body[k])
		if msg == "" {
			continue
		}

		if k == "error" || k == "detail" || k == "non_field_errors" {
			respErr.Message = msg
			continue
		}

		if respErr.Fields == nil {
			respErr.Fields = make(map[string]string)
		}
		respErr.Fields[k] = msg
	}

	return respErr
}

func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			if s := flatten(p); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
