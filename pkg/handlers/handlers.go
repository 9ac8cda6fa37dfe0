// Package handlers provides response constructors for route handlers.
// These stateless functions standardize response formatting; they build
// response descriptors rather than writing to the wire, since ownership of
// a response transfers to the transport.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stillpoint/junction/pkg/router"
)

// JSON builds a response with the given status and a JSON-encoded body.
// It sets the Content-Type header to application/json.
func JSON(status int, data any) (*router.Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}

	resp := &router.Response{
		Status: status,
		Body:   body,
	}
	resp.SetHeader("Content-Type", "application/json")
	return resp, nil
}

// Text builds a plain-text response with the given status.
func Text(status int, s string) *router.Response {
	resp := &router.Response{
		Status: status,
		Body:   []byte(s),
	}
	resp.SetHeader("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// NoContent builds an empty 204 response.
func NoContent() *router.Response {
	return &router.Response{Status: http.StatusNoContent}
}

// Error builds a JSON error response with the given status.
// The response body contains {"error": "<error message>"}.
func Error(status int, err error) *router.Response {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})

	resp := &router.Response{
		Status: status,
		Body:   body,
	}
	resp.SetHeader("Content-Type", "application/json")
	return resp
}
