// Package transport adapts net/http traffic to the dispatch core. It
// builds a request descriptor from each inbound http.Request, hands it to
// the dispatcher, and serializes the resulting response descriptor back to
// the wire.
package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stillpoint/junction/pkg/router"
)

var errBodyTooLarge = errors.New("request body exceeds configured limit")

type handler struct {
	dispatcher *router.Dispatcher
	logger     *slog.Logger
	maxBody    int64
}

// New creates an http.Handler over the dispatcher. Request bodies larger
// than maxBody bytes are rejected with a 413 before dispatch.
func New(dispatcher *router.Dispatcher, logger *slog.Logger, maxBody int64) http.Handler {
	return &handler{
		dispatcher: dispatcher,
		logger:     logger,
		maxBody:    maxBody,
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := uuid.NewString()

	body, err := h.readBody(r)
	if err != nil {
		h.write(w, overflowResponse())
		h.logger.Warn("request body too large",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"limit", h.maxBody,
		)
		return
	}

	req := &router.Request{
		ID:     id,
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header,
		Body:   body,
	}

	resp := h.dispatcher.Dispatch(r.Context(), req)
	h.write(w, resp)

	h.logger.Info("request",
		"id", id,
		"method", r.Method,
		"path", r.URL.Path,
		"status", resp.Status,
		"duration", time.Since(start),
	)
}

// readBody reads at most maxBody bytes; one extra byte detects overflow.
func (h *handler) readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > h.maxBody {
		return nil, errBodyTooLarge
	}
	return body, nil
}

func (h *handler) write(w http.ResponseWriter, resp *router.Response) {
	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		w.Write(resp.Body)
	}
}

func overflowResponse() *router.Response {
	body, _ := json.Marshal(map[string]string{
		"error": http.StatusText(http.StatusRequestEntityTooLarge),
	})

	resp := &router.Response{
		Status: http.StatusRequestEntityTooLarge,
		Body:   body,
	}
	resp.SetHeader("Content-Type", "application/json")
	return resp
}
