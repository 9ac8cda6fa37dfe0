package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// Request is the descriptor for one inbound request. It lives for a single
// dispatch cycle. ID identifies the cycle in logs and is assigned by the
// transport.
type Request struct {
	ID     string
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Response is the descriptor produced by a dispatch cycle. Ownership
// transfers to the transport, which serializes it to the wire.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// SetHeader sets a header on the response, allocating the header map on
// first use.
func (r *Response) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(key, value)
}

// Handler processes a matched request. A nil response with a nil error is
// treated as a handler failure. A response with a zero status is
// normalized to 200.
type Handler func(ctx context.Context, req *Request, params Params) (*Response, error)

// Dispatcher resolves requests against a frozen route table and guarantees
// exactly one response per dispatch cycle. Handler failures are contained:
// they are logged and converted to a 500 response, never propagated.
type Dispatcher struct {
	table  *Table
	logger *slog.Logger
	debug  bool
}

// NewDispatcher creates a dispatcher over the given table, freezing it so
// serving can never race registration. In debug mode, 500 responses carry
// the underlying error message instead of a generic body.
func NewDispatcher(table *Table, logger *slog.Logger, debug bool) *Dispatcher {
	table.Freeze()
	return &Dispatcher{
		table:  table,
		logger: logger,
		debug:  debug,
	}
}

// Dispatch resolves the request against the route table and invokes the
// matched handler. It always returns a non-nil response: 404 when nothing
// matches, 405 with an Allow header when only other methods match, and 500
// when the handler fails.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Response {
	result := d.table.Match(req.Method, req.Path)

	switch result.Outcome {
	case OutcomeMatched:
		resp, err := d.invoke(ctx, result.Route, req, result.Params)
		if err == nil && resp == nil {
			err = fmt.Errorf("handler for %s %s returned no response", result.Route.Method, result.Route.Pattern)
		}
		if err != nil {
			d.logger.Error("handler failed",
				"id", req.ID,
				"method", req.Method,
				"path", req.Path,
				"pattern", result.Route.Pattern,
				"error", err,
			)
			return d.errorResponse(http.StatusInternalServerError, err)
		}
		if resp.Status == 0 {
			resp.Status = http.StatusOK
		}
		return resp

	case OutcomeMethodNotAllowed:
		resp := d.errorResponse(http.StatusMethodNotAllowed, nil)
		resp.SetHeader("Allow", strings.Join(result.Allow, ", "))
		return resp

	default:
		return d.errorResponse(http.StatusNotFound, nil)
	}
}

// invoke runs the handler, converting a panic into an ordinary error so no
// failure can escape the dispatch cycle.
func (d *Dispatcher) invoke(ctx context.Context, route *Route, req *Request, params Params) (resp *Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	return route.Handler(ctx, req, params)
}

func (d *Dispatcher) errorResponse(status int, err error) *Response {
	message := http.StatusText(status)
	if err != nil && d.debug {
		message = err.Error()
	}

	body, _ := json.Marshal(map[string]string{"error": message})

	resp := &Response{
		Status: status,
		Body:   body,
	}
	resp.SetHeader("Content-Type", "application/json")
	return resp
}
