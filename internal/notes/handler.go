package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stillpoint/junction/pkg/handlers"
	"github.com/stillpoint/junction/pkg/router"
)

// Handler exposes note operations as routes.
type Handler struct {
	system System
	logger *slog.Logger
}

// NewHandler creates a handler over the given note system.
func NewHandler(system System, logger *slog.Logger) *Handler {
	return &Handler{
		system: system,
		logger: logger,
	}
}

// Register binds the note routes onto the table. It fails on the first
// registration error, leaving startup to abort.
func (h *Handler) Register(table *router.Table) error {
	routes := []struct {
		method  string
		pattern string
		handler router.Handler
	}{
		{http.MethodGet, "/notes", h.List},
		{http.MethodPost, "/notes", h.Create},
		{http.MethodGet, "/notes/{id}", h.Get},
		{http.MethodDelete, "/notes/{id}", h.Delete},
	}

	for _, r := range routes {
		if err := table.Register(r.method, r.pattern, r.handler); err != nil {
			return fmt.Errorf("notes: %w", err)
		}
	}
	return nil
}

// List returns every stored note.
func (h *Handler) List(ctx context.Context, req *router.Request, params router.Params) (*router.Response, error) {
	return handlers.JSON(http.StatusOK, h.system.List())
}

// Get returns the note identified by the id path parameter.
func (h *Handler) Get(ctx context.Context, req *router.Request, params router.Params) (*router.Response, error) {
	note, err := h.system.Get(params["id"])
	if err != nil {
		return handlers.Error(MapHTTPStatus(err), err), nil
	}
	return handlers.JSON(http.StatusOK, note)
}

type createNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Create stores a new note from the JSON request body.
func (h *Handler) Create(ctx context.Context, req *router.Request, params router.Params) (*router.Response, error) {
	var body createNoteRequest
	if err := json.Unmarshal(req.Body, &body); err != nil {
		return handlers.Error(http.StatusBadRequest, fmt.Errorf("decode note: %w", err)), nil
	}

	note, err := h.system.Create(body.Title, body.Body)
	if err != nil {
		return handlers.Error(MapHTTPStatus(err), err), nil
	}

	h.logger.Debug("note created", "id", note.ID)
	return handlers.JSON(http.StatusCreated, note)
}

// Delete removes the note identified by the id path parameter.
func (h *Handler) Delete(ctx context.Context, req *router.Request, params router.Params) (*router.Response, error) {
	if err := h.system.Delete(params["id"]); err != nil {
		return handlers.Error(MapHTTPStatus(err), err), nil
	}
	return handlers.NoContent(), nil
}
