package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/stillpoint/junction/internal/lifecycle"
	"github.com/stillpoint/junction/internal/notes"
	"github.com/stillpoint/junction/pkg/handlers"
	"github.com/stillpoint/junction/pkg/router"
)

// registerRoutes is the registration step: it populates the table before
// the dispatcher freezes it. Any registration error aborts startup.
func registerRoutes(table *router.Table, logger *slog.Logger, lc *lifecycle.Coordinator) error {
	noteHandler := notes.NewHandler(notes.New(), logger)
	if err := noteHandler.Register(table); err != nil {
		return err
	}

	if err := table.Register(http.MethodGet, "/healthz", handleHealthCheck); err != nil {
		return err
	}

	if err := table.Register(http.MethodGet, "/readyz", handleReadinessCheck(lc)); err != nil {
		return err
	}

	// catch-all echo of the requested path, exercising the trailing wildcard
	return table.Register(http.MethodGet, "/echo/{path...}", handleEcho)
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(ctx context.Context, req *router.Request, params router.Params) (*router.Response, error) {
	return handlers.Text(http.StatusOK, "OK"), nil
}

func handleReadinessCheck(ready lifecycle.ReadinessChecker) router.Handler {
	return func(ctx context.Context, req *router.Request, params router.Params) (*router.Response, error) {
		if !ready.Ready() {
			return handlers.Text(http.StatusServiceUnavailable, "NOT READY"), nil
		}
		return handlers.Text(http.StatusOK, "READY"), nil
	}
}

func handleEcho(ctx context.Context, req *router.Request, params router.Params) (*router.Response, error) {
	return handlers.JSON(http.StatusOK, map[string]string{
		"id":   req.ID,
		"path": params["path"],
	})
}
