package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rickgao/disclosure-data/internal/api"
	"github.com/rickgao/disclosure-data/internal/links"
	"github.com/rickgao/disclosure-data/internal/model"
	"github.com/rickgao/disclosure-data/internal/pipeline"
	"github.com/rickgao/disclosure-data/internal/render"
	"github.com/rickgao/disclosure-data/internal/version"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config file (default: environment only)")
	addr := fs.String("addr", "", "listen address (overrides server.addr)")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := newLogger(os.Stdout, cfg.Logging, *debug)
	slog.SetDefault(logger)

	logger.Info("starting tracker",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	ctx, cancel := signalContext(logger)
	defer cancel()

	d, err := newDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	for _, kind := range model.DatasetKinds {
		if err := d.service.CheckCredentials(kind); err != nil {
			logger.Warn("dataset unavailable", "dataset", kind.String(), "error", err)
		}
	}

	var dbPing func(context.Context) error
	if d.pool != nil {
		dbPing = d.pool.Ping
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(d.service, dbPing),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}

	logger.Info("tracker stopped")
	return nil
}

// lookupService is the part of pipeline.Service the router needs.
type lookupService interface {
	Lookup(ctx context.Context, kind model.DatasetKind, raw string) pipeline.Result
	CheckCredentials(kinds ...model.DatasetKind) error
}

// newRouter builds the HTTP API. dbPing may be nil when the audit log is off.
func newRouter(svc lookupService, dbPing func(context.Context) error) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Version    version.Info   `json:"version"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Version:    version.Get(),
			Components: make(map[string]any),
		}

		for _, kind := range model.DatasetKinds {
			if err := svc.CheckCredentials(kind); err != nil {
				health.Status = "degraded"
				health.Components[kind.String()] = "missing credential"
			} else {
				health.Components[kind.String()] = "configured"
			}
		}

		if dbPing != nil {
			if err := dbPing(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["audit_db"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["audit_db"] = "connected"
			}
		}

		code := http.StatusOK
		if health.Status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/lookup/{kind}", func(w http.ResponseWriter, r *http.Request) {
			kind, err := model.ParseDatasetKind(chi.URLParam(r, "kind"))
			if err != nil {
				writeError(w, http.StatusNotFound, err)
				return
			}
			res := svc.Lookup(r.Context(), kind, r.URL.Query().Get("id"))
			writeJSON(w, lookupStatus(res), render.Lookup(res))
		})

		r.Get("/links/{kind}", func(w http.ResponseWriter, r *http.Request) {
			kind, err := model.ParseDatasetKind(chi.URLParam(r, "kind"))
			if err != nil {
				writeError(w, http.StatusNotFound, err)
				return
			}
			writeJSON(w, http.StatusOK, linksFor(kind, r.URL.Query().Get("id")))
		})

		r.Get("/resources", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"resources":      links.Resources(),
				"popular_filers": links.PopularFilers(),
			})
		})
	})

	return r
}

// lookupStatus maps a lookup result to an HTTP status code.
func lookupStatus(res pipeline.Result) int {
	if res.Err == nil {
		return http.StatusOK
	}
	switch res.Err.Stage {
	case pipeline.StageCredentials:
		return http.StatusServiceUnavailable
	case pipeline.StageBuild:
		return http.StatusBadRequest
	}
	switch res.Outcome {
	case api.OutcomeTransportError:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
