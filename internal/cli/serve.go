package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brickuv/pkg/buildinfo"
	"github.com/matzehuels/brickuv/pkg/cache"
	brickerrors "github.com/matzehuels/brickuv/pkg/errors"
	"github.com/matzehuels/brickuv/pkg/observability"
	"github.com/matzehuels/brickuv/pkg/pipeline"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool
	var cacheScope string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the unwrap pipeline as an HTTP API",
		Long: `Serve starts an HTTP server with a JSON API around the unwrap pipeline.

Endpoints:
  GET  /healthz      liveness probe with version info
  POST /api/unwrap   unwrap an inline OBJ mesh, returns layout and artifacts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			if cacheScope != "" {
				// Isolate this server's entries in a shared redis/mongo cache.
				runner.Keyer = cache.NewScopedKeyer(runner.Keyer, cacheScope+":")
			}
			return c.serve(cmd.Context(), addr, runner)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout/artifact cache")
	cmd.Flags().StringVar(&cacheScope, "cache-scope", "", "prefix for cache keys, isolating this server's entries")

	return cmd
}

// serve runs the HTTP server until ctx is cancelled.
func (c *CLI) serve(ctx context.Context, addr string, runner *pipeline.Runner) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(c.logRequests)

	r.Get("/healthz", handleHealth)
	r.Post("/api/unwrap", handleUnwrap(runner))

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// logRequests logs each request and reports it through the HTTP hooks.
func (c *CLI) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(ctx, r.Method, r.URL.Path, ww.Status(), elapsed)
		c.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed.Round(time.Millisecond))
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// unwrapResponse is the JSON body returned by the unwrap endpoint.
type unwrapResponse struct {
	Layout     json.RawMessage   `json:"layout"`
	LayoutHash string            `json:"layout_hash"`
	MeshHash   string            `json:"mesh_hash"`
	Stats      apiStats          `json:"stats"`
	Artifacts  map[string][]byte `json:"artifacts,omitempty"`
	Cached     bool              `json:"cached"`
}

type apiStats struct {
	Faces    int    `json:"faces"`
	Selected int    `json:"selected"`
	Islands  int    `json:"islands"`
	Duration string `json:"duration"`
}

// handleUnwrap decodes pipeline options from the request body and runs the
// full pipeline. The mesh must be supplied inline via the obj field.
func handleUnwrap(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts pipeline.Options
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if opts.OBJ == "" {
			writeError(w, http.StatusBadRequest, "obj field is required")
			return
		}
		// Server mode never reads local files.
		opts.Input = ""

		start := time.Now()
		result, err := runner.Execute(r.Context(), opts)
		if err != nil {
			observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
			writeError(w, statusFor(err), brickerrors.UserMessage(err))
			return
		}

		layoutJSON := result.Artifacts[pipeline.FormatJSON]
		if layoutJSON == nil {
			layoutJSON, _ = json.Marshal(result.Layout)
		}

		artifacts := make(map[string][]byte)
		for format, data := range result.Artifacts {
			if format != pipeline.FormatJSON {
				artifacts[format] = data
			}
		}

		writeJSON(w, http.StatusOK, unwrapResponse{
			Layout:     layoutJSON,
			LayoutHash: result.LayoutHash,
			MeshHash:   result.MeshHash,
			Stats: apiStats{
				Faces:    result.Stats.FaceCount,
				Selected: result.Stats.SelectedCount,
				Islands:  result.Stats.IslandCount,
				Duration: time.Since(start).Round(time.Millisecond).String(),
			},
			Artifacts: artifacts,
			Cached:    result.CacheInfo.LayoutHit,
		})
	}
}

// statusFor maps pipeline error codes to HTTP status codes.
func statusFor(err error) int {
	switch brickerrors.GetCode(err) {
	case brickerrors.ErrCodeInvalidInput,
		brickerrors.ErrCodeInvalidParams,
		brickerrors.ErrCodeInvalidMesh,
		brickerrors.ErrCodeInvalidFormat,
		brickerrors.ErrCodeFaceNotSelected,
		brickerrors.ErrCodeEmptySelection:
		return http.StatusBadRequest
	case brickerrors.ErrCodeNotFound, brickerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
