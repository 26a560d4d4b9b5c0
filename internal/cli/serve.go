package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/formation"
	httpAdapter "github.com/aretw0/formation/pkg/adapters/http"
	"github.com/aretw0/formation/pkg/adapters/mcp"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// ServeOptions configures Serve.
type ServeOptions struct {
	Path  string
	Addr  string // defaults to the configured http.addr
	Watch bool   // reload the document when it changes on disk
}

// newHTTPServer wraps f in the HTTP adapter with env's registry, metrics and logger.
func newHTTPServer(env *Env, f *formation.Formation) *httpAdapter.Server {
	opts := []httpAdapter.Option{
		httpAdapter.WithRegistry(env.Registry),
		httpAdapter.WithFormationOptions(env.FormationOptions()...),
		httpAdapter.WithLogger(env.Logger),
	}
	if env.Metrics != nil {
		opts = append(opts, httpAdapter.WithMetrics(env.Metrics), httpAdapter.WithGatherer(env.Gatherer))
	}
	return httpAdapter.NewServer(f, opts...)
}

// Serve runs the HTTP API over the document at path until ctx is done.
func Serve(ctx context.Context, env *Env, opts ServeOptions) error {
	f, err := env.Load(opts.Path)
	if err != nil {
		return err
	}
	if opts.Addr == "" {
		opts.Addr = env.Config.HTTP.Addr
	}

	api := newHTTPServer(env, f)
	if opts.Watch {
		if err := reloadOnChange(ctx, env, opts.Path, api.Replace); err != nil {
			return err
		}
		printSystemMessage(env.Out, "Watching '%s' for changes.", opts.Path)
	}

	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: api.Handler(),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		env.Logger.Info("Starting formation server", "address", srv.Addr, "method", f.MethodName())
		printSystemMessage(env.Out, "Serving '%s' on %s.", opts.Path, srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		env.Logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			env.Logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(env.Out, "Server stopped.")
		return nil
	}
}

// Transports supported by ServeMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions configures ServeMCP.
type MCPOptions struct {
	Path      string
	Transport string
	Addr      string // SSE only
	BaseURL   string // SSE only, defaults to http://localhost<Addr>
	Watch     bool
}

// ServeMCP exposes the document at path as MCP tools.
func ServeMCP(ctx context.Context, env *Env, opts MCPOptions) error {
	f, err := env.Load(opts.Path)
	if err != nil {
		return err
	}

	// The HTTP adapter owns locking and replacement; MCP reads through it.
	api := newHTTPServer(env, f)
	if opts.Watch {
		if err := reloadOnChange(ctx, env, opts.Path, api.Replace); err != nil {
			return err
		}
	}

	mcpOpts := []mcp.Option{mcp.WithLogger(env.Logger)}
	if env.Metrics != nil {
		mcpOpts = append(mcpOpts, mcp.WithMetrics(env.Metrics))
	}
	srv := mcp.NewServer(api, mcpOpts...)

	switch opts.Transport {
	case "", TransportStdio:
		env.Logger.Info("Starting formation MCP server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		if opts.Addr == "" {
			opts.Addr = env.Config.HTTP.Addr
		}
		if opts.BaseURL == "" {
			opts.BaseURL = "http://localhost" + opts.Addr
		}
		err := srv.ServeSSE(ctx, opts.Addr, opts.BaseURL)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		env.Logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: %s, %s)", opts.Transport, TransportStdio, TransportSSE)
	}
}
