// Package server provides HTTP server configuration and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/remiblancher/certinfo/internal/api/router"
	"github.com/remiblancher/certinfo/internal/api/service"
	"github.com/remiblancher/certinfo/internal/config"
)

// Config holds the server configuration.
type Config struct {
	// Host is the address to bind to (default: all interfaces).
	Host string
	Port int

	// DefaultPort is the TLS port inspected when a request names none.
	DefaultPort int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ConfigFrom derives the server configuration from loaded settings.
func ConfigFrom(c *config.Config) *Config {
	return &Config{
		Host:            c.Serve.Host,
		Port:            c.Serve.Port,
		DefaultPort:     c.Port,
		ReadTimeout:     c.Serve.ReadTimeout,
		WriteTimeout:    c.Serve.WriteTimeout,
		IdleTimeout:     c.Serve.IdleTimeout,
		ShutdownTimeout: c.Serve.ShutdownTimeout,
	}
}

// Address returns the listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server runs the certinfo HTTP API.
type Server struct {
	cfg       *Config
	version   string
	inspector service.Inspector

	// Out receives the startup banner. Nil means os.Stdout.
	Out io.Writer
}

// New creates a new Server.
func New(cfg *Config, version string, inspector service.Inspector) *Server {
	return &Server{cfg: cfg, version: version, inspector: inspector}
}

// Start listens on the configured address and serves until ctx is done or
// SIGINT/SIGTERM is received, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is done. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler: router.New(&router.Config{
			Version:     s.version,
			Inspector:   s.inspector,
			DefaultPort: s.cfg.DefaultPort,
		}),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	s.printStartupInfo(ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ln)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Printf("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}

func (s *Server) printStartupInfo(addr string) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "certinfo API Server")
	_, _ = fmt.Fprintln(out, "===================")
	_, _ = fmt.Fprintf(out, "  Version:  %s\n", s.version)
	_, _ = fmt.Fprintf(out, "  Address:  http://%s\n", addr)
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Endpoints:")
	_, _ = fmt.Fprintln(out, "  GET  /health                       - Health check")
	_, _ = fmt.Fprintln(out, "  GET  /ready                        - Readiness check")
	_, _ = fmt.Fprintln(out, "  GET  /api/openapi.yaml             - OpenAPI specification")
	_, _ = fmt.Fprintln(out, "  GET  /api/v1/certificates/{host}   - Inspect host (?port=N)")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Use Ctrl+C to stop")
	_, _ = fmt.Fprintln(out)
}
