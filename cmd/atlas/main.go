package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Rejean-McCormick/Ariane/pkg/api"
	"github.com/Rejean-McCormick/Ariane/pkg/audit"
	"github.com/Rejean-McCormick/Ariane/pkg/auth"
	"github.com/Rejean-McCormick/Ariane/pkg/config"
	"github.com/Rejean-McCormick/Ariane/pkg/ingest"
	"github.com/Rejean-McCormick/Ariane/pkg/observability"
	"github.com/Rejean-McCormick/Ariane/pkg/query"
	"github.com/Rejean-McCormick/Ariane/pkg/signing"
	"github.com/Rejean-McCormick/Ariane/pkg/store"
	"github.com/Rejean-McCormick/Ariane/pkg/workflow"
)

const version = "1.0.0"

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// startServer is a variable to allow mocking in tests.
var startServer = runServer

// Run dispatches CLI commands. With no command it starts the server.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		return startServer(stderr)
	}

	switch args[1] {
	case "server", "serve":
		return startServer(stderr)
	case "health":
		return runHealthCmd(stdout, stderr)
	case "version", "--version":
		fmt.Fprintf(stdout, "atlas %s\n", version)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		if strings.HasPrefix(args[1], "-") {
			return startServer(stderr)
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Atlas %s\n", version)
	fmt.Fprintln(w, "Storage and query service for UI interaction graphs.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  atlas <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "COMMANDS:")
	fmt.Fprintln(w, "  server     Run the Atlas server (default)")
	fmt.Fprintln(w, "  health     Check server health over HTTP")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Configuration comes from ATLAS_* environment variables and the")
	fmt.Fprintln(w, "optional YAML profile named by ATLAS_PROFILE.")
	fmt.Fprintln(w, "")
}

func runHealthCmd(stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	addr := cfg.Addr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + addr + "/health")
	if err != nil {
		fmt.Fprintf(stderr, "health check failed: %v\n", err)
		return 1
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(stderr, "health check failed: %s\n%s\n", resp.Status, body)
		return 1
	}

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err == nil {
		out, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Fprintf(stdout, "%s\n", out)
	} else {
		fmt.Fprintf(stdout, "%s\n", body)
	}
	return 0
}

func newLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN", "WARNING":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func runServer(stderr io.Writer) int {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	// Validates the signing configuration at startup even though
	// signatures are only produced on demand.
	if cfg.SigningSecret != "" {
		if _, err := signing.New(signing.Config{
			Secret:    cfg.SigningSecret,
			Algorithm: cfg.SigningAlgorithm,
		}); err != nil {
			logger.Error("invalid signing configuration", "error", err)
			return 1
		}
		logger.Info("record signing enabled", "algorithm", cfg.SigningAlgorithm)
	}

	graph := store.NewGraphStore(store.Config{
		MaxContexts:              cfg.MaxContexts,
		MaxStatesPerContext:      cfg.MaxStatesPerContext,
		MaxTransitionsPerContext: cfg.MaxTransitionsPerContext,
	})
	workflows := store.NewWorkflowStore()

	ingestHandler, err := ingest.NewHandler(graph)
	if err != nil {
		logger.Error("failed to init ingest handler", "error", err)
		return 1
	}
	queryHandler := query.NewHandler(graph)
	workflowHandler := workflow.NewHandler(graph, workflows)

	server := api.NewServer(logger, ingestHandler, queryHandler, workflowHandler)

	authn := auth.NewAuthenticator(cfg.APIKeys)
	if cfg.AuthHeader != "" {
		authn.Header = cfg.AuthHeader
	}
	if authn.Enabled() {
		logger.Info("api key authentication enabled", "keys", len(cfg.APIKeys))
	} else {
		logger.Warn("api key authentication disabled, all requests anonymous")
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version
	obsCfg.Environment = cfg.Environment
	if cfg.OTLPEndpoint != "" {
		obsCfg.Enabled = true
		obsCfg.OTLPEndpoint = cfg.OTLPEndpoint
	}
	obs, err := observability.New(ctx, obsCfg)
	if err != nil {
		logger.Error("failed to init observability", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	rateLimiter := api.NewGlobalRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	auditLogger := audit.NewLogger()

	handler := api.Chain(server,
		auth.RequestIDMiddleware,
		auth.CORSMiddleware(cfg.CORSOrigins),
		rateLimiter.Middleware,
		authn.Middleware,
		audit.Middleware(auditLogger),
		obs.Middleware,
		api.LoggingMiddleware(logger),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("atlas server listening", "addr", cfg.Addr, "version", version)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			return 1
		}
		return 0
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			return 1
		}
		return 0
	}
}
