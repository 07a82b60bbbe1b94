package daemon

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"go.uber.org/zap"

	"github.com/Zayedtasnim7/se333-mcp-agent/internal/config"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/mcpserver"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/observability"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc/toolcall"
	toolrpc "github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc/tools"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/tools"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server hosts the tool daemon endpoints (health/metrics/schemas) and the
// tool invocation transports.
type Server struct {
	cfg        *config.Config
	logger     *zap.Logger
	dispatcher *toolcall.Dispatcher
	metrics    *observability.Metrics
	tools      *tools.Registry
}

// NewServer constructs a daemon instance.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	metrics := observability.NewMetrics()

	guard, err := tools.NewPathGuard(cfg.Project.Dir)
	if err != nil {
		return nil, fmt.Errorf("build path guard: %w", err)
	}

	term := &tools.Terminal{
		WorkingDir:     guard.BaseDir,
		Allowed:        cfg.Tools.AllowedCommands,
		Denied:         cfg.Tools.DeniedCommands,
		Timeout:        time.Duration(cfg.Tools.ExecTimeoutSeconds) * time.Second,
		AllowExecution: cfg.Tools.AllowExec,
	}

	gitTool := tools.NewGitTool(guard, cfg.Git.Command, cfg.Git.PRCommand, cfg.Git.Remote)
	gitTool.AllowExec = cfg.Tools.AllowGit
	gitTool.AllowPush = cfg.Git.AllowPush
	gitTool.CoveragePath = cfg.Project.CoverageReport

	mavenTool := tools.NewMavenTool(guard, term, cfg.Maven.Command, cfg.Maven.Args)
	mavenTool.Timeout = time.Duration(cfg.Maven.TimeoutSeconds) * time.Second

	registry := tools.NewRegistry(
		tools.NewJavaScanner(guard),
		tools.NewJUnitGenerator(guard),
		mavenTool,
		tools.NewCoverageTool(guard, cfg.Project.CoverageReport),
		gitTool,
	)

	dispatcher := toolcall.NewDispatcher(registry, metrics, logger)

	return &Server{cfg: cfg, logger: logger, dispatcher: dispatcher, metrics: metrics, tools: registry}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/metrics", s.metricsHandler)
	mux.Handle("/tools/schemas", toolrpc.SchemaHandler{Registry: s.tools})
	mux.Handle("/tools/call", toolcall.NewHandler(s.dispatcher, s.metrics))

	transport := strings.ToLower(strings.TrimSpace(s.cfg.Server.Transport))
	if transport != "http" {
		path, handler := toolcall.NewConnectHandler(s.dispatcher, s.metrics)
		mux.Handle(path, handler)
	}

	if s.cfg.Server.MCPEnabled {
		mux.Handle("/mcp", mcpserver.NewHTTPHandler(mcpserver.New(s.dispatcher, s.tools)))
	}

	handler := http.Handler(mux)
	if transport != "http" {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting se333 tool daemon",
			zap.String("addr", s.cfg.Server.Addr),
			zap.String("project_dir", s.cfg.Project.Dir),
			zap.Bool("mcp_enabled", s.cfg.Server.MCPEnabled))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down se333 tool daemon")
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Server.MetricsEnabled {
		http.NotFound(w, r)
		return
	}

	promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
