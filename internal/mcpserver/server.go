package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/phuslu/log"

	"github.com/mcpcreator-labs/mcp-creator/internal/logging"
	"github.com/mcpcreator-labs/mcp-creator/internal/packaging"
	"github.com/mcpcreator-labs/mcp-creator/internal/profile"
	"github.com/mcpcreator-labs/mcp-creator/internal/pypi"
	"github.com/mcpcreator-labs/mcp-creator/internal/runner"
	"github.com/mcpcreator-labs/mcp-creator/internal/setupcheck"
	"github.com/mcpcreator-labs/mcp-creator/internal/vcs"
)

// Name is the server name reported during initialization.
const Name = "mcp-creator"

// Server holds the collaborators behind the MCP tools.
type Server struct {
	version     string
	logger      *log.Logger
	runner      runner.Runner
	registryURL string
	outputDir   string

	profiles *profile.Store
	pypi     *pypi.Client
	packager *packaging.Packager
	github   *vcs.Publisher
	setup    *setupcheck.Checker

	mcp *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Tool calls log through a child carrying a
// request_id.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRunner sets the process runner used by build, publish, GitHub
// setup and the environment check.
func WithRunner(r runner.Runner) Option {
	return func(s *Server) { s.runner = r }
}

// WithProfileStore sets where the creator profile lives.
func WithProfileStore(st *profile.Store) Option {
	return func(s *Server) { s.profiles = st }
}

// WithPyPIClient sets the name-availability client.
func WithPyPIClient(c *pypi.Client) Option {
	return func(s *Server) { s.pypi = c }
}

// WithRegistryURL points name checks and publishing at another index.
func WithRegistryURL(u string) Option {
	return func(s *Server) { s.registryURL = u }
}

// WithOutputDir sets the fallback parent directory for scaffold_server.
func WithOutputDir(dir string) Option {
	return func(s *Server) { s.outputDir = dir }
}

// New builds the server and registers every tool.
func New(version string, opts ...Option) (*Server, error) {
	s := &Server{version: version}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)

	if s.runner == nil {
		s.runner = runner.New(runner.WithLogger(s.logger))
	}
	if s.profiles == nil {
		st, err := profile.DefaultStore()
		if err != nil {
			return nil, fmt.Errorf("resolving profile store: %w", err)
		}
		s.profiles = st
	}
	if s.pypi == nil {
		s.pypi = pypi.New(pypi.WithBaseURL(s.registryURL), pypi.WithLogger(s.logger))
	}
	s.packager = packaging.New(s.runner, packaging.WithRegistryURL(s.registryURL), packaging.WithLogger(s.logger))
	s.github = vcs.New(s.runner, vcs.WithLogger(s.logger))
	s.setup = setupcheck.New(s.runner)

	s.mcp = server.NewMCPServer(Name, version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.mcp.AddTools(s.Tools()...)
	return s, nil
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// ServeStdio speaks MCP over in/out until ctx is cancelled or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info().Str("transport", "stdio").Str("version", s.version).Msg("mcp server starting")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// ServeHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.mcp, server.WithStateLess(true))
	s.logger.Info().Str("transport", "http").Str("addr", addr).Str("version", s.version).Msg("mcp server starting")

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http transport: %w", err)
		}
		return nil
	}
}

// handlerFunc returns a value that is encoded as the JSON tool result. A
// returned error becomes an MCP tool error.
type handlerFunc func(ctx context.Context, req mcp.CallToolRequest, l *log.Logger) (any, error)

func (s *Server) wrap(name string, h handlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		l := logging.WithRequestID(s.logger, uuid.NewString())
		start := time.Now()

		out, err := h(ctx, req, l)
		if err != nil {
			l.Warn().Str("tool", name).Err(err).Msg("tool call rejected")
			return mcp.NewToolResultError(err.Error()), nil
		}

		body, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding %s result: %w", name, err)
		}
		l.Info().Str("tool", name).Dur("elapsed", time.Since(start)).Msg("tool call")
		return mcp.NewToolResultText(string(body)), nil
	}
}
