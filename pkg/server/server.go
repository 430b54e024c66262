// Package server wires the HTTP request toolset into an MCP server from a
// single configuration constructed once at startup.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/httpprobe/httpprobe/pkg/httptool"
	"github.com/httpprobe/httpprobe/pkg/tools/mcpserver"
)

// Server is the assembled MCP server with its tools registered.
type Server struct {
	cfg Config
	mcp *mcpserver.Server
}

// New builds a Server from cfg. A nil logger disables logging.
func New(cfg Config, log *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	client := httptool.New(httptool.Options{
		DefaultTimeoutSecs: cfg.HTTP.DefaultTimeoutSecs,
		MaxBodyBytes:       cfg.HTTP.MaxBodyBytes,
		UserAgent:          cfg.HTTP.UserAgent,
		BlockPrivateHosts:  cfg.HTTP.BlockPrivateHosts,
	})

	tb := httptool.NewToolset(client).Tools()

	mcp := mcpserver.New(cfg.Name, cfg.Version, log)
	mcp.Register(tb.Tools()...)

	return &Server{cfg: cfg, mcp: mcp}, nil
}

// Serve runs the MCP server over the given streams until ctx is cancelled or
// the transport closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return s.mcp.Serve(ctx, in, out)
}
