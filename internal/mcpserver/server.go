package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akandula/DocChatAPI/internal/session"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

const Version = "1.0.0"

// Server exposes document processing and question answering as MCP tools so
// agent clients can drive a chat session over stdio.
type Server struct {
	manager *session.Manager
	server  *mcp.Server
	logger  *logx.Logger
}

func NewServer(manager *session.Manager) *Server {
	impl := &mcp.Implementation{
		Name:    "docchat",
		Version: Version,
	}

	s := &Server{
		manager: manager,
		server:  mcp.NewServer(impl, nil),
		logger:  logx.NewLogger("mcp_server"),
	}
	s.registerTools()
	return s
}

// Run serves over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
