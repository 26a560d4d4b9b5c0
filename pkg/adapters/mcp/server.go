package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/internal/logging"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/observability"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocumentURI names the formation document resource.
const DocumentURI = "formation://document"

// Viewer gives read access to a formation that may be replaced or mutated
// concurrently. The HTTP adapter's Server implements it.
type Viewer interface {
	View(fn func(f *formation.Formation))
}

type static struct{ f *formation.Formation }

func (s static) View(fn func(f *formation.Formation)) { fn(s.f) }

// Static wraps a formation that nothing mutates while it is served.
func Static(f *formation.Formation) Viewer {
	return static{f: f}
}

// PositionArgs are the arguments of get_position.
type PositionArgs struct {
	Unum int     `json:"unum"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// PositionsArgs are the arguments of get_positions.
type PositionsArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Position is the target position of one slot.
type Position struct {
	Unum int     `json:"unum" jsonschema_description:"Uniform number 1..11"`
	Role string  `json:"role,omitempty" jsonschema_description:"Role name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// PositionsResult answers get_positions.
type PositionsResult struct {
	Method    string     `json:"method" jsonschema_description:"Formation method"`
	Positions []Position `json:"positions" jsonschema_description:"Target position of every slot"`
}

// Server exposes formation queries as MCP tools.
type Server struct {
	source    Viewer
	metrics   *observability.Metrics
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics counts position queries in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(source Viewer, opts ...Option) *Server {
	s := &Server{
		source:    source,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("formation-mcp", formation.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	positionTool := mcp.NewTool("get_position",
		mcp.WithDescription("Get the target position of one player for a focus point (usually the ball)."),
		mcp.WithNumber("unum", mcp.Required(), mcp.Description("Uniform number 1..11"), mcp.Min(1), mcp.Max(domain.MaxPlayer)),
		mcp.WithNumber("x", mcp.Description("Focus point x, -52.5..52.5")),
		mcp.WithNumber("y", mcp.Description("Focus point y, -34..34")),
		mcp.WithOutputSchema[Position](),
	)
	s.mcpServer.AddTool(positionTool, mcp.NewStructuredToolHandler(s.handlePosition))

	positionsTool := mcp.NewTool("get_positions",
		mcp.WithDescription("Get the target positions of all eleven players for a focus point."),
		mcp.WithNumber("x", mcp.Description("Focus point x, -52.5..52.5")),
		mcp.WithNumber("y", mcp.Description("Focus point y, -34..34")),
		mcp.WithOutputSchema[PositionsResult](),
	)
	s.mcpServer.AddTool(positionsTool, mcp.NewStructuredToolHandler(s.handlePositions))

	s.mcpServer.AddTool(mcp.NewTool("get_roles",
		mcp.WithDescription("Get the role and symmetry table of the formation."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.roles())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode roles: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) countQuery() {
	if s.metrics != nil {
		s.metrics.PositionQueries.WithLabelValues("mcp").Inc()
	}
}

func (s *Server) handlePosition(ctx context.Context, request mcp.CallToolRequest, args PositionArgs) (Position, error) {
	if !domain.ValidUnum(args.Unum) {
		return Position{}, fmt.Errorf("%w: %d", domain.ErrInvalidUnum, args.Unum)
	}
	focus := geom.V(args.X, args.Y)
	if !focus.IsValid() {
		return Position{}, fmt.Errorf("%w: focus must be finite", domain.ErrValidation)
	}
	s.countQuery()

	var out Position
	s.source.View(func(f *formation.Formation) {
		p := f.Position(args.Unum, focus)
		out = Position{Unum: args.Unum, Role: f.RoleName(args.Unum), X: p.X, Y: p.Y}
	})
	return out, nil
}

func (s *Server) handlePositions(ctx context.Context, request mcp.CallToolRequest, args PositionsArgs) (PositionsResult, error) {
	focus := geom.V(args.X, args.Y)
	if !focus.IsValid() {
		return PositionsResult{}, fmt.Errorf("%w: focus must be finite", domain.ErrValidation)
	}
	s.countQuery()

	var out PositionsResult
	s.source.View(func(f *formation.Formation) {
		out.Method = f.MethodName()
		for i, p := range f.Positions(focus, nil) {
			unum := i + 1
			out.Positions = append(out.Positions, Position{Unum: unum, Role: f.RoleName(unum), X: p.X, Y: p.Y})
		}
	})
	return out, nil
}

type role struct {
	Unum int    `json:"unum"`
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
	Ref  int    `json:"ref,omitempty"`
}

func (s *Server) roles() []role {
	var out []role
	s.source.View(func(f *formation.Formation) {
		table := f.Roles()
		table.Each(func(unum int, r domain.Role) {
			out = append(out, role{Unum: unum, Name: r.Name, Type: r.Type.Kind().String(), Ref: r.Type.Ref()})
		})
	})
	return out
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DocumentURI, "Formation Document",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		var doc []byte
		var err error
		s.source.View(func(f *formation.Formation) {
			doc, err = f.Encode()
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode formation: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DocumentURI,
				MIMEType: "text/plain",
				Text:     string(doc),
			},
		}, nil
	})
}
