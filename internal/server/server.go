package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ironsheep/listvision-mcp/internal/imaging"
	"github.com/ironsheep/listvision-mcp/internal/rows"
	"github.com/ironsheep/listvision-mcp/internal/vision"
)

// ChangeNotification is the method of the notification sent after every
// list mutation.
const ChangeNotification = "notifications/rows/changed"

// Server handles MCP protocol communication
type Server struct {
	in      io.Reader
	out     io.Writer
	logger  *slog.Logger
	version string

	cache   *imaging.ImageCache
	rows    *rows.Controller
	session *vision.Session

	// pending holds change notifications raised while handling the
	// current request. They are written before its response.
	pending []MCPNotification
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// ChangeParams are the params of a ChangeNotification.
type ChangeParams struct {
	Change rows.Change `json:"change"`
	Count  int         `json:"count"`
}

// Option configures a Server.
type Option func(*Server)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) { s.in, s.out = in, out }
}

// WithLogger sets the server logger. It must not write to the output stream.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithController serves c instead of an empty list.
func WithController(c *rows.Controller) Option {
	return func(s *Server) { s.rows = c }
}

// WithDetector replaces the built-in detection backends.
func WithDetector(d vision.Detector) Option {
	return func(s *Server) { s.session = vision.NewSession(d) }
}

// WithCache shares an image cache with other components.
func WithCache(c *imaging.ImageCache) Option {
	return func(s *Server) { s.cache = c }
}

// WithVersion sets the version reported by initialize.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a new MCP server instance
func New(opts ...Option) *Server {
	s := &Server{
		in:      os.Stdin,
		out:     os.Stdout,
		logger:  slog.New(slog.DiscardHandler),
		version: "0.1.0",
		cache:   imaging.NewImageCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rows == nil {
		s.rows = rows.NewController(nil)
	}
	if s.session == nil {
		detector := vision.New(vision.WithLogger(s.logger))
		vision.RegisterDefaults(detector, vision.DefaultBackendOptions())
		s.session = vision.NewSession(detector)
	}
	s.rows.Subscribe(rows.ObserverFunc(s.queueChange))
	return s
}

func (s *Server) queueChange(c rows.Change) {
	s.pending = append(s.pending, MCPNotification{
		JSONRPC: "2.0",
		Method:  ChangeNotification,
		Params:  ChangeParams{Change: c, Count: s.rows.RowCount()},
	})
}

// Run reads requests until the input ends or ctx is cancelled. Requests
// are handled one at a time, in order.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	// Increase buffer size for large requests (base64 images)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	encoder := json.NewEncoder(s.out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", "error", err)
			if err := encoder.Encode(s.errorResponse(nil, -32700, "Parse error", err.Error())); err != nil {
				return fmt.Errorf("encode response: %w", err)
			}
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if err := s.flush(encoder, resp); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// flush writes queued notifications, then resp if there is one.
func (s *Server) flush(encoder *json.Encoder, resp *MCPResponse) error {
	pending := s.pending
	s.pending = nil
	for _, n := range pending {
		if err := encoder.Encode(n); err != nil {
			return fmt.Errorf("encode notification: %w", err)
		}
	}
	if resp != nil {
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}
	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "listvision-mcp",
				"version": s.version,
			},
		},
	}
}

// handleToolsList returns the tool catalog.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}
