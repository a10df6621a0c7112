package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/listvision-mcp/internal/rows"
)

// message is any line the server writes: response or notification.
type message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	Result  json.RawMessage `json:"result"`
	Error   *MCPError       `json:"error"`
}

// runLines runs s to the end of its input and decodes every line it wrote.
func runLines(t *testing.T, s *Server, out *bytes.Buffer) []message {
	t.Helper()
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var msgs []message
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var m message
		if err := json.Unmarshal(scanner.Bytes(), &m); err != nil {
			t.Fatalf("bad output line %q: %v", scanner.Text(), err)
		}
		msgs = append(msgs, m)
	}
	return msgs
}

func newTestServer(input string, seed ...string) (*Server, *bytes.Buffer) {
	out := &bytes.Buffer{}
	s := New(
		WithIO(strings.NewReader(input), out),
		WithController(rows.NewController(seed)),
	)
	return s, out
}

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.rows == nil || s.session == nil {
		t.Fatal("New() did not initialize rows and session")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestRun_Initialize(t *testing.T) {
	s, out := newTestServer(`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n")
	msgs := runLines(t, s, out)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	var result struct {
		ProtocolVersion string `json:"protocolVersion"`
		ServerInfo      struct {
			Name string `json:"name"`
		} `json:"serverInfo"`
	}
	if err := json.Unmarshal(msgs[0].Result, &result); err != nil {
		t.Fatalf("bad result: %v", err)
	}
	if result.ServerInfo.Name != "listvision-mcp" {
		t.Errorf("serverInfo.name: got %s", result.ServerInfo.Name)
	}
	if result.ProtocolVersion != "2024-11-05" {
		t.Errorf("protocolVersion: got %s", result.ProtocolVersion)
	}
}

func TestRun_SkipsNotificationsAndBlankLines(t *testing.T) {
	input := "\n" +
		`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n"
	s, out := newTestServer(input)
	msgs := runLines(t, s, out)
	if len(msgs) != 1 {
		t.Fatalf("expected only the ping response, got %d messages", len(msgs))
	}
	if msgs[0].ID != float64(2) {
		t.Errorf("ID: got %v", msgs[0].ID)
	}
}

func TestRun_ParseError(t *testing.T) {
	s, out := newTestServer("{not json\n" + `{"jsonrpc":"2.0","id":3,"method":"ping"}` + "\n")
	msgs := runLines(t, s, out)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Error == nil || msgs[0].Error.Code != -32700 {
		t.Errorf("expected parse error, got %+v", msgs[0].Error)
	}
	if msgs[1].Error != nil {
		t.Errorf("ping after parse error failed: %+v", msgs[1].Error)
	}
}

func TestRun_MethodNotFound(t *testing.T) {
	s, out := newTestServer(`{"jsonrpc":"2.0","id":4,"method":"resources/list"}` + "\n")
	msgs := runLines(t, s, out)
	if msgs[0].Error == nil || msgs[0].Error.Code != -32601 {
		t.Fatalf("expected -32601, got %+v", msgs[0].Error)
	}
}

func TestRun_ToolsList(t *testing.T) {
	s, out := newTestServer(`{"jsonrpc":"2.0","id":5,"method":"tools/list"}` + "\n")
	msgs := runLines(t, s, out)

	var result struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(msgs[0].Result, &result); err != nil {
		t.Fatalf("bad result: %v", err)
	}
	if len(result.Tools) != len(GetToolDefinitions()) {
		t.Errorf("tool count: got %d, want %d", len(result.Tools), len(GetToolDefinitions()))
	}
}

func TestRun_NotificationsPrecedeResponse(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"rows_move","arguments":{"from":0,"to":2}}}` + "\n"
	s, out := newTestServer(input, "a", "b", "c", "d")
	msgs := runLines(t, s, out)
	if len(msgs) != 2 {
		t.Fatalf("expected notification and response, got %d messages", len(msgs))
	}

	if msgs[0].Method != ChangeNotification {
		t.Fatalf("first message: got method %q, want %q", msgs[0].Method, ChangeNotification)
	}
	if msgs[0].ID != nil {
		t.Errorf("notification carries an id: %v", msgs[0].ID)
	}
	var params ChangeParams
	if err := json.Unmarshal(msgs[0].Params, &params); err != nil {
		t.Fatalf("bad params: %v", err)
	}
	want := ChangeParams{Change: rows.Change{Kind: rows.Moved, Index: 2, From: 0, To: 2}, Count: 4}
	if params != want {
		t.Errorf("params: got %+v, want %+v", params, want)
	}

	if msgs[1].ID != float64(1) || msgs[1].Error != nil {
		t.Errorf("response: got %+v", msgs[1])
	}
}
