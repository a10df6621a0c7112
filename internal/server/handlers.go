package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/listvision-mcp/internal/imaging"
	"github.com/ironsheep/listvision-mcp/internal/logging"
	"github.com/ironsheep/listvision-mcp/internal/rows"
	"github.com/ironsheep/listvision-mcp/internal/vision"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "rows_move", "image_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errInvalidArgs marks argument errors so they map to -32602.
var errInvalidArgs = errors.New("invalid arguments")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors, out-of-range row indices included, return a
// JSON-RPC error response with code -32000. Detection failures are not
// errors here; image_detect reports them inside its result.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	ctx, callID := logging.WithCallID(ctx)
	logger := s.logger.With("tool", params.Name)
	logger.DebugContext(ctx, "tool call")

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		logger.WarnContext(ctx, "tool failed", "error", err)
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
			"_meta": map[string]interface{}{"callId": callID},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// List Operations
	case "rows_list":
		return s.handleRowsList()
	case "rows_append":
		return s.handleRowsAppend(args)
	case "rows_remove":
		return s.handleRowsRemove(args)
	case "rows_move":
		return s.handleRowsMove(args)
	case "rows_commit":
		return s.handleRowsCommit(args)
	case "rows_set_editing":
		return s.handleRowsSetEditing(args)

	// Detection Operations
	case "image_select":
		return s.handleImageSelect(args)
	case "image_detect":
		return s.handleImageDetect(ctx, args)
	case "image_session":
		return s.session.State(), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === List Handlers ===

type rowsResult struct {
	Rows    []string `json:"rows"`
	Count   int      `json:"count"`
	Editing bool     `json:"editing"`
}

func (s *Server) snapshot() rowsResult {
	return rowsResult{Rows: s.rows.Rows(), Count: s.rows.RowCount(), Editing: s.rows.Editing()}
}

func (s *Server) handleRowsList() (interface{}, error) {
	return s.snapshot(), nil
}

type rowsAppendArgs struct {
	Label string `json:"label"`
}

func (s *Server) handleRowsAppend(args json.RawMessage) (interface{}, error) {
	var a rowsAppendArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	index, err := s.rows.Append(a.Label)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"index": index, "rows": s.snapshot()}, nil
}

type rowsRemoveArgs struct {
	Index *int   `json:"index"`
	Label string `json:"label"`
}

func (s *Server) handleRowsRemove(args json.RawMessage) (interface{}, error) {
	var a rowsRemoveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	index := -1
	switch {
	case a.Index != nil:
		index = *a.Index
	case a.Label != "":
		index = s.rows.IndexOf(a.Label)
		if index < 0 {
			if _, suggestion, ok := s.rows.Suggest(a.Label); ok {
				return nil, fmt.Errorf("no row labeled %q (did you mean %q?)", a.Label, suggestion)
			}
			return nil, fmt.Errorf("no row labeled %q", a.Label)
		}
	default:
		return nil, fmt.Errorf("%w: index or label is required", errInvalidArgs)
	}

	removed, err := s.rows.RemoveAt(index)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"removed": removed, "index": index, "rows": s.snapshot()}, nil
}

type rowsMoveArgs struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

func (s *Server) handleRowsMove(args json.RawMessage) (interface{}, error) {
	var a rowsMoveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.From == nil || a.To == nil {
		return nil, fmt.Errorf("%w: from and to are required", errInvalidArgs)
	}
	if err := s.rows.MoveTo(*a.From, *a.To); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

type rowsCommitArgs struct {
	Edit  rows.EditKind `json:"edit"`
	Index *int          `json:"index"`
}

func (s *Server) handleRowsCommit(args json.RawMessage) (interface{}, error) {
	var a rowsCommitArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Index == nil {
		return nil, fmt.Errorf("%w: index is required", errInvalidArgs)
	}
	if err := s.rows.OnCommit(a.Edit, *a.Index); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

type rowsSetEditingArgs struct {
	Editing bool `json:"editing"`
}

func (s *Server) handleRowsSetEditing(args json.RawMessage) (interface{}, error) {
	var a rowsSetEditingArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	s.rows.SetEditing(a.Editing)
	return s.snapshot(), nil
}

// === Detection Handlers ===

type imageSelectArgs struct {
	Path string `json:"path"`
	Data string `json:"data"`
}

type imageSelectResult struct {
	Source string `json:"source"`
	*imaging.ImageInfo
}

func (s *Server) handleImageSelect(args json.RawMessage) (interface{}, error) {
	var a imageSelectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var (
		img    image.Image
		info   *imaging.ImageInfo
		source string
		err    error
	)
	switch {
	case a.Path != "":
		if img, err = s.cache.Load(a.Path); err != nil {
			return nil, err
		}
		if info, err = imaging.LoadImageInfo(s.cache, a.Path); err != nil {
			return nil, err
		}
		source = a.Path
	case a.Data != "":
		var format string
		if img, format, err = imaging.DecodeBase64(a.Data); err != nil {
			return nil, err
		}
		info = imaging.Describe(img, format)
		source = "inline"
	default:
		return nil, fmt.Errorf("%w: path or data is required", errInvalidArgs)
	}

	s.session.Select(img, source)
	return imageSelectResult{Source: source, ImageInfo: info}, nil
}

type imageDetectArgs struct {
	Kind     string `json:"kind"`
	Annotate bool   `json:"annotate"`
	Color    string `json:"color"`
}

type imageDetectResult struct {
	Kind       vision.Kind          `json:"kind"`
	Detections []vision.Detection   `json:"detections"`
	Boxes      []vision.BoundingBox `json:"boxes"`
	Report     string               `json:"report"`
	Error      string               `json:"error,omitempty"`
	Annotated  *imaging.Encoded     `json:"annotated,omitempty"`
}

func (s *Server) handleImageDetect(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageDetectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	kind, err := vision.ParseKind(a.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidArgs, err)
	}

	detections, err := s.session.Run(ctx, kind)
	state := s.session.State()
	result := imageDetectResult{
		Kind:       kind,
		Detections: detections,
		Boxes:      state.Boxes,
		Report:     vision.Report(kind, detections, err),
	}
	if result.Detections == nil {
		result.Detections = []vision.Detection{}
	}
	if err != nil {
		s.logger.InfoContext(ctx, "detection failed", "kind", kind, "error", err)
		result.Error = err.Error()
	}
	if a.Annotate && err == nil && len(state.Boxes) > 0 {
		if result.Annotated, err = annotate(s.session.Image(), state.Boxes, a.Color); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// annotate renders boxes over img as base64 PNG.
func annotate(img image.Image, boxes []vision.BoundingBox, hexColor string) (*imaging.Encoded, error) {
	if hexColor == "" {
		hexColor = imaging.DefaultBoxColor
	}
	frame := img.Bounds()
	rects := make([]image.Rectangle, len(boxes))
	for i, b := range boxes {
		rects[i] = b.Pixels(frame)
	}
	return imaging.EncodePNG(imaging.Annotate(img, rects, hexColor))
}
