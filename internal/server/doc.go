// Package server exposes the row list and the detection session over the
// MCP (Model Context Protocol).
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// List Operations:
//   - rows_list: Rows, count and editing state
//   - rows_append: Append a row
//   - rows_remove: Remove a row by index or label
//   - rows_move: Move a row to a new index
//   - rows_commit: Apply a delete or insert edit to a row
//   - rows_set_editing: Toggle editing mode
//
// Detection Operations:
//   - image_select: Choose the image to analyze (path or base64)
//   - image_detect: Classify, find rectangles or read text
//   - image_session: Current image and last result
//
// # Change Notifications
//
// Every successful list mutation produces a notifications/rows/changed
// notification carrying the change and the new row count. Notifications
// raised by a tool call are written before that call's response, so a
// client sees the list change before it sees the call complete. A move
// to the same index changes nothing and sends nothing.
//
// # Error Handling
//
// Tool execution errors, including out-of-range row indices, are returned
// as JSON-RPC error responses with code -32000 and the Go error string as
// data. Malformed arguments use -32602.
//
// Detection failures are different: image_detect succeeds and reports the
// failure in its result's "error" and "report" fields, the same text a
// user would see.
//
// # Usage
//
//	srv := server.New(server.WithController(c), server.WithLogger(logger))
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
package server
