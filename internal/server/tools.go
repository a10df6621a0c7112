package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// List Operations
		{
			Name:        "rows_list",
			Description: "Return the rows of the list in display order, with the row count and whether editing mode is on.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "rows_append",
			Description: "Append a row at the end of the list. Emits a notifications/rows/changed notification.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"label": map[string]interface{}{
						"type":        "string",
						"description": "Text of the new row. Must not be blank.",
					},
				},
				"required": []string{"label"},
			},
		},
		{
			Name:        "rows_remove",
			Description: "Remove one row, by index or by exact label. When the label is not found the error suggests the closest row.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Row to remove (0-based)",
					},
					"label": map[string]interface{}{
						"type":        "string",
						"description": "Label of the row to remove, used when index is omitted",
					},
				},
			},
		},
		{
			Name:        "rows_move",
			Description: "Move the row at 'from' so it ends up at index 'to'. Both indices must be existing rows.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"from": map[string]interface{}{
						"type":        "integer",
						"description": "Current index of the row (0-based)",
					},
					"to": map[string]interface{}{
						"type":        "integer",
						"description": "Index the row has after the move (0-based)",
					},
				},
				"required": []string{"from", "to"},
			},
		},
		{
			Name:        "rows_commit",
			Description: "Commit a row edit the way a list view does: 'delete' removes the row, 'insert' inserts a placeholder row before it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"edit": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"delete", "insert"},
						"description": "Kind of edit",
					},
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Row the edit applies to (0-based)",
					},
				},
				"required": []string{"edit", "index"},
			},
		},
		{
			Name:        "rows_set_editing",
			Description: "Turn editing mode on or off. Rows can only be deleted or moved from the editor while editing.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"editing": map[string]interface{}{
						"type":        "boolean",
						"description": "New editing state",
					},
				},
				"required": []string{"editing"},
			},
		},

		// Detection Operations
		{
			Name:        "image_select",
			Description: "Select the image for detection, from a file path or base64 data. Clears the previous detection result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"data": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image, optionally as a data: URL. Used when path is omitted.",
					},
				},
			},
		},
		{
			Name:        "image_detect",
			Description: "Run one kind of detection on the selected image and return the detections plus a text report. Detection failures are reported in the result, not as errors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"classify", "rectangle", "face", "animal", "text"},
						"description": "What to detect",
					},
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the image with the bounding boxes drawn on it as base64 PNG",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color for annotate, as #RRGGBB or #RRGGBBAA (default #FF0000)",
					},
				},
				"required": []string{"kind"},
			},
		},
		{
			Name:        "image_session",
			Description: "Return the selected image, the last detection kind, its report and its bounding boxes.",
			InputSchema: emptySchema(),
		},
	}
}
