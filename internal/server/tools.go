package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func tripleProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "number"},
		"minItems":    3,
		"maxItems":    3,
		"description": description,
	}
}

func edgePairProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"edge_a": map[string]interface{}{
				"type":        "number",
				"description": "Length in pixels of the edge joining the top and bottom midpoints",
			},
			"edge_b": map[string]interface{}{
				"type":        "number",
				"description": "Length in pixels of the edge joining the left and right midpoints",
			},
		},
		"required": []string{"edge_a", "edge_b"},
	}
}

func toleranceProperties(props map[string]interface{}) map[string]interface{} {
	props["match_tolerance"] = map[string]interface{}{
		"type":        "number",
		"description": "Optional override of the edge matching tolerance. Pixels in absolute mode, a fraction of the front edge in relative mode",
	}
	props["match_mode"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"absolute", "relative"},
		"description": "Optional override of the edge matching mode",
	}
	return props
}

func viewProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"top", "front"},
		"description": "Which view the photograph shows. Only used in error messages. Default \"top\"",
		"default":     "top",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load a photograph and return its dimensions and format. The decoded image is cached for later calls on the same path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Measurement
		{
			Name: "measure_object",
			Description: "Estimate the 3D size of a target object from a top-view and a front-view photograph that both show it next to a reference object of known size. " +
				"Each photograph must contain exactly two objects; the reference is the leftmost one unless configured otherwise. " +
				"Returns the real dimensions in the reference's units along with the pixel triples and scale factors used.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": toleranceProperties(map[string]interface{}{
					"top_path":       pathProperty("Absolute path to the top-view photograph"),
					"front_path":     pathProperty("Absolute path to the front-view photograph"),
					"reference_dims": tripleProperty("Real size of the reference object, in the axis order the fuser produces: top edge A, top edge B, front height"),
					"sorted": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the dimensions sorted largest first. Default false",
						"default":     false,
					},
				}),
				"required": []string{"top_path", "front_path", "reference_dims"},
			},
		},
		{
			Name:        "measure_view",
			Description: "Find the object silhouettes in one photograph and report, largest first, the two edge lengths of each minimum-area rectangle, its centroid X, area, corners and bounding box.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "fuse_extents",
			Description: "Combine one object's top-view and front-view edge lengths into a 3D pixel triple by matching the edge both views share.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": toleranceProperties(map[string]interface{}{
					"top":   edgePairProperty("Edge lengths measured in the top view"),
					"front": edgePairProperty("Edge lengths measured in the front view"),
				}),
				"required": []string{"top", "front"},
			},
		},
		{
			Name:        "calibrate_dimensions",
			Description: "Convert a target pixel triple to real units using a reference object's pixel triple and known real size. Each axis is scaled independently.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"reference_px":   tripleProperty("Reference object size in pixels"),
					"reference_real": tripleProperty("Reference object size in real units"),
					"target_px":      tripleProperty("Target object size in pixels"),
				},
				"required": []string{"reference_px", "reference_real", "target_px"},
			},
		},

		// Inspection
		{
			Name:        "crop_object",
			Description: "Crop a photograph to the target object's bounding box plus a margin and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"view": viewProperty(),
					"margin": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels added on every side of the bounding box. Default 10",
						"default":     10,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for the crop. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "annotate_view",
			Description: "Draw every detected object's minimum-area rectangle, edge midpoints and edge lengths onto the photograph. The reference is drawn in blue and the target in orange. Returns base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "edge_map",
			Description: "Return the binary edge map the object detector traces, as base64-encoded PNG. White pixels are edges. Useful when a photograph yields the wrong number of objects.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "suggest_label",
			Description: "Suggest a name for the target object by reading printed text on its crop with OCR. Requires Tesseract.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"view": viewProperty(),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default \"eng\"",
						"default":     "eng",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
