package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": desc,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image inspection
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel as hex, RGB, studio-swing YUV and HSL. The YUV value is in the same space as food catalogue bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path to the image file"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_edge_detect",
			Description: "Run Canny edge detection and return the edge mask as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path to the image file"),
					"sigma": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian smoothing sigma in pixels (default: 2.9, 0 disables smoothing)",
					},
					"low": map[string]interface{}{
						"type":        "number",
						"description": "Low hysteresis threshold on the [0,1] gradient (default: 0.1)",
					},
					"high": map[string]interface{}{
						"type":        "number",
						"description": "High hysteresis threshold on the [0,1] gradient (default: 0.2)",
					},
					"backend": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"native", "gocv"},
						"description": "Edge detector backend (default: server configuration)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_check_alignment",
			Description: "Check whether points share a row or a column within a tolerance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to check",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "number"},
								"y": map[string]interface{}{"type": "number"},
							},
						},
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Largest standard deviation still counted as aligned (default: 5)",
					},
				},
				"required": []string{"points"},
			},
		},

		// Lab pipelines
		{
			Name:        "lab_blobs",
			Description: "Find and number objects bounded by Canny edges, then report which of them share a row or a column. Writes rgb2gray.jpg, canny.jpg, detected.jpg, labels.png, objects.png and blobs.json.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input":      pathProperty("Input image (default: input/phone.jpg under the input directory)"),
					"output_dir": pathProperty("Directory for result files (default: server configuration)"),
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest object area in pixels (default: 150)",
					},
					"sigma": map[string]interface{}{
						"type":        "number",
						"description": "Canny smoothing sigma (default: 2.9)",
					},
					"backend": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"native", "gocv"},
						"description": "Edge detector backend (default: server configuration)",
					},
				},
			},
		},
		{
			Name:        "lab_food",
			Description: "Segment menu items by YUV color range and box those whose area fits the catalogue. Writes food.png and food.json, or one result per image plus food-batch.json in batch mode.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input":      pathProperty("Input image (default: the menu photo under the input directory)"),
					"output_dir": pathProperty("Directory for result files (default: server configuration)"),
					"catalog":    pathProperty("YAML catalogue of menu items (default: built-in catalogue)"),
					"batch": map[string]interface{}{
						"type":        "string",
						"description": "Glob pattern of images to process instead of input",
					},
				},
			},
		},
		{
			Name:        "lab_haar",
			Description: "Slide 10x10 Haar primitives over a grayscale image, paint the hit centres and box the merged regions. Writes rgb2gray.jpg, dilation.jpg, closing.jpg, result.png and haar.json.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input":      pathProperty("Input image (default: pool/009_half.jpg under the input directory)"),
					"output_dir": pathProperty("Directory for result files (default: server configuration)"),
					"searches": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Searches as name[:low:high[:marker[:size]]], e.g. haar10:34.2:34.5:ws:7 (default: haar10, haar11, haar12)",
					},
					"variant": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"marker", "primitive"},
						"description": "How hits are drawn on the result (default: marker)",
					},
					"votes": map[string]interface{}{
						"type":        "integer",
						"description": "Exact number of hits a centre needs to be painted (default: 1)",
					},
				},
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
