package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/vision-labs/internal/detection"
	"github.com/ironsheep/vision-labs/internal/haar"
	"github.com/ironsheep/vision-labs/internal/imaging"
	"github.com/ironsheep/vision-labs/internal/labs"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "lab_blobs").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
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
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image inspection
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_edge_detect":
		return s.handleImageEdgeDetect(args)
	case "image_check_alignment":
		return s.handleImageCheckAlignment(args)

	// Lab pipelines
	case "lab_blobs":
		return s.handleLabBlobs(args)
	case "lab_food":
		return s.handleLabFood(args)
	case "lab_haar":
		return s.handleLabHaar(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func (s *Server) inputOr(path, fallback string) string {
	if path != "" {
		return path
	}
	return s.cfg.InputPath(fallback)
}

func (s *Server) outputOr(dir string) string {
	if dir != "" {
		return dir
	}
	return s.cfg.OutputDir
}

// === Image Inspection Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.LoadImageInfo(a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageEdgeDetectArgs struct {
	Path    string   `json:"path"`
	Sigma   *float64 `json:"sigma"`
	Low     float64  `json:"low"`
	High    float64  `json:"high"`
	Backend string   `json:"backend"`
}

func (s *Server) handleImageEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imageEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := imaging.DefaultCannyOptions()
	if a.Sigma != nil {
		opts.Sigma = *a.Sigma
	}
	if a.Low > 0 {
		opts.Low = a.Low
	}
	if a.High > 0 {
		opts.High = a.High
	}
	if a.Backend == "" {
		a.Backend = s.cfg.EdgeBackend
	}

	detector, err := imaging.NewEdgeDetector(a.Backend)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	edges, err := detector.Detect(img, opts)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeEdges(edges)
}

type imageCheckAlignmentArgs struct {
	Points    []detection.Centroid `json:"points"`
	Tolerance float64              `json:"tolerance"`
}

func (s *Server) handleImageCheckAlignment(args json.RawMessage) (interface{}, error) {
	var a imageCheckAlignmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Tolerance <= 0 {
		a.Tolerance = 5
	}
	return detection.CheckAlignment(a.Points, a.Tolerance), nil
}

// === Lab Pipeline Handlers ===

type labBlobsArgs struct {
	Input     string   `json:"input"`
	OutputDir string   `json:"output_dir"`
	MinArea   int      `json:"min_area"`
	Sigma     *float64 `json:"sigma"`
	Backend   string   `json:"backend"`
}

func (s *Server) handleLabBlobs(args json.RawMessage) (interface{}, error) {
	var a labBlobsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := labs.DefaultBlobsOptions()
	opts.Input = s.inputOr(a.Input, labs.DefaultBlobsInput)
	opts.OutputDir = s.outputOr(a.OutputDir)
	opts.Log = s.log.With().Str("lab", "blobs").Logger()
	if a.MinArea > 0 {
		opts.MinArea = a.MinArea
	}
	if a.Sigma != nil {
		opts.Canny.Sigma = *a.Sigma
	}
	if a.Backend == "" {
		a.Backend = s.cfg.EdgeBackend
	}
	detector, err := imaging.NewEdgeDetector(a.Backend)
	if err != nil {
		return nil, err
	}
	opts.Detector = detector

	return labs.RunBlobs(opts)
}

type labFoodArgs struct {
	Input     string `json:"input"`
	OutputDir string `json:"output_dir"`
	Catalog   string `json:"catalog"`
	Batch     string `json:"batch"`
}

func (s *Server) handleLabFood(args json.RawMessage) (interface{}, error) {
	var a labFoodArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := labs.DefaultFoodOptions()
	opts.Input = s.inputOr(a.Input, labs.DefaultFoodInput)
	opts.OutputDir = s.outputOr(a.OutputDir)
	opts.Log = s.log.With().Str("lab", "food").Logger()
	if a.Catalog != "" {
		c, err := labs.LoadCatalog(a.Catalog)
		if err != nil {
			return nil, err
		}
		opts.Catalog = c
	}

	if a.Batch != "" {
		return labs.RunFoodBatch(opts, a.Batch)
	}
	return labs.RunFood(opts)
}

type labHaarArgs struct {
	Input     string   `json:"input"`
	OutputDir string   `json:"output_dir"`
	Searches  []string `json:"searches"`
	Variant   string   `json:"variant"`
	Votes     int      `json:"votes"`
}

func (s *Server) handleLabHaar(args json.RawMessage) (interface{}, error) {
	var a labHaarArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := labs.DefaultHaarOptions()
	opts.Input = s.inputOr(a.Input, labs.DefaultHaarInput)
	opts.OutputDir = s.outputOr(a.OutputDir)
	opts.Log = s.log.With().Str("lab", "haar").Logger()

	variant, err := labs.ParseVariant(a.Variant)
	if err != nil {
		return nil, err
	}
	opts.Variant = variant
	if a.Votes > 0 {
		opts.Votes = a.Votes
	}
	if len(a.Searches) > 0 {
		opts.Searches = nil
		for _, spec := range a.Searches {
			search, err := haar.ParseSearch(spec)
			if err != nil {
				return nil, err
			}
			opts.Searches = append(opts.Searches, search)
		}
	}

	return labs.RunHaar(opts)
}
