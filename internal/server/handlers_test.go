package server

import (
	"encoding/json"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/vision-labs/internal/imaging"
	"github.com/ironsheep/vision-labs/internal/labs"
)

// createTestImageFile writes a PNG filled with c, with an optional
// rectangle painted in fg, and returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color, rect image.Rectangle, fg color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if image.Pt(x, y).In(rect) {
				img.Set(x, y, fg)
			} else {
				img.Set(x, y, c)
			}
		}
	}

	p := filepath.Join(t.TempDir(), "test.png")
	require.NoError(t, imaging.Save(img, p))
	return p
}

// callTool issues a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()
	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	require.NoError(t, err)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params})
	require.NotNil(t, resp)
	return resp
}

// decodeResult unpacks the text content of a successful tool response.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	require.Len(t, content, 1)
	assert.Equal(t, "text", content[0]["type"])
	require.NoError(t, json.Unmarshal([]byte(content[0]["text"].(string)), v))
}

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255}, image.Rectangle{}, nil)

	var info imaging.ImageInfo
	decodeResult(t, callTool(t, s, "image_load", map[string]interface{}{"path": p}), &info)
	assert.Equal(t, 100, info.Width)
	assert.Equal(t, 80, info.Height)
	assert.Equal(t, "png", info.Format)
}

func TestHandleToolsCall_SampleColor(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 20, 20, black, image.Rect(10, 10, 20, 20), white)

	var got imaging.ColorResult
	decodeResult(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": p, "x": 15, "y": 15}), &got)
	assert.Equal(t, "#ffffff", got.Hex)
	assert.Equal(t, imaging.RGBColor{R: 255, G: 255, B: 255}, got.RGB)
	assert.InDelta(t, 235, got.YUV.Y, 0.01)
}

func TestHandleToolsCall_SampleColorOutOfBounds(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 20, 20, black, image.Rectangle{}, nil)

	resp := callTool(t, s, "image_sample_color", map[string]interface{}{"path": p, "x": 50, "y": 5})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)
}

func TestHandleToolsCall_EdgeDetect(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 40, 40, black, image.Rect(10, 10, 30, 30), white)

	var got imaging.EdgeDetectResult
	decodeResult(t, callTool(t, s, "image_edge_detect", map[string]interface{}{"path": p, "sigma": 0}), &got)
	assert.Equal(t, 40, got.Width)
	assert.Equal(t, 40, got.Height)
	assert.Greater(t, got.EdgePixels, 0)
	assert.Equal(t, "image/png", got.MimeType)
	assert.NotEmpty(t, got.ImageBase64)
}

func TestHandleToolsCall_EdgeDetectUnknownBackend(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 10, 10, black, image.Rectangle{}, nil)

	resp := callTool(t, s, "image_edge_detect", map[string]interface{}{"path": p, "backend": "magic"})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "unknown edge backend")
}

func TestHandleToolsCall_CheckAlignment(t *testing.T) {
	s := newTestServer(t)
	args := map[string]interface{}{
		"points": []map[string]float64{{"x": 10, "y": 50}, {"x": 40, "y": 51}, {"x": 90, "y": 49}},
	}

	var got map[string]interface{}
	decodeResult(t, callTool(t, s, "image_check_alignment", args), &got)
	assert.Equal(t, true, got["horizontally_aligned"])
	assert.Equal(t, false, got["vertically_aligned"])
	assert.InDelta(t, 50, got["average_y"], 1e-9)
}

func TestHandleToolsCall_LabBlobs(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 60, 60, black, image.Rectangle{}, nil)
	out := filepath.Join(t.TempDir(), "blobs")

	var report labs.BlobsReport
	decodeResult(t, callTool(t, s, "lab_blobs", map[string]interface{}{"input": p, "output_dir": out}), &report)
	assert.Equal(t, p, report.Input)
	assert.Equal(t, imaging.BackendNative, report.EdgeBackend)
	assert.Empty(t, report.Blobs)
	assert.FileExists(t, filepath.Join(out, labs.BlobsReportFile))
}

func TestHandleToolsCall_LabBlobsMissingDefaultInput(t *testing.T) {
	s := newTestServer(t)

	resp := callTool(t, s, "lab_blobs", map[string]interface{}{})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "phone.jpg")
}

func TestHandleToolsCall_LabFood(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 40, 30, black, image.Rectangle{}, nil)

	var report labs.FoodReport
	decodeResult(t, callTool(t, s, "lab_food", map[string]interface{}{"input": p}), &report)
	assert.Equal(t, p, report.Input)
	assert.Len(t, report.Items, len(labs.DefaultCatalog().Items))
	assert.Zero(t, report.Detections)
	assert.FileExists(t, s.cfg.OutputPath(labs.FoodReportFile))
}

func TestHandleToolsCall_LabFoodBadCatalog(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 10, 10, black, image.Rectangle{}, nil)

	resp := callTool(t, s, "lab_food", map[string]interface{}{"input": p, "catalog": "/nonexistent/menu.yaml"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)
}

func TestHandleToolsCall_LabHaar(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 60, 60, black, image.Rect(20, 20, 40, 40), white)

	args := map[string]interface{}{
		"input":    p,
		"searches": []string{"haar10:69:71"},
		"variant":  "primitive",
	}
	var report labs.HaarReport
	decodeResult(t, callTool(t, s, "lab_haar", args), &report)
	assert.Equal(t, labs.VariantPrimitive, report.Variant)
	require.Len(t, report.Scans, 1)
	assert.Equal(t, "haar10:69:71:ws:7", report.Scans[0].Search)
	assert.Equal(t, 6*26, report.Scans[0].Windows)
}

func TestHandleToolsCall_LabHaarBadArguments(t *testing.T) {
	s := newTestServer(t)
	p := createTestImageFile(t, 20, 20, black, image.Rectangle{}, nil)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"unknown variant", map[string]interface{}{"input": p, "variant": "cartoon"}, "unknown haar variant"},
		{"unknown primitive", map[string]interface{}{"input": p, "searches": []string{"haar99"}}, "haar99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "lab_haar", tt.args)
			require.NotNil(t, resp.Error)
			assert.Contains(t, resp.Error.Data, tt.want)
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: []byte(`"nope"`)})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := newTestServer(t)
	_, err := s.executeTool("image_ocr_full", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := newTestServer(t)
	_, err := s.executeTool("image_load", []byte(`{bad`))
	assert.Error(t, err)
}

func TestExecuteTool_ImageLoadRequiresPath(t *testing.T) {
	s := newTestServer(t)
	_, err := s.executeTool("image_load", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}
