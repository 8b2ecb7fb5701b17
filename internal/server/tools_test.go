package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetToolDefinitions(t *testing.T) {
	want := []string{
		"image_load",
		"image_sample_color",
		"image_edge_detect",
		"image_check_alignment",
		"lab_blobs",
		"lab_food",
		"lab_haar",
	}

	tools := GetToolDefinitions()
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.Equal(t, "object", tool.InputSchema["type"], tool.Name)
		_, ok := tool.InputSchema["properties"].(map[string]interface{})
		assert.True(t, ok, "%s has no properties", tool.Name)
	}
	assert.Equal(t, want, names)
}

func TestToolDefinitions_Executable(t *testing.T) {
	s := newTestServer(t)
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			// Every listed tool must be known to the dispatcher; bad
			// arguments are fine, an unknown tool error is not.
			_, err := s.executeTool(tool.Name, []byte(`{"path":"/nonexistent/x.png","input":"/nonexistent/x.png"}`))
			if err != nil {
				assert.NotContains(t, err.Error(), "unknown tool")
			}
		})
	}
}

func TestToolDefinitions_LabInputsOptional(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if len(tool.Name) > 4 && tool.Name[:4] == "lab_" {
			_, ok := tool.InputSchema["required"]
			assert.False(t, ok, "%s should not require arguments", tool.Name)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	tools := result["tools"].([]Tool)
	assert.Len(t, tools, len(GetToolDefinitions()))
}
