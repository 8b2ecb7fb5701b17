// Package server implements the MCP (Model Context Protocol) server for the
// vision labs.
//
// The server speaks JSON-RPC 2.0 over stdio so an MCP client can inspect
// images and run the lab pipelines without the command line.
//
// # Protocol
//
// One request per line on stdin, one response per line on stdout.
// Supported methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image inspection:
//   - image_load: Dimensions and format
//   - image_sample_color: Color at a pixel, including YUV for tuning food bounds
//   - image_edge_detect: Canny edge mask as base64 PNG
//   - image_check_alignment: Row and column alignment of points
//
// Lab pipelines:
//   - lab_blobs: Objects bounded by Canny edges and their alignment
//   - lab_food: Menu item segmentation by YUV range
//   - lab_haar: Haar primitive sliding-window search
//
// Lab tools resolve a missing input against the configured input
// directory and write result files to the configured output directory
// unless output_dir is given.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, log, version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal().Err(err).Msg("server failed")
//	}
package server
