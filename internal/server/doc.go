// Package server implements the MCP (Model Context Protocol) server for
// object measurement.
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Measurement:
//   - measure_object: Real 3D size of a target from top and front photographs
//   - measure_view: Ranked object extents in one photograph
//   - fuse_extents: Fuse explicit top and front edge pairs into a pixel triple
//   - calibrate_dimensions: Scale a pixel triple by a reference of known size
//
// Inspection:
//   - image_load: Load a photograph and get its metadata
//   - crop_object: Crop a photograph to the target object
//   - annotate_view: Draw measured rectangles and edge lengths
//   - edge_map: The binary edge map the detector traces
//   - suggest_label: OCR-based name suggestion for the target
//
// Photographs are decoded once and cached by path for the lifetime of the
// process. Tool failures are returned as JSON-RPC error -32000 with the Go
// error string in data, for example
// "front view: extract: expected 2 objects, found 3".
package server
