package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/object-measure-mcp/internal/imaging"
	"github.com/ironsheep/object-measure-mcp/internal/measure"
	"github.com/ironsheep/object-measure-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "measure_object").
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
		s.debugf("%s failed: %v", params.Name, err)
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
	switch name {
	case "image_load":
		return s.handleImageLoad(args)

	// Measurement
	case "measure_object":
		return s.handleMeasureObject(args)
	case "measure_view":
		return s.handleMeasureView(args)
	case "fuse_extents":
		return s.handleFuseExtents(args)
	case "calibrate_dimensions":
		return s.handleCalibrateDimensions(args)

	// Inspection
	case "crop_object":
		return s.handleCropObject(args)
	case "annotate_view":
		return s.handleAnnotateView(args)
	case "edge_map":
		return s.handleEdgeMap(args)
	case "suggest_label":
		return s.handleSuggestLabel(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// toleranceOverride holds the optional per-call matching settings.
type toleranceOverride struct {
	MatchTolerance *float64 `json:"match_tolerance"`
	MatchMode      *string  `json:"match_mode"`
}

func (o toleranceOverride) set() bool {
	return o.MatchTolerance != nil || o.MatchMode != nil
}

// apply returns cfg with the overrides applied and validated.
func (o toleranceOverride) apply(cfg measure.Config) (measure.Config, error) {
	if o.MatchTolerance != nil {
		cfg.MatchTolerance = *o.MatchTolerance
	}
	if o.MatchMode != nil {
		cfg.MatchMode = measure.MatchMode(*o.MatchMode)
	}
	if err := cfg.Validate(); err != nil {
		return measure.Config{}, err
	}
	return cfg, nil
}

// measurerFor returns the server's measurer, or a new one when the call
// overrides the matching settings.
func (s *Server) measurerFor(o toleranceOverride) (*measure.Measurer, error) {
	if !o.set() {
		return s.measurer, nil
	}
	cfg, err := o.apply(s.measurer.Config())
	if err != nil {
		return nil, err
	}
	return measure.New(cfg)
}

// === Image Information ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Measurement ===

type measureObjectArgs struct {
	TopPath       string     `json:"top_path"`
	FrontPath     string     `json:"front_path"`
	ReferenceDims [3]float64 `json:"reference_dims"`
	Sorted        bool       `json:"sorted"`
	toleranceOverride
}

// measureObjectResult is a detailed measurement with an optional
// largest-first copy of the real dimensions.
type measureObjectResult struct {
	*measure.Result
	SortedDims *[3]float64 `json:"sorted_dims,omitempty"`
}

func (s *Server) handleMeasureObject(args json.RawMessage) (interface{}, error) {
	var a measureObjectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	m, err := s.measurerFor(a.toleranceOverride)
	if err != nil {
		return nil, err
	}

	top, front, err := s.cache.LoadPair(a.TopPath, a.FrontPath)
	if err != nil {
		return nil, err
	}

	result, err := m.MeasureDetailed(top, front, measure.CalibrationRef{RealDims: a.ReferenceDims})
	if err != nil {
		return nil, err
	}
	s.debugf("measure_object: top=%s front=%s reference_px=%v target_px=%v dims=%v",
		a.TopPath, a.FrontPath, result.Reference, result.Target, result.Measurement.RealDims)

	out := &measureObjectResult{Result: result}
	if a.Sorted {
		dims := result.Measurement.Sorted().RealDims
		out.SortedDims = &dims
	}
	return out, nil
}

type measureViewArgs struct {
	Path string `json:"path"`
}

// measureViewResult lists the objects found in one photograph.
type measureViewResult struct {
	Count   int                      `json:"count"`
	Objects []measure.OrientedExtent `json:"objects"`
}

func (s *Server) handleMeasureView(args json.RawMessage) (interface{}, error) {
	var a measureViewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	extents, err := s.measurer.Extents(img)
	if err != nil {
		return nil, err
	}
	if extents == nil {
		extents = []measure.OrientedExtent{}
	}
	return &measureViewResult{Count: len(extents), Objects: extents}, nil
}

type edgePair struct {
	EdgeA float64 `json:"edge_a"`
	EdgeB float64 `json:"edge_b"`
}

type fuseExtentsArgs struct {
	Top   edgePair `json:"top"`
	Front edgePair `json:"front"`
	toleranceOverride
}

type fuseExtentsResult struct {
	Fused     measure.Fused3D   `json:"fused_px"`
	Tolerance measure.Tolerance `json:"tolerance"`
}

func (s *Server) handleFuseExtents(args json.RawMessage) (interface{}, error) {
	var a fuseExtentsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg, err := a.toleranceOverride.apply(s.measurer.Config())
	if err != nil {
		return nil, err
	}
	tol := cfg.Tolerance()

	fused, err := measure.Fuse(
		measure.OrientedExtent{EdgeA: a.Top.EdgeA, EdgeB: a.Top.EdgeB},
		measure.OrientedExtent{EdgeA: a.Front.EdgeA, EdgeB: a.Front.EdgeB},
		tol,
	)
	if err != nil {
		return nil, err
	}
	return &fuseExtentsResult{Fused: fused, Tolerance: tol}, nil
}

type calibrateArgs struct {
	ReferencePx   [3]float64 `json:"reference_px"`
	ReferenceReal [3]float64 `json:"reference_real"`
	TargetPx      [3]float64 `json:"target_px"`
}

type calibrateResult struct {
	Scale    [3]float64 `json:"scale"`
	RealDims [3]float64 `json:"real_dims"`
}

func (s *Server) handleCalibrateDimensions(args json.RawMessage) (interface{}, error) {
	var a calibrateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	ref := measure.CalibrationRef{RealDims: a.ReferenceReal}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	scale, err := measure.Scale(measure.Fused3D(a.ReferencePx), ref)
	if err != nil {
		return nil, err
	}
	return &calibrateResult{
		Scale:    scale,
		RealDims: measure.Apply(scale, measure.Fused3D(a.TargetPx)).RealDims,
	}, nil
}

// === Inspection ===

type cropObjectArgs struct {
	Path   string  `json:"path"`
	View   string  `json:"view"`
	Margin *int    `json:"margin"`
	Scale  float64 `json:"scale"`
}

type cropObjectResult struct {
	*imaging.EncodedImage
	Region image.Rectangle `json:"region"`
}

func parseView(v string) (measure.View, error) {
	switch measure.View(v) {
	case "":
		return measure.ViewTop, nil
	case measure.ViewTop, measure.ViewFront:
		return measure.View(v), nil
	default:
		return "", fmt.Errorf("unknown view %q (want \"top\" or \"front\")", v)
	}
}

func (s *Server) handleCropObject(args json.RawMessage) (interface{}, error) {
	var a cropObjectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	view, err := parseView(a.View)
	if err != nil {
		return nil, err
	}
	margin := 10
	if a.Margin != nil {
		margin = *a.Margin
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	obs, err := s.measurer.ObserveView(img, view)
	if err != nil {
		return nil, err
	}

	cropped, region, err := imaging.CropAround(img, obs.Target.Bounds, margin, a.Scale)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNG(cropped)
	if err != nil {
		return nil, err
	}
	return &cropObjectResult{EncodedImage: encoded, Region: region}, nil
}

type annotateViewArgs struct {
	Path string `json:"path"`
}

type annotateViewResult struct {
	*imaging.EncodedImage
	Objects int `json:"objects"`
}

func (s *Server) handleAnnotateView(args json.RawMessage) (interface{}, error) {
	var a annotateViewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	extents, err := s.measurer.Extents(img)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNG(imaging.Annotate(img, s.overlays(extents)))
	if err != nil {
		return nil, err
	}
	return &annotateViewResult{EncodedImage: encoded, Objects: len(extents)}, nil
}

// overlays labels each extent with its edge lengths. The two largest get
// the roles the measurer would assign them.
func (s *Server) overlays(extents []measure.OrientedExtent) []imaging.Overlay {
	roles := make([]measure.Role, len(extents))
	if len(extents) >= 2 {
		ref := measure.ReferenceIndex(extents[0], extents[1], s.measurer.Config().ReferenceSide)
		roles[ref], roles[1-ref] = measure.RoleReference, measure.RoleTarget
	}

	overlays := make([]imaging.Overlay, len(extents))
	for i, e := range extents {
		overlays[i] = imaging.Overlay{
			Corners: e.Corners,
			Role:    string(roles[i]),
			Label:   fmt.Sprintf("%.1fx%.1f", e.EdgeA, e.EdgeB),
		}
	}
	return overlays
}

type edgeMapArgs struct {
	Path string `json:"path"`
}

type edgeMapResult struct {
	*imaging.EncodedImage
	EdgePixels int                `json:"edge_pixels"`
	Params     imaging.EdgeParams `json:"params"`
}

func (s *Server) handleEdgeMap(args json.RawMessage) (interface{}, error) {
	var a edgeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	params := s.measurer.Config().DetectionParams().Edges
	edges := imaging.EdgeMap(img, params)

	count := 0
	for _, v := range edges.Pix {
		if v != 0 {
			count++
		}
	}

	encoded, err := imaging.EncodePNG(edges)
	if err != nil {
		return nil, err
	}
	return &edgeMapResult{EncodedImage: encoded, EdgePixels: count, Params: params}, nil
}

type suggestLabelArgs struct {
	Path     string `json:"path"`
	View     string `json:"view"`
	Language string `json:"language"`
}

type suggestLabelResult struct {
	*ocr.LabelResult
	Region image.Rectangle `json:"region"`
}

func (s *Server) handleSuggestLabel(args json.RawMessage) (interface{}, error) {
	var a suggestLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	view, err := parseView(a.View)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	cropped, region, err := s.measurer.CropTarget(img, view, 10)
	if err != nil {
		return nil, err
	}

	label, err := ocr.SuggestLabel(cropped, a.Language)
	if err != nil {
		return nil, err
	}
	s.debugf("suggest_label: %s -> %q", a.Path, label.Label)
	return &suggestLabelResult{LabelResult: label, Region: region}, nil
}
