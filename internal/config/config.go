// Package config loads measurement settings from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/object-measure-mcp/internal/measure"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "MEASURE_MCP_CONFIG"

// FileConfig is the on-disk form of measure.Config. Only the keys present in
// the file override the defaults, so partial configs are safe.
type FileConfig struct {
	BlurKernel     *int     `json:"blur_kernel,omitempty"`
	SmoothKernel   *int     `json:"smooth_kernel,omitempty"`
	EdgeLowThresh  *float64 `json:"edge_low_thresh,omitempty"`
	EdgeHighThresh *float64 `json:"edge_high_thresh,omitempty"`
	MinAreaRatio   *float64 `json:"min_area_ratio,omitempty"`

	MatchTolerance *float64 `json:"match_tolerance,omitempty"`
	MatchMode      *string  `json:"match_mode,omitempty"` // "absolute" or "relative"

	ReferenceSide     *string `json:"reference_side,omitempty"` // "left" or "right"
	AllowExtraObjects *bool   `json:"allow_extra_objects,omitempty"`
}

// LoadFile reads a FileConfig from path. The file must have a .json
// extension and be at most 1 MiB.
func LoadFile(path string) (*FileConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &FileConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if _, err := cfg.Apply(measure.DefaultConfig()); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Apply overlays the keys set in c onto base and validates the result.
func (c *FileConfig) Apply(base measure.Config) (measure.Config, error) {
	out := base
	if c.BlurKernel != nil {
		out.BlurKernel = *c.BlurKernel
	}
	if c.SmoothKernel != nil {
		out.SmoothKernel = *c.SmoothKernel
	}
	if c.EdgeLowThresh != nil {
		out.EdgeLowThresh = *c.EdgeLowThresh
	}
	if c.EdgeHighThresh != nil {
		out.EdgeHighThresh = *c.EdgeHighThresh
	}
	if c.MinAreaRatio != nil {
		out.MinAreaRatio = *c.MinAreaRatio
	}
	if c.MatchTolerance != nil {
		out.MatchTolerance = *c.MatchTolerance
	}
	if c.MatchMode != nil {
		out.MatchMode = measure.MatchMode(*c.MatchMode)
	}
	if c.ReferenceSide != nil {
		out.ReferenceSide = measure.Side(*c.ReferenceSide)
	}
	if c.AllowExtraObjects != nil {
		out.AllowExtraObjects = *c.AllowExtraObjects
	}

	if err := out.Validate(); err != nil {
		return base, err
	}
	return out, nil
}

// Load returns the measurement config named by the MEASURE_MCP_CONFIG
// environment variable, or the defaults when it is unset.
func Load() (measure.Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return measure.DefaultConfig(), nil
	}

	fc, err := LoadFile(path)
	if err != nil {
		return measure.Config{}, err
	}
	return fc.Apply(measure.DefaultConfig())
}
