package measure

import (
	"fmt"
	"math"
)

// Validate checks that every declared dimension is a positive finite number.
func (r CalibrationRef) Validate() error {
	for i, d := range r.RealDims {
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
			return invalidInput("calibrate", "reference dimension %d must be positive, got %g", i, d)
		}
	}
	return nil
}

// Scale returns the per-axis real units per pixel implied by the reference
// object's measured and declared sizes.
func Scale(referencePx Fused3D, ref CalibrationRef) ([3]float64, error) {
	var scale [3]float64
	for i := range scale {
		if referencePx[i] == 0 {
			return scale, &Error{
				Op:   "calibrate",
				Kind: KindDegenerateCalibration,
				Err:  fmt.Errorf("reference axis %d measures 0 px", i),
			}
		}
		scale[i] = ref.RealDims[i] / referencePx[i]
	}
	return scale, nil
}

// Calibrate converts the target's pixel size to real units using the
// reference object.
func Calibrate(referencePx Fused3D, ref CalibrationRef, targetPx Fused3D) (Measurement, error) {
	scale, err := Scale(referencePx, ref)
	if err != nil {
		return Measurement{}, err
	}
	return Apply(scale, targetPx), nil
}

// Apply multiplies each axis of px by scale.
func Apply(scale [3]float64, px Fused3D) Measurement {
	var m Measurement
	for i := range m.RealDims {
		m.RealDims[i] = scale[i] * px[i]
	}
	return m
}
