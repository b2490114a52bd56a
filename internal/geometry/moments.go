package geometry

import "gonum.org/v1/gonum/spatial/r2"

// Moments holds the area moments of a closed polygon.
type Moments struct {
	M00 float64 `json:"m00"` // Enclosed area
	M10 float64 `json:"m10"`
	M01 float64 `json:"m01"`
}

// PolygonMoments computes area moments of the closed polygon pts with
// Green's theorem. Winding direction does not matter: M00 is always
// non-negative.
func PolygonMoments(pts []r2.Vec) Moments {
	var m Moments
	n := len(pts)
	for i := 0; i < n; i++ {
		p := pts[i]
		q := pts[(i+1)%n]
		a := p.X*q.Y - q.X*p.Y
		m.M00 += a
		m.M10 += (p.X + q.X) * a
		m.M01 += (p.Y + q.Y) * a
	}
	m.M00 /= 2
	m.M10 /= 6
	m.M01 /= 6

	if m.M00 < 0 {
		m.M00, m.M10, m.M01 = -m.M00, -m.M10, -m.M01
	}
	return m
}

// Centroid returns the area centroid. Zero-area polygons map to the origin.
func (m Moments) Centroid() r2.Vec {
	if m.M00 == 0 {
		return r2.Vec{}
	}
	return r2.Vec{X: m.M10 / m.M00, Y: m.M01 / m.M00}
}

// PolygonArea returns the area enclosed by pts.
func PolygonArea(pts []r2.Vec) float64 {
	return PolygonMoments(pts).M00
}
