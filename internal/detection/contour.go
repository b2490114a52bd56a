package detection

import (
	"image"

	"github.com/ironsheep/object-measure-mcp/internal/geometry"
)

// Moore neighborhood in clockwise order for a y-down image, starting east.
var neighbors = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

const dirWest = 4

// TraceExternal finds the outer boundary of every edge component in edges
// that is reachable from the image border, ignoring components nested in
// another component's interior and the inner boundaries of rings.
//
// Nonzero pixels are edges. Components are 8-connected; background is
// 4-connected. Returned points are offset by origin so they land in the
// source photograph's coordinate space.
func TraceExternal(edges *image.Gray, origin image.Point) []Silhouette {
	width, height := edges.Rect.Dx(), edges.Rect.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	isEdge := func(x, y int) bool {
		return edges.Pix[y*edges.Stride+x] != 0
	}

	labels, starts := labelComponents(isEdge, width, height)
	outside := floodOutside(isEdge, width, height)

	external := make([]bool, len(starts)+1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id := labels[y*width+x]
			if id == 0 || external[id] {
				continue
			}
			if touchesOutside(outside, x, y, width, height) {
				external[id] = true
			}
		}
	}

	silhouettes := make([]Silhouette, 0)
	for i, start := range starts {
		id := int32(i + 1)
		if !external[id] {
			continue
		}
		boundary := traceBoundary(labels, id, start, width, height)
		for j := range boundary {
			boundary[j] = boundary[j].Add(origin)
		}
		silhouettes = append(silhouettes, Silhouette{
			Points: boundary,
			Area:   geometry.PolygonArea(geometry.FromImagePoints(boundary)),
			Bounds: boundsOf(boundary),
		})
	}
	return silhouettes
}

// labelComponents assigns a label (1-based) to each 8-connected component of
// edge pixels and records the first pixel of each component in raster
// order. Uses an explicit stack so large components cannot overflow.
func labelComponents(isEdge func(x, y int) bool, width, height int) ([]int32, []image.Point) {
	labels := make([]int32, width*height)
	starts := make([]image.Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !isEdge(x, y) || labels[y*width+x] != 0 {
				continue
			}

			starts = append(starts, image.Point{X: x, Y: y})
			id := int32(len(starts))
			labels[y*width+x] = id
			stack := []image.Point{{X: x, Y: y}}

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				for _, d := range neighbors {
					nx, ny := p.X+d.X, p.Y+d.Y
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					if labels[ny*width+nx] != 0 || !isEdge(nx, ny) {
						continue
					}
					labels[ny*width+nx] = id
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}

	return labels, starts
}

// floodOutside marks background pixels 4-connected to the frame border.
func floodOutside(isEdge func(x, y int) bool, width, height int) []bool {
	outside := make([]bool, width*height)
	stack := make([]image.Point, 0, 2*(width+height))

	seed := func(x, y int) {
		if !isEdge(x, y) && !outside[y*width+x] {
			outside[y*width+x] = true
			stack = append(stack, image.Point{X: x, Y: y})
		}
	}
	for x := 0; x < width; x++ {
		seed(x, 0)
		seed(x, height-1)
	}
	for y := 0; y < height; y++ {
		seed(0, y)
		seed(width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range [4]image.Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			seed(nx, ny)
		}
	}

	return outside
}

// touchesOutside reports whether the edge pixel at (x, y) lies on the frame
// border or has a 4-neighbor in the outside background.
func touchesOutside(outside []bool, x, y, width, height int) bool {
	if x == 0 || y == 0 || x == width-1 || y == height-1 {
		return true
	}
	return outside[y*width+x-1] || outside[y*width+x+1] ||
		outside[(y-1)*width+x] || outside[(y+1)*width+x]
}

// traceBoundary walks the outer boundary of component id clockwise with
// Moore-neighbor tracing, starting at its first raster pixel with the
// backtrack to the west. It stops when the walk re-enters the start pixel
// heading to the same second pixel as the first step.
func traceBoundary(labels []int32, id int32, start image.Point, width, height int) []image.Point {
	inside := func(p image.Point) bool {
		return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height && labels[p.Y*width+p.X] == id
	}

	boundary := []image.Point{start}
	p, back := start, dirWest
	var second image.Point
	haveSecond := false

	// Each boundary pixel is entered at most once per side.
	limit := 4*width*height + 8
	for steps := 0; steps < limit; steps++ {
		next, nextBack, ok := mooreStep(inside, p, back)
		if !ok {
			break // isolated pixel
		}
		if p == start && haveSecond && next == second {
			break
		}
		if !haveSecond {
			second, haveSecond = next, true
		}
		boundary = append(boundary, next)
		p, back = next, nextBack
	}

	if n := len(boundary); n > 1 && boundary[n-1] == boundary[0] {
		boundary = boundary[:n-1]
	}
	return boundary
}

// mooreStep scans the neighbors of p clockwise, starting just after the
// backtrack direction, and returns the first component pixel together with
// the backtrack direction to use from it.
func mooreStep(inside func(image.Point) bool, p image.Point, back int) (image.Point, int, bool) {
	for i := 1; i <= 8; i++ {
		dir := (back + i) % 8
		candidate := p.Add(neighbors[dir])
		if !inside(candidate) {
			continue
		}
		prev := p.Add(neighbors[(back+i-1)%8])
		return candidate, directionOf(prev.Sub(candidate)), true
	}
	return image.Point{}, 0, false
}

// directionOf maps a unit step to its index in neighbors.
func directionOf(d image.Point) int {
	for i, n := range neighbors {
		if n == d {
			return i
		}
	}
	return dirWest
}
