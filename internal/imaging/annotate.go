package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ironsheep/object-measure-mcp/internal/geometry"
)

// Overlay is one measured shape to draw onto a photograph.
type Overlay struct {
	// Corners of the minimum-area rectangle, ordered top-left, top-right,
	// bottom-right, bottom-left.
	Corners geometry.Quad

	// Role selects the stroke color: "reference", "target", or empty for
	// an unassigned shape.
	Role string

	// Label is drawn near the top-left corner. Digits, '.', 'x' and '-' are
	// rendered; other characters leave a gap.
	Label string
}

// Annotate returns a copy of img with each overlay's rectangle, edge
// midpoints and midpoint connector lines drawn on it. img is not modified.
func Annotate(img image.Image, overlays []Overlay) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	for i, o := range overlays {
		stroke := roleColor(o.Role, i)
		marker := lighten(stroke)

		q := o.Corners
		for k := 0; k < 4; k++ {
			drawLine(result, q[k], q[(k+1)%4], stroke)
		}

		top := geometry.Midpoint(q[0], q[1])
		bottom := geometry.Midpoint(q[3], q[2])
		left := geometry.Midpoint(q[0], q[3])
		right := geometry.Midpoint(q[1], q[2])

		drawLine(result, top, bottom, marker)
		drawLine(result, left, right, marker)
		for _, m := range []r2.Vec{top, bottom, left, right} {
			drawDot(result, m, 3, marker)
		}
		for _, c := range q {
			drawDot(result, c, 3, stroke)
		}

		if o.Label != "" {
			bg := color.RGBA{0, 0, 0, 200}
			drawLabel(result, int(math.Round(q[0].X)), int(math.Round(q[0].Y))-9, o.Label, color.RGBA{255, 255, 255, 255}, bg)
		}
	}

	return result
}

// roleColor picks a saturated stroke color per role. Unassigned shapes get
// hues spread around the wheel by index.
func roleColor(role string, index int) color.RGBA {
	var c colorful.Color
	switch role {
	case "reference":
		c = colorful.Hcl(140, 0.9, 0.6)
	case "target":
		c = colorful.Hcl(320, 0.9, 0.55)
	default:
		c = colorful.Hcl(float64((index*67)%360), 0.7, 0.6)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// lighten blends c halfway toward white in Lab space.
func lighten(c color.RGBA) color.RGBA {
	base, _ := colorful.MakeColor(c)
	white := colorful.Color{R: 1, G: 1, B: 1}
	r, g, b := base.BlendLab(white, 0.5).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawLine draws a 2-pixel-wide segment using Bresenham stepping.
func drawLine(img *image.RGBA, from, to r2.Vec, c color.RGBA) {
	x0, y0 := int(math.Round(from.X)), int(math.Round(from.Y))
	x1, y1 := int(math.Round(to.X)), int(math.Round(to.Y))

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		setIfInside(img, x0, y0, c)
		setIfInside(img, x0+1, y0, c)
		setIfInside(img, x0, y0+1, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func drawDot(img *image.RGBA, at r2.Vec, radius int, c color.RGBA) {
	cx, cy := int(math.Round(at.X)), int(math.Round(at.Y))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setIfInside(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func setIfInside(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

// drawLabel draws text with a tiny 3x5 pixel font on a filled background.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		'.': {"000", "000", "000", "000", "010"},
		'x': {"000", "101", "010", "101", "000"},
		'-': {"000", "000", "111", "000", "000"},
	}

	charWidth := 4
	labelWidth := len([]rune(text)) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			setIfInside(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		if glyph, ok := glyphs[ch]; ok {
			for row, line := range glyph {
				for col, pixel := range line {
					if pixel == '1' {
						setIfInside(img, cx+col, y+row, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
