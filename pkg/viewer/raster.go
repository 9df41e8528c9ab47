package viewer

import (
	"image"
	"image/color"
	"math"
)

// frame is a color buffer with a depth buffer of the same size
type frame struct {
	img   *image.RGBA
	depth []float64
}

func newFrame(width, height int, background color.RGBA) *frame {
	f := &frame{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
	for i := 0; i < len(f.img.Pix); i += 4 {
		f.img.Pix[i] = background.R
		f.img.Pix[i+1] = background.G
		f.img.Pix[i+2] = background.B
		f.img.Pix[i+3] = 255
	}
	return f
}

// screenVertex is a projected vertex: pixel position plus view depth
type screenVertex struct {
	x, y, z float64
}

// fillTriangle scan-converts a triangle with depth testing. Pixels closer
// than the stored depth are blended with col; writeDepth records them.
func (f *frame) fillTriangle(a, b, c screenVertex, col color.NRGBA, writeDepth bool) {
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}

	bounds := f.img.Bounds()
	width := bounds.Max.X

	yStart := int(math.Max(0, math.Ceil(a.y)))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), math.Floor(c.y)))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// The long edge a-c spans every scanline; the short edge switches at b.
		xl, zl, ok := edgeAt(a, c, fy)
		if !ok {
			continue
		}
		var xr, zr float64
		if fy < b.y {
			xr, zr, ok = edgeAt(a, b, fy)
		} else {
			xr, zr, ok = edgeAt(b, c, fy)
		}
		if !ok {
			continue
		}
		if xl > xr {
			xl, xr = xr, xl
			zl, zr = zr, zl
		}

		xStart := int(math.Max(0, math.Ceil(xl)))
		xEnd := int(math.Min(float64(width-1), math.Floor(xr)))

		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if xr != xl {
				t = (float64(x) - xl) / (xr - xl)
			}
			z := zl + t*(zr-zl)

			idx := y*width + x
			if z >= f.depth[idx] {
				continue
			}
			if writeDepth {
				f.depth[idx] = z
			}
			f.blend(idx*4, col)
		}
	}
}

// edgeAt interpolates x and depth where the edge p-q crosses scanline y
func edgeAt(p, q screenVertex, y float64) (x, z float64, ok bool) {
	if p.y == q.y {
		if y != p.y {
			return 0, 0, false
		}
		return p.x, p.z, true
	}
	if y < p.y || y > q.y {
		return 0, 0, false
	}
	t := (y - p.y) / (q.y - p.y)
	return p.x + t*(q.x-p.x), p.z + t*(q.z-p.z), true
}

// blend composites col over the pixel at offset i
func (f *frame) blend(i int, col color.NRGBA) {
	pix := f.img.Pix[i : i+4 : i+4]
	alpha := uint32(col.A)
	inv := 255 - alpha
	pix[0] = uint8((uint32(col.R)*alpha + uint32(pix[0])*inv) / 255)
	pix[1] = uint8((uint32(col.G)*alpha + uint32(pix[1])*inv) / 255)
	pix[2] = uint8((uint32(col.B)*alpha + uint32(pix[2])*inv) / 255)
	pix[3] = 255
}

// drawLine draws an overlay line with Bresenham's algorithm, ignoring depth
func (f *frame) drawLine(x1, y1, x2, y2 int, col color.RGBA) {
	bounds := f.img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			f.img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
