// Package viewer draws assembled envelopes: a software rasterizer for PNG
// previews and a fyne widget for interactive viewing.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"

	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/geometry"
	"golang.org/x/image/draw"
)

// light is the direction faces are shaded against
var light = geometry.NewVector3(0.4, 1, 0.6).Normalize()

const ambient = 0.35

// RouteColor is the color of the route overlay
var RouteColor = color.RGBA{R: 0xFF, G: 0xCC, B: 0x00, A: 0xFF}

// RenderOptions controls a software render
type RenderOptions struct {
	Width, Height int
	// Supersample renders at this multiple of the output size and scales
	// down with a Catmull-Rom filter. Values below 2 render directly.
	Supersample int
	Background  envelope.Color
	// Route, when set, is drawn as a polyline on top of the meshes.
	Route []geometry.Vector3
	// Caption, when set, is written into the bottom left corner.
	Caption string
}

// shaded is a projected triangle ready for rasterization
type shaded struct {
	a, b, c screenVertex
	depth   float64
	col     color.NRGBA
}

// Render rasterizes the group as seen by the camera. Opaque meshes are drawn
// first with depth writes; translucent triangles follow back to front.
func Render(group *envelope.Group, cam *Camera, opts RenderOptions) *image.RGBA {
	if opts.Width <= 0 || opts.Height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	scale := max(opts.Supersample, 1)
	width, height := opts.Width*scale, opts.Height*scale

	r, g, b := opts.Background.RGB()
	f := newFrame(width, height, color.RGBA{R: r, G: g, B: b, A: 255})

	var opaque, translucent []shaded
	for _, mesh := range group.Children {
		if mesh.Material == nil || mesh.Material.Opacity <= 0 {
			continue
		}
		isOpaque := mesh.Material.Opacity >= 1
		for _, t := range mesh.WorldTriangles() {
			if t.IsDegenerate() {
				continue
			}
			s := project(cam, t, mesh.Material, float64(width), float64(height))
			if isOpaque {
				opaque = append(opaque, s)
			} else {
				translucent = append(translucent, s)
			}
		}
	}

	for _, s := range opaque {
		f.fillTriangle(s.a, s.b, s.c, s.col, true)
	}
	sort.SliceStable(translucent, func(i, j int) bool {
		return translucent[i].depth > translucent[j].depth
	})
	for _, s := range translucent {
		f.fillTriangle(s.a, s.b, s.c, s.col, false)
	}

	if len(opts.Route) > 1 {
		drawRoute(f, cam, opts.Route, scale)
	}

	img := f.img
	if scale > 1 {
		img = image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.CatmullRom.Scale(img, img.Bounds(), f.img, f.img.Bounds(), draw.Src, nil)
	}

	if opts.Caption != "" {
		if err := drawCaption(img, opts.Caption); err != nil {
			envelope.Logger().Warn("viewer: caption skipped", "error", err)
		}
	}
	return img
}

func project(cam *Camera, t geometry.Triangle, m *envelope.Material, width, height float64) shaded {
	var s shaded
	x, y, z := cam.Project(t.V1, width, height)
	s.a = screenVertex{x, y, z}
	x, y, z = cam.Project(t.V2, width, height)
	s.b = screenVertex{x, y, z}
	x, y, z = cam.Project(t.V3, width, height)
	s.c = screenVertex{x, y, z}
	_, _, s.depth = cam.Project(t.Center(), width, height)

	s.col = shade(m, t.CalculateNormal())
	return s
}

// shade lights a face of the material. Both faces are lit the same way;
// only the angle to the light counts.
func shade(m *envelope.Material, normal geometry.Vector3) color.NRGBA {
	intensity := ambient + (1-ambient)*math.Abs(normal.Dot(light))
	col := m.Color.NRGBA(m.Opacity)
	col.R = uint8(float64(col.R) * intensity)
	col.G = uint8(float64(col.G) * intensity)
	col.B = uint8(float64(col.B) * intensity)
	return col
}

func drawRoute(f *frame, cam *Camera, route []geometry.Vector3, scale int) {
	bounds := f.img.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	limit := 4 * math.Max(w, h)

	for i := 1; i < len(route); i++ {
		x1, y1, _ := cam.Project(route[i-1], w, h)
		x2, y2, _ := cam.Project(route[i], w, h)
		if math.Abs(x1) > limit || math.Abs(y1) > limit || math.Abs(x2) > limit || math.Abs(y2) > limit {
			continue
		}
		// Thicken the overlay so it survives downsampling.
		for o := 0; o < scale; o++ {
			f.drawLine(int(x1)+o, int(y1), int(x2)+o, int(y2), RouteColor)
		}
	}
}

// SavePNG renders the group into a PNG file
func SavePNG(filename string, group *envelope.Group, cam *Camera, opts RenderOptions) error {
	img := Render(group, cam, opts)

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create preview: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return file.Close()
}
