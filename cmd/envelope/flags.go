package main

import (
	"fmt"

	"github.com/philipparndt/envelope/internal/pipeline"
	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/viewer"
	"github.com/spf13/cobra"
)

// envelopeFlags are the assembly options every generating command accepts
type envelopeFlags struct {
	width   float64
	height  float64
	color   string
	opacity float64
	reuse   bool
}

func (f *envelopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.width, "width", "w", 0, "Cross-section width (overrides route file and config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Top cap thickness")
	cmd.Flags().StringVarP(&f.color, "color", "c", "", "Wall and floor tint as #rrggbb")
	cmd.Flags().Float64Var(&f.opacity, "opacity", 1, "Opacity multiplier for all layers")
	cmd.Flags().BoolVar(&f.reuse, "reuse", false, "Share materials through the process-wide cache")
}

// override returns the flag layer; only flags set on the command line apply
func (f *envelopeFlags) override(cmd *cobra.Command) (pipeline.Override, error) {
	var tint *envelope.Color
	if cmd.Flags().Changed("color") {
		c, err := envelope.ParseColor(f.color)
		if err != nil {
			return nil, err
		}
		tint = &c
	}
	if cmd.Flags().Changed("width") && f.width <= 0 {
		return nil, fmt.Errorf("--width must be positive")
	}
	if cmd.Flags().Changed("height") && f.height <= 0 {
		return nil, fmt.Errorf("--height must be positive")
	}
	if cmd.Flags().Changed("opacity") && f.opacity < 0 {
		return nil, fmt.Errorf("--opacity must not be negative")
	}

	return func(o envelope.Options) envelope.Options {
		if cmd.Flags().Changed("width") {
			o.Width = f.width
		}
		if cmd.Flags().Changed("height") {
			o.Height = f.height
		}
		if tint != nil {
			o = o.WithColor(*tint)
		}
		if cmd.Flags().Changed("opacity") {
			o = o.WithOpacity(f.opacity)
		}
		if cmd.Flags().Changed("reuse") {
			o.ReuseResources = f.reuse
		}
		return o
	}, nil
}

// generate runs the pipeline with config, route file and flags layered
func (f *envelopeFlags) generate(cmd *cobra.Command, filename string) (*pipeline.Result, error) {
	override, err := f.override(cmd)
	if err != nil {
		return nil, err
	}
	return pipeline.Generate(filename, cfg.Options(), override)
}

// previewFlags control PNG rendering
type previewFlags struct {
	width       int
	height      int
	supersample int
	yaw         float64
	pitch       float64
	showRoute   bool
	caption     bool
}

func (p *previewFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.width, "png-width", 0, "Preview width in pixels (default from config)")
	cmd.Flags().IntVar(&p.height, "png-height", 0, "Preview height in pixels (default from config)")
	cmd.Flags().IntVar(&p.supersample, "supersample", 0, "Supersampling factor (default from config)")
	cmd.Flags().Float64Var(&p.yaw, "yaw", viewer.DefaultYaw, "Camera yaw in radians")
	cmd.Flags().Float64Var(&p.pitch, "pitch", viewer.DefaultPitch, "Camera pitch in radians")
	cmd.Flags().BoolVar(&p.showRoute, "route", false, "Draw the route over the envelope")
	cmd.Flags().BoolVar(&p.caption, "caption", true, "Label the preview with the route name and triangle count")
}

func (p *previewFlags) options(result *pipeline.Result) (*viewer.Camera, viewer.RenderOptions) {
	opts := viewer.RenderOptions{
		Width:       firstPositive(p.width, cfg.Preview.Width),
		Height:      firstPositive(p.height, cfg.Preview.Height),
		Supersample: firstPositive(p.supersample, cfg.Preview.Supersample),
		Background:  cfg.BackgroundColor(),
	}
	if p.showRoute {
		opts.Route = result.Path
	}
	if p.caption {
		opts.Caption = fmt.Sprintf("%s: %d triangles", result.Name(), result.Model().TriangleCount())
	}

	cam := viewer.NewCamera(result.Group.BoundingBox())
	cam.Pitch, cam.Yaw = 0, p.yaw
	cam.Rotate(p.pitch, 0)
	return cam, opts
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
