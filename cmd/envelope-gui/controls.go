package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/envelope/internal/pipeline"
	"github.com/philipparndt/envelope/pkg/envelope"
)

// Controls are the envelope options editable in the side panel
type Controls struct {
	width     *widget.Slider
	height    *widget.Slider
	opacity   *widget.Slider
	tint      *widget.Entry
	reuse     *widget.Check
	showRoute *widget.Check

	// updating suppresses callbacks while values are set programmatically
	updating bool
}

func newControls(onChange func(), onShowRoute func(bool)) *Controls {
	c := &Controls{
		width:   widget.NewSlider(1, 200),
		height:  widget.NewSlider(1, 200),
		opacity: widget.NewSlider(0, 1),
		tint:    widget.NewEntry(),
	}
	c.opacity.Step = 0.05
	c.tint.SetPlaceHolder("#rrggbb")

	changed := func(float64) {
		if !c.updating {
			onChange()
		}
	}
	c.width.OnChangeEnded = changed
	c.height.OnChangeEnded = changed
	c.opacity.OnChangeEnded = changed
	c.tint.OnSubmitted = func(string) { onChange() }

	c.reuse = widget.NewCheck("Reuse shared materials", func(bool) {
		if !c.updating {
			onChange()
		}
	})
	c.showRoute = widget.NewCheck("Show route", onShowRoute)
	return c
}

func (c *Controls) form() *widget.Form {
	return widget.NewForm(
		widget.NewFormItem("Width", c.width),
		widget.NewFormItem("Height", c.height),
		widget.NewFormItem("Opacity", c.opacity),
		widget.NewFormItem("Tint", c.tint),
		widget.NewFormItem("", c.reuse),
	)
}

// load shows the options an envelope was generated with
func (c *Controls) load(opts envelope.Options) {
	c.updating = true
	defer func() { c.updating = false }()

	c.width.SetValue(orDefault(opts.Width, envelope.DefaultWidth))
	c.height.SetValue(orDefault(opts.Height, envelope.DefaultHeight))
	opacity := 1.0
	if opts.OpacityModifier != nil {
		opacity = *opts.OpacityModifier
	}
	c.opacity.SetValue(opacity)
	if opts.Color != nil {
		c.tint.SetText(opts.Color.String())
	} else {
		c.tint.SetText("")
	}
	c.reuse.SetChecked(opts.ReuseResources)
}

// override turns the control values into the last option layer
func (c *Controls) override() (pipeline.Override, error) {
	var tint *envelope.Color
	if text := strings.TrimSpace(c.tint.Text); text != "" {
		color, err := envelope.ParseColor(text)
		if err != nil {
			return nil, fmt.Errorf("tint: %w", err)
		}
		tint = &color
	}

	width, height, opacity, reuse := c.width.Value, c.height.Value, c.opacity.Value, c.reuse.Checked
	return func(o envelope.Options) envelope.Options {
		o.Width = width
		o.Height = height
		o.ReuseResources = reuse
		o.Color = nil
		if tint != nil {
			o = o.WithColor(*tint)
		}
		return o.WithOpacity(opacity)
	}, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
