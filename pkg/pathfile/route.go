// Package pathfile reads route files: YAML (or JSON) documents describing a
// route and the appearance of its envelope.
//
//	name: hallway
//	width: 40
//	height: 30
//	color: "#ff8800"
//	opacity: 0.5
//	points:
//	  - [0, 0, 0]
//	  - {x: 100, y: 0, z: 0}
package pathfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/geometry"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoPoints is returned for route files without a points list
	ErrNoPoints = errors.New("route has no points")
	// ErrBadPoint is returned for points that are not three numbers
	ErrBadPoint = errors.New("point must have x, y and z")
	// ErrBadColor is returned for unquoted decimal colors such as 112233
	ErrBadColor = errors.New("color must be \"#rrggbb\" or 0xrrggbb")
)

// Route is the content of a route file
type Route struct {
	Name    string   `yaml:"name"`
	Width   float64  `yaml:"width"`
	Height  float64  `yaml:"height"`
	Color   *Color   `yaml:"color"`
	Opacity *float64 `yaml:"opacity"`
	Points  []Point  `yaml:"points"`
}

// Point is a route point written either as [x, y, z] or {x, y, z}
type Point geometry.Vector3

// Color is a tint written as "#rrggbb" or as an integer
type Color envelope.Color

// Load reads and parses a route file
func Load(filename string) (*Route, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read route file: %w", err)
	}
	route, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return route, nil
}

// Parse decodes a route document
func Parse(data []byte) (*Route, error) {
	var route Route
	if err := yaml.Unmarshal(data, &route); err != nil {
		return nil, fmt.Errorf("failed to parse route: %w", err)
	}
	if len(route.Points) == 0 {
		return nil, ErrNoPoints
	}
	if route.Width < 0 || route.Height < 0 {
		return nil, fmt.Errorf("width and height must not be negative")
	}
	if route.Opacity != nil && *route.Opacity < 0 {
		return nil, fmt.Errorf("opacity must not be negative")
	}
	return &route, nil
}

// Path returns the route points. The slice is a fresh copy.
func (r *Route) Path() []geometry.Vector3 {
	path := make([]geometry.Vector3, len(r.Points))
	for i, p := range r.Points {
		path[i] = geometry.Vector3(p)
	}
	return path
}

// Apply overrides the fields of opts that the route file sets
func (r *Route) Apply(opts envelope.Options) envelope.Options {
	if r.Width > 0 {
		opts.Width = r.Width
	}
	if r.Height > 0 {
		opts.Height = r.Height
	}
	if r.Color != nil {
		opts = opts.WithColor(envelope.Color(*r.Color))
	}
	if r.Opacity != nil {
		opts = opts.WithOpacity(*r.Opacity)
	}
	return opts
}

// UnmarshalYAML accepts a three-element sequence or an x/y/z mapping
func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var coords []float64
		if err := value.Decode(&coords); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		if len(coords) != 3 {
			return fmt.Errorf("line %d: %w, got %d values", value.Line, ErrBadPoint, len(coords))
		}
		*p = Point{X: coords[0], Y: coords[1], Z: coords[2]}
		return nil

	case yaml.MappingNode:
		var coords struct {
			X *float64 `yaml:"x"`
			Y *float64 `yaml:"y"`
			Z *float64 `yaml:"z"`
		}
		if err := value.Decode(&coords); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		if coords.X == nil || coords.Y == nil || coords.Z == nil {
			return fmt.Errorf("line %d: %w", value.Line, ErrBadPoint)
		}
		*p = Point{X: *coords.X, Y: *coords.Y, Z: *coords.Z}
		return nil
	}
	return fmt.Errorf("line %d: %w", value.Line, ErrBadPoint)
}

// UnmarshalYAML accepts "#rrggbb" and "rrggbb" strings and 0xrrggbb
// integers. Plain integers are rejected: 112233 reads as decimal in YAML
// and JSON but as hex everywhere else.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", value.Line)
	}
	if value.Tag == "!!int" && !hasHexPrefix(value.Value) {
		return fmt.Errorf("line %d: %q: %w", value.Line, value.Value, ErrBadColor)
	}
	parsed, err := envelope.ParseColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = Color(parsed)
	return nil
}

func hasHexPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}
