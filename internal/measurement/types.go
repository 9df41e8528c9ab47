// Package measurement keeps the point-to-point measurements a user takes on
// an envelope in the interactive viewer.
package measurement

import (
	"fmt"
	"math"

	"github.com/philipparndt/envelope/pkg/geometry"
)

// Segment is a single measurement between two picked vertices
type Segment struct {
	Start geometry.Vector3
	End   geometry.Vector3
}

// Length returns the straight-line distance
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Delta returns End - Start
func (s Segment) Delta() geometry.Vector3 {
	return s.End.Sub(s.Start)
}

// Midpoint is where the label is anchored
func (s Segment) Midpoint() geometry.Vector3 {
	return s.Start.Add(s.End).Mul(0.5)
}

// Label formats the length, adding the rise for segments that climb
func (s Segment) Label() string {
	rise := s.Delta().Y
	if math.Abs(rise) < 1e-6 {
		return fmt.Sprintf("%.2f", s.Length())
	}
	return fmt.Sprintf("%.2f (rise %.2f)", s.Length(), rise)
}

// Line is a chain of connected segments
type Line struct {
	Segments []Segment
}

// Length returns the summed segment lengths
func (l Line) Length() float64 {
	total := 0.0
	for _, s := range l.Segments {
		total += s.Length()
	}
	return total
}

// State holds all measurements of one viewer session. SelectedPoints is
// empty or holds the open end of the current line.
type State struct {
	SelectedPoints []geometry.Vector3
	Lines          []Line
	Current        Line
	Hovered        *geometry.Vector3
	// Invalid flags segments, indexed as in Segments, whose endpoints are
	// no longer envelope vertices after a reload.
	Invalid map[int]bool
}

// AddPoint picks a vertex. The second and later picks extend the current line.
func (s *State) AddPoint(p geometry.Vector3) {
	if len(s.SelectedPoints) == 1 {
		if s.SelectedPoints[0] == p {
			return
		}
		s.Current.Segments = append(s.Current.Segments, Segment{Start: s.SelectedPoints[0], End: p})
	}
	s.SelectedPoints = []geometry.Vector3{p}
}

// Finish closes the current line and drops the selection
func (s *State) Finish() {
	if len(s.Current.Segments) > 0 {
		s.Lines = append(s.Lines, s.Current)
	}
	s.Current = Line{}
	s.SelectedPoints = nil
}

// Undo removes the last segment of the current line, or the lone selected point
func (s *State) Undo() {
	if n := len(s.Current.Segments); n > 0 {
		s.SelectedPoints = []geometry.Vector3{s.Current.Segments[n-1].Start}
		s.Current.Segments = s.Current.Segments[:n-1]
		return
	}
	s.SelectedPoints = nil
}

// Clear drops every measurement
func (s *State) Clear() {
	*s = State{}
}

// IsEmpty reports whether nothing is selected or measured
func (s *State) IsEmpty() bool {
	return len(s.SelectedPoints) == 0 && len(s.Current.Segments) == 0 && len(s.Lines) == 0
}

// Segments returns finished lines followed by the current line
func (s *State) Segments() []Segment {
	var segments []Segment
	for _, l := range s.Lines {
		segments = append(segments, l.Segments...)
	}
	return append(segments, s.Current.Segments...)
}

// Preview returns the segment from the open end to the hovered vertex
func (s *State) Preview() (Segment, bool) {
	if len(s.SelectedPoints) != 1 || s.Hovered == nil || *s.Hovered == s.SelectedPoints[0] {
		return Segment{}, false
	}
	return Segment{Start: s.SelectedPoints[0], End: *s.Hovered}, true
}

// Total returns the length of every segment taken so far
func (s *State) Total() float64 {
	total := s.Current.Length()
	for _, l := range s.Lines {
		total += l.Length()
	}
	return total
}

// Revalidate flags segments whose endpoints are not within tolerance of one
// of the vertices, and drops a selected point that vanished. It returns the
// number of invalid segments.
func (s *State) Revalidate(vertices []geometry.Vector3, tolerance float64) int {
	onMesh := func(p geometry.Vector3) bool {
		_, d := nearest(vertices, p)
		return d <= tolerance
	}

	s.Invalid = nil
	for i, seg := range s.Segments() {
		if !onMesh(seg.Start) || !onMesh(seg.End) {
			if s.Invalid == nil {
				s.Invalid = make(map[int]bool)
			}
			s.Invalid[i] = true
		}
	}
	if len(s.SelectedPoints) == 1 && !onMesh(s.SelectedPoints[0]) {
		s.SelectedPoints = nil
	}
	s.Hovered = nil
	return len(s.Invalid)
}
