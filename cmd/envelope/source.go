package main

import (
	"fmt"

	"github.com/philipparndt/envelope/internal/pipeline"
	"github.com/philipparndt/envelope/pkg/geometry"
	"github.com/philipparndt/envelope/pkg/stl"
	"github.com/spf13/cobra"
)

// meshSource loads triangles from a route file, optionally limited to one
// generated sub-mesh, or from an STL file
type meshSource struct {
	envelopeFlags
	mesh string
}

func (s *meshSource) register(cmd *cobra.Command) {
	s.envelopeFlags.register(cmd)
	cmd.Flags().StringVarP(&s.mesh, "mesh", "m", "", "Limit a route envelope to one sub-mesh: top, wall or floor")
}

func (s *meshSource) load(cmd *cobra.Command, filename string) ([]geometry.Triangle, error) {
	if !pipeline.IsRouteFile(filename) {
		if s.mesh != "" {
			return nil, fmt.Errorf("--mesh only applies to route files")
		}
		model, err := stl.Parse(filename)
		if err != nil {
			return nil, fmt.Errorf("error parsing STL file: %w", err)
		}
		return model.Triangles, nil
	}

	result, err := s.generate(cmd, filename)
	if err != nil {
		return nil, err
	}
	defer result.Close()
	return result.Triangles(s.mesh)
}
