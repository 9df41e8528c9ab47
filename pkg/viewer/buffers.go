package viewer

import (
	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/philipparndt/envelope/pkg/geometry"
)

// MeshBuffers is a sub-mesh flattened for upload to a GPU: three floats per
// vertex for positions and normals, four bytes per vertex for the baked
// color. Positions are in world space.
type MeshBuffers struct {
	Name        string
	Vertices    []float32
	Normals     []float32
	Colors      []uint8
	Opaque      bool
	DoubleSided bool
}

// VertexCount returns the number of vertices
func (b MeshBuffers) VertexCount() int {
	return len(b.Vertices) / 3
}

// TriangleCount returns the number of triangles
func (b MeshBuffers) TriangleCount() int {
	return len(b.Vertices) / 9
}

// NewMeshBuffers flattens a sub-mesh. Unrotated geometry is copied as is;
// rotated geometry such as the floor is moved to world space first.
func NewMeshBuffers(mesh *envelope.Mesh) MeshBuffers {
	b := MeshBuffers{Name: mesh.Name}
	if mesh.Geometry == nil || mesh.Material == nil {
		return b
	}
	b.Opaque = mesh.Material.Opacity >= 1
	b.DoubleSided = mesh.Material.Side == envelope.DoubleSide

	var triangles []geometry.Triangle
	if mesh.Rotation == (geometry.Vector3{}) {
		positions := mesh.Geometry.Positions()
		b.Vertices = make([]float32, len(positions))
		copy(b.Vertices, positions)
		triangles = geometry.TrianglesFromPositions(positions)
	} else {
		triangles = mesh.WorldTriangles()
		b.Vertices = make([]float32, 0, len(triangles)*9)
		for _, t := range triangles {
			b.Vertices = t.V1.AppendFloat32(b.Vertices)
			b.Vertices = t.V2.AppendFloat32(b.Vertices)
			b.Vertices = t.V3.AppendFloat32(b.Vertices)
		}
	}

	b.Normals = make([]float32, 0, len(triangles)*9)
	b.Colors = make([]uint8, 0, len(triangles)*12)
	for _, t := range triangles {
		normal := t.CalculateNormal()
		col := shade(mesh.Material, normal)
		for range 3 {
			b.Normals = normal.AppendFloat32(b.Normals)
			b.Colors = append(b.Colors, col.R, col.G, col.B, col.A)
		}
	}
	return b
}

// GroupBuffers flattens every visible sub-mesh in draw order: opaque meshes
// first, translucent ones after in child order. Invisible meshes are skipped.
func GroupBuffers(group *envelope.Group) []MeshBuffers {
	var opaque, translucent []MeshBuffers
	for _, mesh := range group.Children {
		if mesh.Material == nil || mesh.Material.Opacity <= 0 {
			continue
		}
		b := NewMeshBuffers(mesh)
		if b.TriangleCount() == 0 {
			continue
		}
		if b.Opaque {
			opaque = append(opaque, b)
		} else {
			translucent = append(translucent, b)
		}
	}
	return append(opaque, translucent...)
}
