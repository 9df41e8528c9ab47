package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philipparndt/envelope/pkg/geometry"
)

// Format selects the STL encoding
type Format int

const (
	Binary Format = iota
	ASCII
)

// Save writes the model to a file
func Save(filename string, model *Model, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(file, model, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write encodes the model. Normals are recomputed from the vertex winding.
func Write(w io.Writer, model *Model, format Format) error {
	if format == ASCII {
		return writeASCII(w, model)
	}
	return writeBinary(w, model)
}

func writeBinary(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], model.Name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, t := range model.Triangles {
		f := binaryFacet{
			Normal: toFloat32(t.CalculateNormal()),
			V1:     toFloat32(t.V1),
			V2:     toFloat32(t.V2),
			V3:     toFloat32(t.V3),
		}
		if err := binary.Write(bw, binary.LittleEndian, &f); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	return bw.Flush()
}

func writeASCII(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)
	name := strings.Join(strings.Fields(model.Name), "_")

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range model.Triangles {
		n := t.CalculateNormal()
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", n.X, n.Y, n.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ASCII STL: %w", err)
	}
	return nil
}
