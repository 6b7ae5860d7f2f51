// Package models loads triangle meshes from OBJ and GLB files.
package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"glyphcast/pkg/geometry"
	"glyphcast/pkg/math3d"
)

// LoadOBJ reads a Wavefront OBJ file and returns its triangles.
// Only `v` and `f` records are interpreted; everything else is
// ignored. Polygon faces are fan-triangulated.
func LoadOBJ(path string) (*geometry.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh, err := ParseOBJ(f, name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ parses OBJ text from r into a mesh with the given name.
func ParseOBJ(r io.Reader, name string) (*geometry.Mesh, error) {
	var verts []math3d.Vec3
	var tris []geometry.Triangle

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var coords [3]float64
			for i := range coords {
				c, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: vertex coordinate %q: %w", lineNo, fields[i+1], err)
				}
				coords[i] = c
			}
			verts = append(verts, math3d.V3(coords[0], coords[1], coords[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]math3d.Vec3, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := faceIndex(ref, len(verts))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, verts[idx])
			}
			// Fan-triangulate around the first corner.
			for i := 1; i+1 < len(corners); i++ {
				tris = append(tris, geometry.Triangle{
					A: corners[0], B: corners[i], C: corners[i+1],
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("obj %q: no faces", name)
	}
	return geometry.NewMesh(name, tris), nil
}

// faceIndex resolves one `f` vertex reference (forms `i`, `i/t`,
// `i/t/n`, `i//n`) to a zero-based vertex index. Negative references
// count back from the most recent vertex.
func faceIndex(ref string, vertCount int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	i, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("face index %q: %w", ref, err)
	}
	switch {
	case i > 0 && i <= vertCount:
		return i - 1, nil
	case i < 0 && -i <= vertCount:
		return vertCount + i, nil
	default:
		return 0, fmt.Errorf("face index %d out of range (%d vertices)", i, vertCount)
	}
}
