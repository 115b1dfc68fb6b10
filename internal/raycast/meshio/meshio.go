// Package meshio reads a minimal text mesh format for cmd/raycastsim, so
// the demo CLI can run end-to-end without a host scene-graph extractor
// (spec.md §1 marks scene-graph extraction out of scope for the core).
// The format is deliberately not Wavefront OBJ, to avoid implying
// compatibility with a format this package does not fully parse:
//
//	v <x> <y> <z>      one per vertex, in declaration order
//	t <i0> <i1> <i2>   one per triangle, indices into the v lines above
//	# comment          ignored, as are blank lines
package meshio

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/velocity.report/internal/fsutil"
)

// Mesh is the flat vertex/index buffer pair a raycast.TriangleMesh
// expects (spec §6's external interface: flat 3*N floats, flat 3*M
// uint32s).
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// Load reads and parses a .mesh file at path using fs, the way
// internal/fsutil.FileSystem is used elsewhere in this repo to make
// file access injectable for tests.
func Load(fs fsutil.FileSystem, path string) (Mesh, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return Mesh{}, fmt.Errorf("meshio: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes the .mesh text format described in the package doc
// comment from data.
func Parse(data []byte) (Mesh, error) {
	var mesh Mesh

	scanner := bufio.NewScanner(bytes.NewReader(data))
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
			v, err := parseVertex(fields[1:])
			if err != nil {
				return Mesh{}, fmt.Errorf("meshio: line %d: %w", lineNo, err)
			}
			mesh.Vertices = append(mesh.Vertices, v[0], v[1], v[2])
		case "t":
			idx, err := parseTriangle(fields[1:])
			if err != nil {
				return Mesh{}, fmt.Errorf("meshio: line %d: %w", lineNo, err)
			}
			mesh.Indices = append(mesh.Indices, idx[0], idx[1], idx[2])
		default:
			return Mesh{}, fmt.Errorf("meshio: line %d: unknown directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return Mesh{}, fmt.Errorf("meshio: scan failed: %w", err)
	}
	return mesh, nil
}

func parseVertex(fields []string) ([3]float32, error) {
	if len(fields) != 3 {
		return [3]float32{}, fmt.Errorf("expected 3 vertex components, got %d", len(fields))
	}
	var v [3]float32
	for i, f := range fields {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return [3]float32{}, fmt.Errorf("invalid vertex component %q: %w", f, err)
		}
		v[i] = float32(val)
	}
	return v, nil
}

func parseTriangle(fields []string) ([3]uint32, error) {
	if len(fields) != 3 {
		return [3]uint32{}, fmt.Errorf("expected 3 triangle indices, got %d", len(fields))
	}
	var idx [3]uint32
	for i, f := range fields {
		val, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return [3]uint32{}, fmt.Errorf("invalid triangle index %q: %w", f, err)
		}
		idx[i] = uint32(val)
	}
	return idx, nil
}
