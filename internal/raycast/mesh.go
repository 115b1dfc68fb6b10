package raycast

import "fmt"

// Triangle holds the three vertex indices of a single triangle. Triangles
// are single-sided for interpretation but the ray test treats every
// triangle as double-sided.
type Triangle struct {
	I0, I1, I2 uint32
}

// TriangleMesh owns the caller's indexed mesh plus the per-triangle
// centroid and AABB precomputed once at load time for the BVH builder.
type TriangleMesh struct {
	vertices  []Vec3
	triangles []Triangle

	centroids [][3]float64 // parallel to triangles, kept as a flat axis array for the builder's axis scans
	aabbs     []AABB        // parallel to triangles
}

// NewTriangleMesh validates and wraps a flat vertex buffer (3*N floats) and
// a flat index buffer (3*M uint32s) into a TriangleMesh. Degenerate
// triangles (two or more equal indices) are kept — they contribute an
// ill-formed AABB/centroid and never report a hit — rather than rejected,
// matching spec §4.1.
func NewTriangleMesh(vertsFlat []float32, indicesFlat []uint32) (*TriangleMesh, error) {
	if len(vertsFlat)%3 != 0 {
		return nil, fmt.Errorf("%w: vertex buffer length %d is not a multiple of 3", ErrInvalidGeometry, len(vertsFlat))
	}
	if len(indicesFlat)%3 != 0 {
		return nil, fmt.Errorf("%w: index buffer length %d is not a multiple of 3", ErrInvalidGeometry, len(indicesFlat))
	}

	vertexCount := len(vertsFlat) / 3
	if vertexCount > maxVertexCount {
		return nil, fmt.Errorf("%w: vertex count %d exceeds %d", ErrInvalidGeometry, vertexCount, maxVertexCount)
	}

	vertices := make([]Vec3, vertexCount)
	for i := 0; i < vertexCount; i++ {
		v := Vec3{
			X: float64(vertsFlat[3*i]),
			Y: float64(vertsFlat[3*i+1]),
			Z: float64(vertsFlat[3*i+2]),
		}
		if !v.Finite() {
			return nil, fmt.Errorf("%w: vertex %d is not finite", ErrInvalidGeometry, i)
		}
		vertices[i] = v
	}

	triCount := len(indicesFlat) / 3
	triangles := make([]Triangle, triCount)
	for i := 0; i < triCount; i++ {
		i0, i1, i2 := indicesFlat[3*i], indicesFlat[3*i+1], indicesFlat[3*i+2]
		if int(i0) >= vertexCount || int(i1) >= vertexCount || int(i2) >= vertexCount {
			return nil, fmt.Errorf("%w: triangle %d references index >= vertex count %d", ErrInvalidGeometry, i, vertexCount)
		}
		triangles[i] = Triangle{I0: i0, I1: i1, I2: i2}
	}

	m := &TriangleMesh{
		vertices:  vertices,
		triangles: triangles,
		centroids: make([][3]float64, triCount),
		aabbs:     make([]AABB, triCount),
	}
	m.precompute()
	return m, nil
}

func (m *TriangleMesh) precompute() {
	for i, t := range m.triangles {
		v0, v1, v2 := m.vertices[t.I0], m.vertices[t.I1], m.vertices[t.I2]
		c := Vec3{
			X: (v0.X + v1.X + v2.X) / 3,
			Y: (v0.Y + v1.Y + v2.Y) / 3,
			Z: (v0.Z + v1.Z + v2.Z) / 3,
		}
		m.centroids[i] = [3]float64{c.X, c.Y, c.Z}

		box := EmptyAABB()
		box = box.ExpandPoint(v0)
		box = box.ExpandPoint(v1)
		box = box.ExpandPoint(v2)
		m.aabbs[i] = box
	}
}

// TriangleCount returns the number of triangles (M) in the mesh.
func (m *TriangleMesh) TriangleCount() int { return len(m.triangles) }

// VertexCount returns the number of vertices (N) in the mesh.
func (m *TriangleMesh) VertexCount() int { return len(m.vertices) }

// Vertices returns the three vertex positions of triangle i, in winding
// order (v0, v1, v2).
func (m *TriangleMesh) Vertices(i int) (v0, v1, v2 Vec3) {
	t := m.triangles[i]
	return m.vertices[t.I0], m.vertices[t.I1], m.vertices[t.I2]
}

// Centroid returns the precomputed component-wise mean of triangle i's
// vertices.
func (m *TriangleMesh) Centroid(i int) Vec3 {
	c := m.centroids[i]
	return Vec3{c[0], c[1], c[2]}
}

// CentroidAxis returns the centroid coordinate of triangle i along axis
// (0=x, 1=y, 2=z), avoiding a Vec3 allocation in the builder's hot path.
func (m *TriangleMesh) CentroidAxis(i, axis int) float64 {
	return m.centroids[i][axis]
}

// AABB returns the precomputed world-space bounding box of triangle i.
func (m *TriangleMesh) AABB(i int) AABB {
	return m.aabbs[i]
}
