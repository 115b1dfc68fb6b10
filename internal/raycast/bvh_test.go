package raycast

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// randomMesh builds a mesh of n independent, non-degenerate triangles
// scattered inside a cube, for BVH coverage/invariant tests (spec §8 S6).
func randomMesh(t *testing.T, n int, seed int64) *TriangleMesh {
	t.Helper()
	r := rand.New(rand.NewSource(seed))

	verts := make([]float32, 0, n*9)
	indices := make([]uint32, 0, n*3)
	for i := 0; i < n; i++ {
		cx, cy, cz := r.Float32()*100-50, r.Float32()*100-50, r.Float32()*100-50
		verts = append(verts,
			cx, cy, cz,
			cx+1+r.Float32(), cy, cz,
			cx, cy+1+r.Float32(), cz,
		)
		base := uint32(i * 3)
		indices = append(indices, base, base+1, base+2)
	}

	mesh, err := NewTriangleMesh(verts, indices)
	require.NoError(t, err)
	return mesh
}

func TestBuildBVH_LeafRangesPartitionTriangleIndices(t *testing.T) {
	mesh := randomMesh(t, 1000, 42)
	bvh := BuildBVH(mesh)

	seen := make([]bool, mesh.TriangleCount())
	var walk func(idx int32)
	walk = func(idx int32) {
		n := bvh.nodes[idx]
		if n.IsLeaf() {
			for i := n.Begin; i < n.End; i++ {
				triIdx := bvh.perm[i]
				require.False(t, seen[triIdx], "triangle %d referenced by more than one leaf", triIdx)
				seen[triIdx] = true
			}
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(0)

	for i, s := range seen {
		require.True(t, s, "triangle %d never referenced by any leaf", i)
	}
}

func TestBuildBVH_NodeAABBsEncloseContents(t *testing.T) {
	mesh := randomMesh(t, 500, 7)
	bvh := BuildBVH(mesh)

	var walk func(idx int32) AABB
	walk = func(idx int32) AABB {
		n := bvh.nodes[idx]
		if n.IsLeaf() {
			box := EmptyAABB()
			for i := n.Begin; i < n.End; i++ {
				triIdx := int(bvh.perm[i])
				v0, v1, v2 := mesh.Vertices(triIdx)
				box = box.ExpandPoint(v0).ExpandPoint(v1).ExpandPoint(v2)
			}
			assertEncloses(t, n.Box, box)
			return n.Box
		}
		left := walk(n.Left)
		right := walk(n.Right)
		childUnion := left.Union(right)
		assertEncloses(t, n.Box, childUnion)
		return n.Box
	}
	walk(0)
}

func assertEncloses(t *testing.T, outer, inner AABB) {
	t.Helper()
	if inner.Min.X < outer.Min.X || inner.Min.Y < outer.Min.Y || inner.Min.Z < outer.Min.Z ||
		inner.Max.X > outer.Max.X || inner.Max.Y > outer.Max.Y || inner.Max.Z > outer.Max.Z {
		t.Errorf("box %+v does not enclose %+v", outer, inner)
	}
}

func TestBuildBVH_DeterministicAcrossIdenticalInputs(t *testing.T) {
	mesh1 := randomMesh(t, 200, 99)
	mesh2 := randomMesh(t, 200, 99)

	bvh1 := BuildBVH(mesh1)
	bvh2 := BuildBVH(mesh2)

	require.Equal(t, bvh1.NodeCount(), bvh2.NodeCount())
	if diff := cmp.Diff(bvh1.Permutation(), bvh2.Permutation()); diff != "" {
		t.Errorf("reload permutation mismatch (-first +second):\n%s", diff)
	}
}

func TestBuildBVH_SmallRangeIsLeaf(t *testing.T) {
	mesh := randomMesh(t, LeafThreshold, 5)
	bvh := BuildBVH(mesh)
	require.Equal(t, 1, bvh.NodeCount(), "a range at or below LeafThreshold must build a single leaf")
	require.True(t, bvh.nodes[0].IsLeaf())
}

func TestBuildBVH_CoincidentCentroidsForceLeaf(t *testing.T) {
	// Every triangle centered at the same point: the median split can
	// never separate them, so the builder must fall back to a leaf
	// regardless of range size (spec §4.2.e).
	n := LeafThreshold + 5
	verts := make([]float32, 0, n*9)
	indices := make([]uint32, 0, n*3)
	for i := 0; i < n; i++ {
		verts = append(verts, 0, 0, 0, 1, 0, 0, 0, 1, 0)
		base := uint32(i * 3)
		indices = append(indices, base, base+1, base+2)
	}
	mesh, err := NewTriangleMesh(verts, indices)
	require.NoError(t, err)

	bvh := BuildBVH(mesh)
	require.Equal(t, 1, bvh.NodeCount())
}

func TestBuildBVH_EmptyMesh(t *testing.T) {
	mesh, err := NewTriangleMesh(nil, nil)
	require.NoError(t, err)
	bvh := BuildBVH(mesh)
	require.Equal(t, 1, bvh.NodeCount())
	require.True(t, bvh.nodes[0].IsLeaf())
	require.Equal(t, int32(0), bvh.nodes[0].Begin)
	require.Equal(t, int32(0), bvh.nodes[0].End)
}
