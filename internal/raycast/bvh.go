package raycast

import "sort"

// LeafThreshold is the maximum triangle count a leaf may hold before the
// builder prefers to keep splitting. A range at or below this size always
// becomes a leaf; a range above it becomes a leaf only if the median split
// degenerates (every centroid coincident on the chosen axis).
const LeafThreshold = 4

// bvhNode is a flat depth-first BVH node. Internal nodes carry Left/Right
// child indices into the owning BVH's Nodes slice; leaves carry a
// [Begin, End) range into the triangle-index permutation. IsLeaf
// distinguishes the two since an internal node's Left/Right are always
// nonzero except for the root, which cannot be anyone's child.
type bvhNode struct {
	Box         AABB
	Left, Right int32 // internal node children; Left is -1 for a leaf
	Begin, End  int32 // leaf triangle range into the permutation; Begin==End for internal nodes
}

func (n *bvhNode) IsLeaf() bool { return n.Left < 0 }

// BVH is a binary tree of AABB nodes over a TriangleMesh's triangles,
// built by median-split on the longest centroid axis. The root is node 0.
type BVH struct {
	mesh  *TriangleMesh
	nodes []bvhNode
	perm  []int32 // triangle-index permutation; leaves reference triangles through this
}

// BuildBVH builds a BVH over every triangle in mesh using recursive
// top-down median split (spec §4.2). The source vertex/index buffers are
// never mutated; only the permutation is reordered.
func BuildBVH(mesh *TriangleMesh) *BVH {
	n := mesh.TriangleCount()
	perm := make([]int32, n)
	for i := range perm {
		perm[i] = int32(i)
	}

	b := &BVH{mesh: mesh, perm: perm}
	if n == 0 {
		b.nodes = []bvhNode{{Box: EmptyAABB(), Left: -1, Begin: 0, End: 0}}
		return b
	}

	b.nodes = make([]bvhNode, 0, 2*n)
	b.build(0, int32(n))
	return b
}

// build constructs the subtree over perm[begin:end] and returns its node
// index within b.nodes. Nodes are appended in depth-first, left-before-right
// order, so the root is always node 0.
func (b *BVH) build(begin, end int32) int32 {
	box := EmptyAABB()
	for i := begin; i < end; i++ {
		box = box.Union(b.mesh.AABB(int(b.perm[i])))
	}

	count := end - begin
	if count <= LeafThreshold {
		return b.emitLeaf(box, begin, end)
	}

	centroidBox := EmptyAABB()
	for i := begin; i < end; i++ {
		centroidBox = centroidBox.ExpandPoint(b.mesh.Centroid(int(b.perm[i])))
	}
	axis := centroidBox.LongestAxis()

	mid := (begin + end) / 2
	seg := b.perm[begin:end]
	axisOf := func(idx int32) float64 { return b.mesh.CentroidAxis(int(idx), axis) }

	sort.Slice(seg, func(i, j int) bool {
		ai, aj := axisOf(seg[i]), axisOf(seg[j])
		if ai != aj {
			return ai < aj
		}
		return seg[i] < seg[j] // stable tie-break by triangle index
	})

	lo, hi := axisOf(seg[0]), axisOf(seg[len(seg)-1])
	if lo == hi {
		// Every centroid coincides on the chosen axis: the partition cannot
		// split the range meaningfully, so emit a leaf regardless of size.
		return b.emitLeaf(box, begin, end)
	}

	// Reserve this node's slot before recursing so that a parent always
	// precedes its children in b.nodes.
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{Box: box})

	leftIdx := b.build(begin, mid)
	rightIdx := b.build(mid, end)

	b.nodes[idx].Left = leftIdx
	b.nodes[idx].Right = rightIdx
	return idx
}

func (b *BVH) emitLeaf(box AABB, begin, end int32) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{
		Box:   box,
		Left:  -1,
		Begin: begin,
		End:   end,
	})
	return idx
}

// NodeCount returns the number of nodes in the flat node array.
func (b *BVH) NodeCount() int { return len(b.nodes) }

// Permutation returns the triangle-index permutation backing leaf ranges.
// The returned slice must not be mutated by callers.
func (b *BVH) Permutation() []int32 { return b.perm }
