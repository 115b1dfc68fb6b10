package raycast

const (
	epsilonT   = 1e-6 // minimum accepted hit distance
	epsilonB   = 1e-6 // barycentric slack at triangle edges
	epsilonDet = 1e-8 // near-parallel ray/triangle rejection threshold
)

// Hit is a closest-hit ray query result.
type Hit struct {
	T     float64
	Point Vec3
}

// Query runs a closest-hit ray query against b: origin + t*dir for
// t in (epsilonT, tMax]. dir must be unit length; callers that only have a
// non-unit direction should normalize first (the sensor ray generator
// always supplies unit directions by construction). Returns ok=false on a
// miss.
func (b *BVH) Query(origin, dir Vec3, tMax float64) (Hit, bool) {
	invDir := Vec3{
		X: 1 / dir.X,
		Y: 1 / dir.Y,
		Z: 1 / dir.Z,
	}

	bestT := tMax
	found := false

	if len(b.nodes) == 0 {
		return Hit{}, false
	}

	// Explicit stack, bounded by tree depth; avoids recursion per spec §4.3.
	stack := make([]int32, 0, 64)
	stack = append(stack, 0)

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[idx]

		if tEnter, _, hit := node.Box.IntersectSlab(origin, invDir, bestT); !hit || tEnter >= bestT {
			continue
		}

		if node.IsLeaf() {
			for i := node.Begin; i < node.End; i++ {
				triIdx := int(b.perm[i])
				if t, ok := b.intersectTriangle(triIdx, origin, dir, bestT); ok {
					bestT = t
					found = true
				}
			}
			continue
		}

		left, right := &b.nodes[node.Left], &b.nodes[node.Right]
		lEnter, _, lHit := left.Box.IntersectSlab(origin, invDir, bestT)
		rEnter, _, rHit := right.Box.IntersectSlab(origin, invDir, bestT)

		// Push in far-then-near order so the nearer child pops first;
		// descend-nearer-first is what lets a close hit prune the farther
		// subtree before it is ever visited.
		switch {
		case lHit && rHit:
			if lEnter <= rEnter {
				if rEnter < bestT {
					stack = append(stack, node.Right)
				}
				stack = append(stack, node.Left)
			} else {
				if lEnter < bestT {
					stack = append(stack, node.Left)
				}
				stack = append(stack, node.Right)
			}
		case lHit:
			stack = append(stack, node.Left)
		case rHit:
			stack = append(stack, node.Right)
		}
	}

	if !found {
		return Hit{}, false
	}
	return Hit{T: bestT, Point: origin.Add(dir.Scale(bestT))}, true
}

// intersectTriangle is Möller–Trumbore, double-sided: a triangle is hit
// regardless of winding, per spec §3/§4.3.
func (b *BVH) intersectTriangle(triIdx int, origin, dir Vec3, tMax float64) (float64, bool) {
	v0, v1, v2 := b.mesh.Vertices(triIdx)

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -epsilonDet && det < epsilonDet {
		return 0, false
	}
	invDet := 1 / det

	tvec := origin.Sub(v0)
	u := tvec.Dot(pvec) * invDet
	if u < -epsilonB || u > 1+epsilonB {
		return 0, false
	}

	qvec := tvec.Cross(edge1)
	v := dir.Dot(qvec) * invDet
	if v < -epsilonB || u+v > 1+epsilonB {
		return 0, false
	}

	t := edge2.Dot(qvec) * invDet
	if t <= epsilonT || t > tMax {
		return 0, false
	}
	return t, true
}
