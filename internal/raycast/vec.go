// Package raycast implements a ray-cast engine for a rotating multi-beam
// LiDAR sensor against a static triangle-mesh environment: BVH construction,
// closest-hit traversal, and a sensor/scan driver built on top of it.
package raycast

import "math"

// Vec3 is a three-component vector or point. All geometry is right-handed;
// the sensor ray generator fixes y as up but the math here is axis-agnostic.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Length() float64 { return math.Sqrt(a.Dot(a)) }

// Unit returns a by its length; the zero vector is returned unchanged.
func (a Vec3) Unit() Vec3 {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Component returns the i'th axis (0=x, 1=y, 2=z) of a.
func (a Vec3) Component(i int) float64 {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// Finite reports whether every component of a is a finite IEEE-754 float.
func (a Vec3) Finite() bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0) &&
		!math.IsNaN(a.Z) && !math.IsInf(a.Z, 0)
}

// Quaternion is (x,y,z,w); identity is (0,0,0,1). The core never normalizes
// an input quaternion — a non-unit q is the caller's responsibility
// (spec Open Question: left undefined, not an error).
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion is the no-rotation orientation.
var IdentityQuaternion = Quaternion{0, 0, 0, 1}

// RotateVec rotates v by q using v' = v + 2w(q×v) + 2(q×(q×v)). If q is not
// unit length the result is not length-preserving; the caller is
// contractually responsible for supplying a unit quaternion.
func (q Quaternion) RotateVec(v Vec3) Vec3 {
	qv := Vec3{q.X, q.Y, q.Z}
	t := qv.Cross(v).Scale(2 * q.W)
	u := qv.Cross(qv.Cross(v)).Scale(2)
	return v.Add(t).Add(u)
}

// AABB is an axis-aligned bounding box with componentwise Min ≤ Max. The
// empty box uses +inf/-inf so that Union with any real box yields that box.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a box that contains nothing; Union'ing anything into it
// produces that thing's box.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Union returns the smallest box enclosing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y), math.Min(a.Min.Z, b.Min.Z)},
		Max: Vec3{math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y), math.Max(a.Max.Z, b.Max.Z)},
	}
}

// ExpandPoint grows a to include p.
func (a AABB) ExpandPoint(p Vec3) AABB {
	return AABB{
		Min: Vec3{math.Min(a.Min.X, p.X), math.Min(a.Min.Y, p.Y), math.Min(a.Min.Z, p.Z)},
		Max: Vec3{math.Max(a.Max.X, p.X), math.Max(a.Max.Y, p.Y), math.Max(a.Max.Z, p.Z)},
	}
}

// Centroid returns the midpoint of the box.
func (a AABB) Centroid() Vec3 {
	return Vec3{
		(a.Min.X + a.Max.X) / 2,
		(a.Min.Y + a.Max.Y) / 2,
		(a.Min.Z + a.Max.Z) / 2,
	}
}

// LongestAxis returns the axis index (0=x, 1=y, 2=z) along which a is widest.
func (a AABB) LongestAxis() int {
	d := a.Max.Sub(a.Min)
	axis := 0
	best := d.X
	if d.Y > best {
		axis, best = 1, d.Y
	}
	if d.Z > best {
		axis = 2
	}
	return axis
}

// IntersectSlab runs the standard ray-AABB slab test using reciprocal
// direction components. dir need not be normalized for this test; invDir is
// precomputed by the caller (1/dir.X etc.) and may legitimately contain
// ±Inf, which the IEEE-754 arithmetic handles correctly for axis-aligned
// rays. Returns (tEnter, tExit, hit).
func (a AABB) IntersectSlab(origin Vec3, invDir Vec3, tMax float64) (float64, float64, bool) {
	tMin, tMaxOut := 0.0, tMax

	for axis := 0; axis < 3; axis++ {
		o := origin.Component(axis)
		inv := invDir.Component(axis)
		lo := (a.Min.Component(axis) - o) * inv
		hi := (a.Max.Component(axis) - o) * inv
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo > tMin {
			tMin = lo
		}
		if hi < tMaxOut {
			tMaxOut = hi
		}
		if tMin > tMaxOut {
			return tMin, tMaxOut, false
		}
	}
	return tMin, tMaxOut, true
}
