package raycast

import (
	"math"
	"math/rand"
	"testing"

	"github.com/banshee-data/velocity.report/internal/testutil"
)

// groundPlaneMesh builds the S1/S2/S3/S5 fixture plane from spec §8, at
// the given y-height.
func groundPlaneMesh(t *testing.T, y float32) *TriangleMesh {
	t.Helper()
	verts := []float32{
		-10, y, -10,
		10, y, -10,
		10, y, 10,
		-10, y, 10,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	mesh, err := NewTriangleMesh(verts, indices)
	testutil.AssertNoError(t, err)
	return mesh
}

func groundScanConfig() SensorConfig {
	return SensorConfig{
		HorizontalResolution: 36,
		VerticalChannels:     4,
		VerticalFovUpperDeg:  -10,
		VerticalFovLowerDeg:  -20,
		MinRange:             0.1,
		MaxRange:             20,
		NoiseStddev:          0,
	}
}

// S1: downward ground plane hits.
func TestScan_S1_DownwardGroundPlaneHits(t *testing.T) {
	bvh := BuildBVH(groundPlaneMesh(t, 0))
	cfg := groundScanConfig()
	pose := NewPose(Vec3{0, 1, 0})

	out, hitCount := RunScan(bvh, cfg, pose, NewNoiseSource(0, rand.NewSource(1)), nil)

	if hitCount != 144 {
		t.Fatalf("hitCount = %d, want 144", hitCount)
	}
	if len(out) != 3*hitCount {
		t.Fatalf("len(out) = %d, want %d", len(out), 3*hitCount)
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	for i := 0; i < hitCount; i++ {
		x, y := float64(out[3*i]), float64(out[3*i+1])
		if math.Abs(y) >= 0.01 {
			t.Errorf("hit %d: |y| = %v, want < 0.01", i, math.Abs(y))
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}
	if maxX-minX <= 1.0 {
		t.Errorf("max_x - min_x = %v, want > 1.0", maxX-minX)
	}
}

// S2: elevated plane, same hit count, shifted y.
func TestScan_S2_ElevatedPlane(t *testing.T) {
	bvh := BuildBVH(groundPlaneMesh(t, 0.5))
	cfg := groundScanConfig()
	pose := NewPose(Vec3{0, 1, 0})

	out, hitCount := RunScan(bvh, cfg, pose, NewNoiseSource(0, rand.NewSource(1)), nil)
	if hitCount != 144 {
		t.Fatalf("hitCount = %d, want 144", hitCount)
	}
	for i := 0; i < hitCount; i++ {
		y := float64(out[3*i+1])
		if math.Abs(y-0.5) >= 0.01 {
			t.Errorf("hit %d: y = %v, want within 0.01 of 0.5", i, y)
		}
	}
}

// S3: out of range.
func TestScan_S3_OutOfRange(t *testing.T) {
	bvh := BuildBVH(groundPlaneMesh(t, 0))
	cfg := groundScanConfig()
	cfg.MaxRange = 0.5
	pose := NewPose(Vec3{0, 1, 0})

	_, hitCount := RunScan(bvh, cfg, pose, NewNoiseSource(0, rand.NewSource(1)), nil)
	if hitCount != 0 {
		t.Errorf("hitCount = %d, want 0", hitCount)
	}
}

func TestScan_NoiseFreeRunsAreBitReproducible(t *testing.T) {
	bvh := BuildBVH(groundPlaneMesh(t, 0))
	cfg := groundScanConfig()
	pose := NewPose(Vec3{0, 1, 0})

	out1, n1 := RunScan(bvh, cfg, pose, NewNoiseSource(0, rand.NewSource(1)), nil)
	out2, n2 := RunScan(bvh, cfg, pose, NewNoiseSource(0, rand.NewSource(2)), nil)

	if n1 != n2 {
		t.Fatalf("hit counts differ: %d vs %d", n1, n2)
	}
	for i := range out1 {
		if out1[i] != out2[i] {
			t.Fatalf("byte %d differs: %v vs %v", i, out1[i], out2[i])
		}
	}
}

func TestScan_RangeGateIsMonotonic(t *testing.T) {
	bvh := BuildBVH(groundPlaneMesh(t, 0))
	cfg := groundScanConfig()
	pose := NewPose(Vec3{0, 1, 0})

	cfg.MaxRange = 1.0
	_, shortCount := RunScan(bvh, cfg, pose, NewNoiseSource(0, nil), nil)

	cfg.MaxRange = 20.0
	_, longCount := RunScan(bvh, cfg, pose, NewNoiseSource(0, nil), nil)

	if longCount < shortCount {
		t.Errorf("increasing max_range reduced hit count: short=%d long=%d", shortCount, longCount)
	}
}

func TestScan_NoiseClampedToRangeGate(t *testing.T) {
	bvh := BuildBVH(groundPlaneMesh(t, 0))
	cfg := groundScanConfig()
	cfg.NoiseStddev = 100 // force clamping almost always

	pose := NewPose(Vec3{0, 1, 0})
	out, hitCount := RunScan(bvh, cfg, pose, NewNoiseSource(cfg.NoiseStddev, rand.NewSource(3)), nil)

	for i := 0; i < hitCount; i++ {
		x, y, z := float64(out[3*i]), float64(out[3*i+1]), float64(out[3*i+2])
		dist := math.Sqrt(x*x + (y-1)*(y-1) + z*z)
		if dist < cfg.MinRange-1e-6 || dist > cfg.MaxRange+1e-6 {
			t.Errorf("hit %d: range %v outside [%v, %v]", i, dist, cfg.MinRange, cfg.MaxRange)
		}
	}
}

func TestScan_ReusesBufferCapacity(t *testing.T) {
	bvh := BuildBVH(groundPlaneMesh(t, 0))
	cfg := groundScanConfig()
	pose := NewPose(Vec3{0, 1, 0})

	buf := make([]float32, 0, 3*144)
	out, hitCount := RunScan(bvh, cfg, pose, NewNoiseSource(0, nil), buf)
	if cap(out) != cap(buf) {
		t.Errorf("RunScan grew capacity from %d to %d, want reuse", cap(buf), cap(out))
	}
	if hitCount != 144 {
		t.Fatalf("hitCount = %d, want 144", hitCount)
	}
}
