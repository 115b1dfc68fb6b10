package raycast

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/banshee-data/velocity.report/internal/monitoring"
)

// Simulator is the facade spec §4.6 describes: it owns a SensorConfig, an
// optional loaded TriangleMesh/BVH, a reusable output buffer, and a noise
// source. It is not safe for concurrent use by multiple goroutines (spec
// §5) — callers that need concurrency place one Simulator per worker.
type Simulator struct {
	cfg SensorConfig

	mesh *TriangleMesh
	bvh  *BVH

	noise *NoiseSource

	buf          []float32
	lastHitCount int
	lastScanID   uuid.UUID
}

// NewSimulator creates a Simulator with cfg and no geometry loaded, the
// way the teacher's lidar.BackgroundConfig.Validate gate sits in front of
// constructing a BackgroundManager. randSource seeds the noise generator;
// a nil randSource falls back to NoiseSource's fixed default seed, so
// production callers pass their own entropy-seeded source and tests pass
// an explicit rand.NewSource(seed) for bit-reproducible noise.
func NewSimulator(cfg SensorConfig, randSource rand.Source) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:   cfg,
		noise: NewNoiseSource(cfg.NoiseStddev, randSource),
	}, nil
}

// LoadGeometry replaces the triangle store and BVH atomically (spec §4.6).
// The previous mesh/BVH, if any, is discarded; neither is exposed while
// the new one builds.
func (s *Simulator) LoadGeometry(vertices []float32, indices []uint32) error {
	mesh, err := NewTriangleMesh(vertices, indices)
	if err != nil {
		return err
	}
	bvh := BuildBVH(mesh)

	s.mesh = mesh
	s.bvh = bvh
	monitoring.Logf("raycast: loaded geometry (%d vertices, %d triangles, %d bvh nodes)",
		mesh.VertexCount(), mesh.TriangleCount(), bvh.NodeCount())
	return nil
}

// SetConfig replaces the sensor config. The BVH is left untouched (spec
// §4.6); only the noise generator's standard deviation, a config field,
// is updated in place, keeping its random stream.
func (s *Simulator) SetConfig(cfg SensorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.noise.SetStddev(cfg.NoiseStddev)
	return nil
}

// Scan generates one full rotation of rays for pose and returns the
// world-space hit points as a flat [x,y,z,...] slice (spec §4.5/§4.6). If
// no geometry has been loaded, it returns an empty buffer rather than an
// error (spec §7, NotInitialized). The returned slice is borrowed: it is
// only valid until the next call to Scan or LoadGeometry, which may
// reuse or resize the backing array.
func (s *Simulator) Scan(pose Pose) []float32 {
	s.lastScanID = uuid.New()

	if s.bvh == nil {
		s.buf = s.buf[:0]
		s.lastHitCount = 0
		return s.buf
	}

	out, hitCount := RunScan(s.bvh, s.cfg, pose, s.noise, s.buf)
	s.buf = out
	s.lastHitCount = hitCount
	return s.buf
}

// LastHitCount returns the hit count of the most recent Scan, or 0 if no
// scan has run yet.
func (s *Simulator) LastHitCount() int { return s.lastHitCount }

// LastScanID returns the identifier minted for the most recent Scan call,
// for callers (e.g. internal/store) that persist scan runs keyed by it.
// It is the zero UUID if Scan has never been called.
func (s *Simulator) LastScanID() uuid.UUID { return s.lastScanID }

// Config returns the simulator's current SensorConfig snapshot.
func (s *Simulator) Config() SensorConfig { return s.cfg }

// Free releases the simulator's owned geometry and buffers. It is
// idempotent; further operations on a freed Simulator are undefined
// (spec §7, Disposed).
func (s *Simulator) Free() {
	s.mesh = nil
	s.bvh = nil
	s.buf = nil
	s.lastHitCount = 0
}
