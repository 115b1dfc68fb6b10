package raycast

// RunScan iterates every ray a SensorConfig produces for pose against bvh
// (spec §4.5), applies the min/max range gate and optional Gaussian noise,
// and appends each surviving hit's world-space point as three consecutive
// float32s onto buf. buf is truncated to zero length first; its backing
// array is reused across calls the way a scan-rate-sensitive arena would,
// avoiding a fresh allocation per scan when the previous capacity already
// covers H*V*3 floats.
//
// Ray order is elevation-major then azimuth (v outer, h inner), matching
// §4.4 exactly; this ordering is part of the observable contract and must
// not be reordered for e.g. parallelism without preserving write position
// per (v, h).
func RunScan(bvh *BVH, cfg SensorConfig, pose Pose, noise *NoiseSource, buf []float32) ([]float32, int) {
	out := buf[:0]
	hitCount := 0

	for v := 0; v < cfg.VerticalChannels; v++ {
		for h := 0; h < cfg.HorizontalResolution; h++ {
			dir := WorldRayDirection(cfg, pose, v, h)

			hit, ok := bvh.Query(pose.Position, dir, cfg.MaxRange)
			if !ok || hit.T < cfg.MinRange {
				continue
			}

			t := hit.T
			if cfg.NoiseStddev > 0 {
				t += noise.Sample()
				if t < cfg.MinRange {
					t = cfg.MinRange
				} else if t > cfg.MaxRange {
					t = cfg.MaxRange
				}
			}

			p := pose.Position.Add(dir.Scale(t))
			out = append(out, float32(p.X), float32(p.Y), float32(p.Z))
			hitCount++
		}
	}

	return out, hitCount
}
