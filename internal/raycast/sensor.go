package raycast

import (
	"fmt"
	"math"
)

// SensorConfig is the immutable snapshot a scan is run against (spec §3).
// All numeric fields are validated by Validate before a Simulator accepts
// them, the way internal/lidar's BackgroundConfig validates itself before
// being accepted by a caller.
type SensorConfig struct {
	HorizontalResolution int     // H: azimuth samples around the full 2*pi sweep
	VerticalChannels     int     // V: number of elevation rings
	VerticalFovUpperDeg  float64 // degrees; upper >= lower
	VerticalFovLowerDeg  float64 // degrees
	MinRange             float64 // meters, 0 <= min < max
	MaxRange             float64 // meters
	NoiseStddev          float64 // meters, >= 0; 0 disables noise
}

// Validate reports the first InvalidConfig violation found, or nil.
func (c SensorConfig) Validate() error {
	if c.HorizontalResolution < 1 {
		return fmt.Errorf("%w: horizontal_resolution must be >= 1, got %d", ErrInvalidConfig, c.HorizontalResolution)
	}
	if c.VerticalChannels < 1 {
		return fmt.Errorf("%w: vertical_channels must be >= 1, got %d", ErrInvalidConfig, c.VerticalChannels)
	}
	if c.MinRange < 0 {
		return fmt.Errorf("%w: min_range must be >= 0, got %f", ErrInvalidConfig, c.MinRange)
	}
	if c.MaxRange <= c.MinRange {
		return fmt.Errorf("%w: max_range must be > min_range, got max=%f min=%f", ErrInvalidConfig, c.MaxRange, c.MinRange)
	}
	if c.VerticalFovUpperDeg < c.VerticalFovLowerDeg {
		return fmt.Errorf("%w: vertical_fov_upper must be >= vertical_fov_lower, got upper=%f lower=%f", ErrInvalidConfig, c.VerticalFovUpperDeg, c.VerticalFovLowerDeg)
	}
	if c.NoiseStddev < 0 {
		return fmt.Errorf("%w: noise_stddev must be >= 0, got %f", ErrInvalidConfig, c.NoiseStddev)
	}
	for name, v := range map[string]float64{
		"vertical_fov_upper": c.VerticalFovUpperDeg,
		"vertical_fov_lower": c.VerticalFovLowerDeg,
		"min_range":          c.MinRange,
		"max_range":          c.MaxRange,
		"noise_stddev":       c.NoiseStddev,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, name, v)
		}
	}
	return nil
}

// Pose is a rigid-body position and orientation in world space. A zero-value
// Pose's Quaternion field must be set to IdentityQuaternion by the caller;
// NewPose does this for convenience.
type Pose struct {
	Position   Vec3
	Quaternion Quaternion
}

// NewPose builds a Pose with the identity orientation.
func NewPose(position Vec3) Pose {
	return Pose{Position: position, Quaternion: IdentityQuaternion}
}

// elevationRadians returns the elevation angle, in radians, of ring v of cfg
// (spec §4.4). V==1 uses the upper FOV bound as the single ring's elevation.
func elevationRadians(cfg SensorConfig, v int) float64 {
	upper := cfg.VerticalFovUpperDeg * math.Pi / 180
	if cfg.VerticalChannels == 1 {
		return upper
	}
	lower := cfg.VerticalFovLowerDeg * math.Pi / 180
	frac := float64(v) / float64(cfg.VerticalChannels-1)
	return lower + frac*(upper-lower)
}

// azimuthRadians returns the azimuth angle, in radians, of step h of cfg.
// Step 0 points along +x in the sensor local frame.
func azimuthRadians(cfg SensorConfig, h int) float64 {
	return 2 * math.Pi * float64(h) / float64(cfg.HorizontalResolution)
}

// localRayDirection returns the unit ray direction in the sensor's local
// frame for elevation ring v and azimuth step h, fixing y as up (spec §4.4).
func localRayDirection(cfg SensorConfig, v, h int) Vec3 {
	elev := elevationRadians(cfg, v)
	az := azimuthRadians(cfg, h)
	ce, se := math.Cos(elev), math.Sin(elev)
	ca, sa := math.Cos(az), math.Sin(az)
	return Vec3{X: ce * ca, Y: se, Z: ce * sa}
}

// WorldRayDirection returns the world-space unit ray direction for elevation
// ring v and azimuth step h under pose. Exported so callers (e.g.
// diagnostics, tests of S4/pose-equivariance) can enumerate rays without
// running a full scan.
func WorldRayDirection(cfg SensorConfig, pose Pose, v, h int) Vec3 {
	return pose.Quaternion.RotateVec(localRayDirection(cfg, v, h))
}
