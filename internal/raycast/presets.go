package raycast

// Preset SensorConfigs for common rotating multi-beam LiDAR units (spec
// §6: "three constants VLP16, OS1-32, OS1-64 ... are canonical fixtures;
// they are data, not part of the engine"). Field values approximate the
// published specs of each unit; callers needing exact vendor figures
// should build their own SensorConfig.
var (
	// VLP16 approximates a Velodyne VLP-16: 16 channels, +/-15 degrees.
	VLP16 = SensorConfig{
		HorizontalResolution: 1800,
		VerticalChannels:     16,
		VerticalFovUpperDeg:  15,
		VerticalFovLowerDeg:  -15,
		MinRange:             0.5,
		MaxRange:             100,
		NoiseStddev:          0,
	}

	// OS1_32 approximates an Ouster OS1-32: 32 channels, +/-22.5 degrees.
	OS1_32 = SensorConfig{
		HorizontalResolution: 2048,
		VerticalChannels:     32,
		VerticalFovUpperDeg:  22.5,
		VerticalFovLowerDeg:  -22.5,
		MinRange:             0.3,
		MaxRange:             120,
		NoiseStddev:          0,
	}

	// OS1_64 approximates an Ouster OS1-64: 64 channels, +/-22.5 degrees.
	OS1_64 = SensorConfig{
		HorizontalResolution: 2048,
		VerticalChannels:     64,
		VerticalFovUpperDeg:  22.5,
		VerticalFovLowerDeg:  -22.5,
		MinRange:             0.3,
		MaxRange:             120,
		NoiseStddev:          0,
	}
)

// Presets indexes the canonical fixtures by their vendor-model name, for
// callers (e.g. cmd/raycastsim) that select a sensor by name.
var Presets = map[string]SensorConfig{
	"VLP16":  VLP16,
	"OS1-32": OS1_32,
	"OS1-64": OS1_64,
}
