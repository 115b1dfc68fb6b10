package raycast

import "errors"

// Error kinds are a taxonomy, not distinct types: callers compare with
// errors.Is against these sentinels the way this repo's other packages
// compare against their own package-level sentinel errors.
var (
	// ErrInvalidConfig is returned by create/set_config when a SensorConfig
	// field violates its contract (see SensorConfig.Validate).
	ErrInvalidConfig = errors.New("raycast: invalid sensor config")

	// ErrInvalidGeometry is returned by load_geometry when the vertex or
	// index buffers are malformed.
	ErrInvalidGeometry = errors.New("raycast: invalid geometry")
)

// maxVertexCount is the largest vertex count the index type (uint32) can
// address, per spec: vertex count exceeding 2^32-1 is InvalidGeometry.
const maxVertexCount = 1<<32 - 1
