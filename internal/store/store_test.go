package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/velocity.report/internal/raycast"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_RunsMigrationsToLatest(t *testing.T) {
	s := openTestStore(t)
	version, dirty, err := s.MigrateVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)
}

func TestSaveAndLoadMesh_RoundTrips(t *testing.T) {
	s := openTestStore(t)
	verts := []float32{-10, 0, -10, 10, 0, -10, 10, 0, 10, -10, 0, 10}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	id, err := s.SaveMesh("ground-plane", verts, indices, 1000)
	require.NoError(t, err)
	require.NotZero(t, id)

	gotID, gotVerts, gotIndices, err := s.LoadMesh("ground-plane")
	require.NoError(t, err)
	require.Equal(t, id, gotID)
	require.Equal(t, verts, gotVerts)
	require.Equal(t, indices, gotIndices)
}

func TestSaveMesh_OverwritesSameName(t *testing.T) {
	s := openTestStore(t)
	first := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	second := []float32{0, 0, 0, 2, 0, 0, 0, 2, 0}
	indices := []uint32{0, 1, 2}

	_, err := s.SaveMesh("dup", first, indices, 1)
	require.NoError(t, err)
	_, err = s.SaveMesh("dup", second, indices, 2)
	require.NoError(t, err)

	_, gotVerts, _, err := s.LoadMesh("dup")
	require.NoError(t, err)
	require.Equal(t, second, gotVerts)
}

func TestSaveAndListScanRuns(t *testing.T) {
	s := openTestStore(t)
	verts := []float32{-10, 0, -10, 10, 0, -10, 10, 0, 10, -10, 0, 10}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	meshID, err := s.SaveMesh("plane", verts, indices, 1)
	require.NoError(t, err)

	cfg := raycast.SensorConfig{HorizontalResolution: 4, VerticalChannels: 1, VerticalFovUpperDeg: -10, MinRange: 0.1, MaxRange: 20}
	pose := raycast.NewPose(raycast.Vec3{X: 0, Y: 1, Z: 0})
	runID := uuid.New()
	points := []float32{1, 2, 3, 4, 5, 6}

	require.NoError(t, s.SaveScanRun(runID, meshID, cfg, pose, points, 42))

	gotPoints, err := s.LoadScanRun(runID)
	require.NoError(t, err)
	require.Equal(t, points, gotPoints)

	runs, err := s.ListScanRuns(meshID)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, runID, runs[0].ScanRunID)
	require.Equal(t, 2, runs[0].HitCount)
}
