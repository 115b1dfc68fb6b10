package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/velocity.report/internal/raycast"
)

// ScanRunSummary is a lightweight listing row for a persisted scan run,
// returned by ListScanRuns without decoding its (potentially large)
// point buffer.
type ScanRunSummary struct {
	ScanRunID        uuid.UUID
	MeshID           int64
	HitCount         int
	CreatedUnixNanos int64
}

// SaveScanRun persists one completed scan against meshID, keyed by the
// runID the Simulator minted for it (see raycast.Simulator.LastScanID),
// grounded on the teacher's use of uuid.New() run identifiers in
// analysis_run_manager.go/sweep/runner.go.
func (s *Store) SaveScanRun(runID uuid.UUID, meshID int64, cfg raycast.SensorConfig, pose raycast.Pose, hits []float32, createdUnixNanos int64) error {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	poseJSON, err := json.Marshal(pose)
	if err != nil {
		return fmt.Errorf("failed to marshal pose: %w", err)
	}

	_, err = s.Exec(
		`INSERT INTO scan_runs (scan_run_id, mesh_id, config_json, pose_json, hit_count, points_blob, created_unix_nanos)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID.String(), meshID, string(cfgJSON), string(poseJSON), len(hits)/3, encodeFloat32s(hits), createdUnixNanos,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan run %s: %w", runID, err)
	}
	return nil
}

// LoadScanRun reads back a scan run's hit buffer by id.
func (s *Store) LoadScanRun(runID uuid.UUID) (points []float32, err error) {
	var blob []byte
	row := s.QueryRow(`SELECT points_blob FROM scan_runs WHERE scan_run_id = ?`, runID.String())
	if err := row.Scan(&blob); err != nil {
		return nil, fmt.Errorf("failed to load scan run %s: %w", runID, err)
	}
	return decodeFloat32s(blob), nil
}

// ListScanRuns returns every scan run persisted against meshID, most
// recent first.
func (s *Store) ListScanRuns(meshID int64) ([]ScanRunSummary, error) {
	rows, err := s.Query(
		`SELECT scan_run_id, mesh_id, hit_count, created_unix_nanos
		 FROM scan_runs WHERE mesh_id = ? ORDER BY created_unix_nanos DESC`,
		meshID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan runs for mesh %d: %w", meshID, err)
	}
	defer rows.Close()

	var out []ScanRunSummary
	for rows.Next() {
		var idStr string
		var summary ScanRunSummary
		if err := rows.Scan(&idStr, &summary.MeshID, &summary.HitCount, &summary.CreatedUnixNanos); err != nil {
			return nil, fmt.Errorf("failed to scan scan_runs row: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scan_run_id %q: %w", idStr, err)
		}
		summary.ScanRunID = id
		out = append(out, summary)
	}
	return out, rows.Err()
}
