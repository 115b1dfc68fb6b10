package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SaveMesh stores a flattened vertex/index buffer pair under name,
// overwriting any previous mesh of the same name, and returns its row
// id. Buffers are packed little-endian, the same layout spec.md's
// external interface already assumes for the flat float32/uint32 arrays.
func (s *Store) SaveMesh(name string, vertices []float32, indices []uint32, createdUnixNanos int64) (int64, error) {
	_, err := s.Exec(`DELETE FROM meshes WHERE name = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to clear previous mesh %q: %w", name, err)
	}

	res, err := s.Exec(
		`INSERT INTO meshes (name, vertex_count, triangle_count, vertices_blob, indices_blob, created_unix_nanos)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, len(vertices)/3, len(indices)/3, encodeFloat32s(vertices), encodeUint32s(indices), createdUnixNanos,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert mesh %q: %w", name, err)
	}
	return res.LastInsertId()
}

// LoadMesh reads back a mesh's vertex/index buffers and row id by name.
func (s *Store) LoadMesh(name string) (meshID int64, vertices []float32, indices []uint32, err error) {
	var vBlob, iBlob []byte
	row := s.QueryRow(`SELECT mesh_id, vertices_blob, indices_blob FROM meshes WHERE name = ?`, name)
	if err := row.Scan(&meshID, &vBlob, &iBlob); err != nil {
		return 0, nil, nil, fmt.Errorf("failed to load mesh %q: %w", name, err)
	}
	return meshID, decodeFloat32s(vBlob), decodeUint32s(iBlob), nil
}

func encodeFloat32s(vals []float32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func decodeFloat32s(buf []byte) []float32 {
	vals := make([]float32, len(buf)/4)
	for i := range vals {
		vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vals
}

func encodeUint32s(vals []uint32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[4*i:], v)
	}
	return buf
}

func decodeUint32s(buf []byte) []uint32 {
	vals := make([]uint32, len(buf)/4)
	for i := range vals {
		vals[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return vals
}
