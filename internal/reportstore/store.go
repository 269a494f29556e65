// Package reportstore persists computed report snapshots as append-only
// JSON files, one file per report type. Entries are deduplicated by content
// hash so replaying the same snapshot leaves the file untouched, and empty
// results are never written at all.
package reportstore

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one persisted snapshot. The underscore-prefixed metadata keys
// match the historical report file format.
type Entry struct {
	ReportType string          `json:"_report_type"`
	Timestamp  time.Time       `json:"_timestamp"`
	Hash       string          `json:"_hash"`
	Data       json.RawMessage `json:"data"`
}

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Append adds a snapshot to the report file for name. Returns false without
// writing when the payload is empty or already present. The payload must be
// valid JSON; it is compacted so the stored form and the dedup hash do not
// depend on the sender's whitespace.
func (s *Store) Append(name string, payload json.RawMessage) (bool, error) {
	if emptyPayload(payload) {
		return false, nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		return false, fmt.Errorf("invalid report payload: %w", err)
	}
	payload = compact.Bytes()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return false, fmt.Errorf("create report directory: %w", err)
	}

	path := s.Path(name)
	entries, err := readEntries(path)
	if err != nil {
		return false, err
	}

	sum := sha256.Sum256(payload)
	hash := hex.EncodeToString(sum[:])
	for _, e := range entries {
		if e.Hash == hash {
			return false, nil
		}
	}

	entries = append(entries, Entry{
		ReportType: name,
		Timestamp:  time.Now().UTC(),
		Hash:       hash,
		Data:       payload,
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return false, fmt.Errorf("marshal report entries: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("write report file: %w", err)
	}
	return true, nil
}

// Path returns the snapshot file for a report name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, "report_"+name+".json")
}

// readEntries loads the existing file; a missing or corrupt file starts a
// fresh entry list rather than failing the append.
func readEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

// emptyPayload reports whether the snapshot carries no rows worth keeping.
func emptyPayload(payload json.RawMessage) bool {
	trimmed := bytes.TrimSpace(payload)
	switch {
	case len(trimmed) == 0:
		return true
	case bytes.Equal(trimmed, []byte("null")):
		return true
	case bytes.Equal(trimmed, []byte("[]")):
		return true
	case bytes.Equal(trimmed, []byte("{}")):
		return true
	}
	return false
}
