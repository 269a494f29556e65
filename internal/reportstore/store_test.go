package reportstore

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// compactJSON strips formatting so payload comparisons ignore the
// indentation the file writer applies.
func compactJSON(t *testing.T, raw []byte) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		t.Fatalf("compact %q: %v", raw, err)
	}
	return buf.String()
}

func TestStore_Append(t *testing.T) {
	store := New(t.TempDir())
	payload := json.RawMessage(`[{"month":"2023-11","amount":800}]`)

	added, err := store.Append("spending_by_category", payload)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if !added {
		t.Fatal("Append() = false, want true for a new snapshot")
	}

	data, err := os.ReadFile(store.Path("spending_by_category"))
	if err != nil {
		t.Fatalf("read report file: %v", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("unmarshal report file: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.ReportType != "spending_by_category" {
		t.Errorf("ReportType = %q, want spending_by_category", e.ReportType)
	}
	if e.Hash == "" || e.Timestamp.IsZero() {
		t.Errorf("metadata not populated: %+v", e)
	}
	if compactJSON(t, e.Data) != compactJSON(t, payload) {
		t.Errorf("Data = %s, want %s", e.Data, payload)
	}
}

func TestStore_AppendDeduplicates(t *testing.T) {
	store := New(t.TempDir())
	payload := json.RawMessage(`[{"weekday":"Понедельник","average":200}]`)

	if added, err := store.Append("spending_by_weekday", payload); err != nil || !added {
		t.Fatalf("first Append() = %v, %v", added, err)
	}
	added, err := store.Append("spending_by_weekday", payload)
	if err != nil {
		t.Fatalf("second Append() error = %v", err)
	}
	if added {
		t.Error("second Append() = true, want duplicate to be skipped")
	}

	// The same rows with different whitespace are still a duplicate: the
	// dedup hash is computed over the compacted payload.
	reformatted := json.RawMessage("[ {\n  \"weekday\": \"Понедельник\",\n  \"average\": 200\n} ]")
	added, err = store.Append("spending_by_weekday", reformatted)
	if err != nil {
		t.Fatalf("reformatted Append() error = %v", err)
	}
	if added {
		t.Error("reformatted Append() = true, want whitespace-insensitive dedup")
	}

	// A different payload still lands in the same file.
	other := json.RawMessage(`[{"weekday":"Суббота","average":50}]`)
	if added, err := store.Append("spending_by_weekday", other); err != nil || !added {
		t.Fatalf("third Append() = %v, %v", added, err)
	}

	data, _ := os.ReadFile(store.Path("spending_by_weekday"))
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("unmarshal report file: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestStore_AppendSkipsEmptyPayloads(t *testing.T) {
	store := New(t.TempDir())

	for _, payload := range []string{"", "null", "[]", "{}", "  [] "} {
		added, err := store.Append("spending_by_workday", json.RawMessage(payload))
		if err != nil {
			t.Fatalf("Append(%q) error = %v", payload, err)
		}
		if added {
			t.Errorf("Append(%q) = true, want empty payload skipped", payload)
		}
	}

	if _, err := os.Stat(store.Path("spending_by_workday")); !os.IsNotExist(err) {
		t.Error("report file created for empty payloads")
	}
}

func TestStore_AppendRecoversFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	path := store.Path("spending_by_category")
	if err := os.WriteFile(path, []byte("не json"), 0644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	added, err := store.Append("spending_by_category", json.RawMessage(`[{"month":"2023-11","amount":1}]`))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if !added {
		t.Fatal("Append() = false, want corrupt file replaced by a fresh list")
	}

	data, _ := os.ReadFile(filepath.Join(dir, "report_spending_by_category.json"))
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("file still corrupt after append: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}
