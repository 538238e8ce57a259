package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEmbeddings(t *testing.T, lines ...string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "embeddings.jsonl")
	if err := os.WriteFile(file, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		t.Fatal(err)
	}

	return file
}

func TestLoadRecords(t *testing.T) {
	t.Parallel()

	file := writeEmbeddings(t,
		`{"path": "images/sunset.jpg", "description": "a sunset", "embedding": [0.1, 0.2]}`,
		``,
		`{"path": "forest.png", "embedding": [0.3, 0.4]}`,
	)

	records, err := LoadRecords(file)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	first := records[0]
	if first.Path != "sunset.jpg" {
		t.Errorf("path = %q, want bare filename", first.Path)
	}

	if first.Label != "sunset" {
		t.Errorf("label = %q, want sunset", first.Label)
	}

	if first.Description != "a sunset" {
		t.Errorf("description = %q", first.Description)
	}

	if first.ID == "" || first.ID == records[1].ID {
		t.Error("records should get distinct non-empty ids")
	}
}

func TestLoadRecords_DeterministicIDs(t *testing.T) {
	t.Parallel()

	if NodeID("sunset.jpg") != NodeID("images/sunset.jpg") {
		t.Error("id should be derived from the normalized path")
	}

	if NodeID("a.png") == NodeID("b.png") {
		t.Error("distinct paths should produce distinct ids")
	}
}

func TestLoadRecords_DuplicatePathKeepsFirst(t *testing.T) {
	t.Parallel()

	file := writeEmbeddings(t,
		`{"path": "dup.png", "description": "first", "embedding": [1]}`,
		`{"path": "images/dup.png", "description": "second", "embedding": [2]}`,
	)

	records, err := LoadRecords(file)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}

	if len(records) != 1 || records[0].Description != "first" {
		t.Errorf("records = %+v, want only the first dup.png", records)
	}
}

func TestLoadRecords_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line string
	}{
		{"malformed json", `{not json`},
		{"missing path", `{"embedding": [1]}`},
		{"missing embedding", `{"path": "x.png"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			file := writeEmbeddings(t, tc.line)
			if _, err := LoadRecords(file); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadRecords_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadRecords(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}
