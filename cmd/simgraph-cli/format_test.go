package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout replaces os.Stdout with a pipe, calls f, then returns the
// captured output and restores os.Stdout. It is NOT safe for parallel use
// because os.Stdout is a package-level variable.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	f()

	w.Close()
	<-done
	os.Stdout = orig
	r.Close()
	return buf.String()
}

// TestFormatJSON verifies that formatJSON emits indented JSON to stdout.
func TestFormatJSON(t *testing.T) {
	type sample struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	v := sample{ID: "img-123", Label: "sunset"}

	got := captureStdout(t, func() { formatJSON(v) })

	var out sample
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, got)
	}
	if out.ID != "img-123" {
		t.Errorf("id: got %q, want %q", out.ID, "img-123")
	}
	if out.Label != "sunset" {
		t.Errorf("label: got %q, want %q", out.Label, "sunset")
	}
}

// TestFormatTable verifies header, separator, and row alignment.
func TestFormatTable(t *testing.T) {
	got := captureStdout(t, func() {
		formatTable(
			[]string{"ID", "PATH"},
			[][]string{
				{"a", "sunset.jpg"},
				{"b", "beach.jpg"},
			},
		)
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), got)
	}

	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "PATH") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "--") {
		t.Errorf("separator = %q", lines[1])
	}
	if !strings.Contains(lines[2], "sunset.jpg") {
		t.Errorf("row = %q", lines[2])
	}
}

// TestOutputQuiet verifies that quiet mode prints only the quiet value.
func TestOutputQuiet(t *testing.T) {
	origFmt := flagFmt
	flagFmt = "quiet"
	t.Cleanup(func() { flagFmt = origFmt })

	got := captureStdout(t, func() {
		output(map[string]int{"nodes": 5}, "5 nodes")
	})

	if strings.TrimSpace(got) != "5 nodes" {
		t.Errorf("quiet output = %q, want %q", got, "5 nodes")
	}
}
