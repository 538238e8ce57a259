// Package ingest rebuilds the similarity graph from precomputed image
// embeddings. Embeddings are produced by an external pipeline; this package
// only loads them, derives similarity edges, and writes the result to the
// store.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/simgraphai/simgraph/internal/models"
)

// embeddingRecord is one line of the embeddings JSONL file.
type embeddingRecord struct {
	Path        string    `json:"path"`
	Description string    `json:"description,omitempty"`
	Embedding   []float32 `json:"embedding"`
}

// maxEmbeddingLine bounds a single JSONL line (large embedding vectors).
const maxEmbeddingLine = 4 * 1024 * 1024

// nodeNamespace seeds deterministic node IDs so repeated ingests of the
// same image path produce the same ID.
var nodeNamespace = uuid.MustParse("8f0c2f41-6f3a-4c1e-9d7b-2a5c1b9e4d60")

// NodeID derives the stable node ID for an image path.
func NodeID(path string) string {
	return uuid.NewSHA1(nodeNamespace, []byte(models.NormalizePath(path))).String()
}

// LoadRecords reads an embeddings JSONL file into node records. Paths are
// normalized to bare filenames and IDs are derived deterministically from
// them. Lines with an empty path or embedding are rejected.
func LoadRecords(file string) ([]models.NodeRecord, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening embeddings file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file.

	records := make([]models.NodeRecord, 0)
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEmbeddingLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec embeddingRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("embeddings file line %d: %w", lineNo, err)
		}

		if rec.Path == "" {
			return nil, fmt.Errorf("embeddings file line %d: missing path", lineNo)
		}

		if len(rec.Embedding) == 0 {
			return nil, fmt.Errorf("embeddings file line %d: missing embedding", lineNo)
		}

		path := models.NormalizePath(rec.Path)
		if seen[path] {
			// Duplicate paths keep the first occurrence.
			continue
		}
		seen[path] = true

		records = append(records, models.NodeRecord{
			ID:          NodeID(path),
			Path:        path,
			Label:       models.LabelFromPath(path),
			Description: rec.Description,
			Embedding:   rec.Embedding,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading embeddings file: %w", err)
	}

	return records, nil
}
