// Package models defines data types for the image similarity graph.
package models

import (
	"path"
	"strings"
)

// Node represents one image in the similarity graph.
//
// Level is the BFS distance from the center image and is only populated on
// extended-neighbor responses; a nil Level means the node came from a flat
// neighbor query.
type Node struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	IsCenter    bool   `json:"isCenter"`
	Level       *int   `json:"level,omitempty"`
}

// Neighbor pairs a Node with the similarity weight of the edge that
// connects it to the queried node.
type Neighbor struct {
	Node
	Weight float64 `json:"weight"`
}

// NodeRecord is the stored form of an image node, including its embedding.
type NodeRecord struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

// Node returns the wire representation of the record.
func (r *NodeRecord) Node() Node {
	return Node{
		ID:          r.ID,
		Path:        r.Path,
		Label:       r.Label,
		Description: r.Description,
	}
}

// LabelFromPath derives a display label from an image path: the base
// filename without its extension.
func LabelFromPath(p string) string {
	base := path.Base(p)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}

	return base
}

// NormalizePath reduces any stored or requested image path to its bare
// filename, stripping an optional "images/" prefix and any directories.
func NormalizePath(p string) string {
	p = strings.TrimPrefix(p, "images/")

	return path.Base(p)
}

// IntPtr returns a pointer to v. Used when annotating node levels.
func IntPtr(v int) *int { return &v }
