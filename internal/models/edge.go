package models

// Edge represents a similarity relationship between two images.
// Edge IDs are derived deterministically from the endpoint pair so that
// merging partial results can deduplicate by ID alone.
type Edge struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// EdgeID returns the deterministic edge identifier for a source/target pair.
func EdgeID(source, target string) string {
	return "e-" + source + "-" + target
}

// NewEdge constructs an Edge with its deterministic ID.
func NewEdge(source, target string, weight float64) Edge {
	return Edge{
		ID:     EdgeID(source, target),
		Source: source,
		Target: target,
		Weight: weight,
	}
}
