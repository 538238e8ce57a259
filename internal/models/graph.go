package models

// GraphResult holds a subgraph returned by neighbor or traversal queries.
// Exactly one node carries IsCenter=true.
type GraphResult struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// StatsResult holds aggregate counts for the similarity graph.
type StatsResult struct {
	Nodes int64 `json:"nodes"`
	Edges int64 `json:"edges"`
}

// SyncResult compares the graph store against the image directory.
type SyncResult struct {
	DBImageCount       int      `json:"db_image_count"`
	FSImageCount       int      `json:"fs_image_count"`
	MissingInFilesystem []string `json:"missing_in_filesystem"`
	MissingInDatabase   []string `json:"missing_in_database"`
	SyncNeeded         bool     `json:"sync_needed"`
}

// FixResult reports the outcome of removing nodes for missing image files.
type FixResult struct {
	RemovedCount  int      `json:"removed_count"`
	RemovedImages []string `json:"removed_images,omitempty"`
}

// ResetResult reports the outcome of a graph rebuild.
type ResetResult struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}
