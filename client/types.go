package client

// Node is one image in a returned subgraph.
type Node struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	IsCenter    bool   `json:"isCenter"`
	Level       *int   `json:"level,omitempty"`
}

// Edge is a similarity relationship between two returned nodes.
type Edge struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph is a subgraph returned by neighbor or traversal queries.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Stats holds aggregate graph counts.
type Stats struct {
	Nodes int64 `json:"nodes"`
	Edges int64 `json:"edges"`
}

// SyncStatus compares the graph store against the image directory.
type SyncStatus struct {
	DBImageCount        int      `json:"db_image_count"`
	FSImageCount        int      `json:"fs_image_count"`
	MissingInFilesystem []string `json:"missing_in_filesystem"`
	MissingInDatabase   []string `json:"missing_in_database"`
	SyncNeeded          bool     `json:"sync_needed"`
}

// ResetResult reports the outcome of a graph rebuild.
type ResetResult struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// FixResult reports the outcome of stale-node removal.
type FixResult struct {
	RemovedCount  int      `json:"removed_count"`
	RemovedImages []string `json:"removed_images,omitempty"`
}

// Health is the server liveness report.
type Health struct {
	Status           string  `json:"status"`
	Version          string  `json:"version"`
	Database         string  `json:"database"`
	WebsocketClients int     `json:"websocket_clients"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}
