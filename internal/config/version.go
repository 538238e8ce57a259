package config

// Version is the simgraph binary version.
// Set at build time via: -ldflags "-X github.com/simgraphai/simgraph/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
