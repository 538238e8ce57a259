package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simgraphai/simgraph/client"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Build-time variables set via ldflags.
var (
	version   = "1.0.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient *client.Client
	flagURL   string
	flagFmt   string
)

const defaultServerURL = "http://localhost:5001"

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("simgraph version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("simgraph version %s-dev", version)
}

type configFile struct {
	// Flat format
	URL string `yaml:"url"`
	// Profile format
	Profiles      map[string]configProfile `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type configProfile struct {
	URL string `yaml:"url"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "simgraph",
		Short:   "Simgraph CLI: explore an image similarity graph",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			c, err := client.New(flagURL)
			if err != nil {
				fatal("connect", err)
			}
			apiClient = c
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultServerURL, "Simgraph server URL (env: SIMGRAPH_URL)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")

	initCmd := newInitCmd()
	initCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // skip client setup
	doctorCmd := newDoctorCmd()
	doctorCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // skip client setup

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(newNeighborsCmd())
	rootCmd.AddCommand(newExpandCmd())
	rootCmd.AddCommand(newExploreCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newImagesCmd())
	rootCmd.AddCommand(newAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL == defaultServerURL {
		if v := os.Getenv("SIMGRAPH_URL"); v != "" {
			flagURL = v
		}
	}

	if flagURL != defaultServerURL {
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfgPath := filepath.Join(home, ".simgraph", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	if url := resolveURL(&cfg); url != "" {
		flagURL = url
	}
}

// resolveURL picks the URL from the active profile, falling back to the
// flat format.
func resolveURL(cfg *configFile) string {
	if cfg.Profiles != nil && cfg.ActiveProfile != "" {
		if p, ok := cfg.Profiles[cfg.ActiveProfile]; ok && p.URL != "" {
			return p.URL
		}
	}
	return cfg.URL
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
