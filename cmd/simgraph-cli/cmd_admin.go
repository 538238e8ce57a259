package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands",
	}
	cmd.AddCommand(adminHealthCmd())
	cmd.AddCommand(adminStatsCmd())
	cmd.AddCommand(adminResetCmd())
	cmd.AddCommand(adminFixCmd())
	return cmd
}

func adminHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}
			output(resp, resp.Status)
		},
	}
}

func adminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show graph statistics",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Stats(context.Background())
			if err != nil {
				fatal("stats", err)
			}
			if flagFmt == "table" {
				formatTable(
					[]string{"METRIC", "VALUE"},
					[][]string{
						{"Nodes", fmt.Sprintf("%d", resp.Nodes)},
						{"Edges", fmt.Sprintf("%d", resp.Edges)},
					},
				)
				return
			}
			output(resp, "")
		},
	}
}

func adminResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the graph and rebuild it from the server's embeddings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset destroys the current graph; re-run with --yes to confirm")
			}
			resp, err := apiClient.Reset(context.Background())
			if err != nil {
				fatal("reset", err)
			}
			output(resp, fmt.Sprintf("%d nodes, %d edges", resp.Nodes, resp.Edges))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the rebuild")
	return cmd
}

func adminFixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix",
		Short: "Remove nodes whose image files are missing on the server",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Fix(context.Background())
			if err != nil {
				fatal("fix", err)
			}
			output(resp, fmt.Sprintf("%d removed", resp.RemovedCount))
		},
	}
}
