package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find images whose description contains the text",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			nodes, err := apiClient.Search(context.Background(), args[0], limit)
			if err != nil {
				fatal("search", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(nodes))
				for _, n := range nodes {
					rows = append(rows, []string{n.ID, n.Path, n.Label, n.Description})
				}
				formatTable([]string{"ID", "PATH", "LABEL", "DESCRIPTION"}, rows)
				return
			}
			output(nodes, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (server default 25)")
	return cmd
}

func newImagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Image directory commands",
	}
	cmd.AddCommand(imagesListCmd())
	cmd.AddCommand(imagesSyncCmd())
	return cmd
}

func imagesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the image files known to the server",
		Run: func(cmd *cobra.Command, args []string) {
			images, err := apiClient.Images(context.Background())
			if err != nil {
				fatal("images", err)
			}
			output(images, "")
		},
	}
}

func imagesSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Report drift between the graph store and the image directory",
		Run: func(cmd *cobra.Command, args []string) {
			status, err := apiClient.SyncStatus(context.Background())
			if err != nil {
				fatal("sync", err)
			}
			output(status, "")
		},
	}
}
