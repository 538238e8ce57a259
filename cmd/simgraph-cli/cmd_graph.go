package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/simgraphai/simgraph/client"
	"github.com/spf13/cobra"
)

func newNeighborsCmd() *cobra.Command {
	var (
		threshold float64
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "neighbors <image>",
		Short: "Get the direct neighbors of an image",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Neighbors(context.Background(), args[0], threshold, limit)
			if err != nil {
				fatal("neighbors", err)
			}
			outputGraph(result)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Similarity cutoff (server default 0.5)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max neighbors (server default 10)")
	return cmd
}

func newExpandCmd() *cobra.Command {
	var (
		threshold     float64
		depth         int
		limitPerLevel int
		maxNodes      int
	)
	cmd := &cobra.Command{
		Use:   "expand <image>",
		Short: "Run a multi-level traversal from an image",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.ExtendedNeighbors(context.Background(), args[0], threshold, depth, limitPerLevel, maxNodes)
			if err != nil {
				fatal("expand", err)
			}
			outputGraph(result)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Similarity cutoff (server default 0.5)")
	cmd.Flags().IntVar(&depth, "depth", 2, "Max traversal depth (1-5)")
	cmd.Flags().IntVar(&limitPerLevel, "limit-per-level", 0, "Max children per parent (server default 10)")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "Total node budget (server default 100)")
	return cmd
}

func outputGraph(g *client.Graph) {
	if flagFmt == "table" {
		nodes := make([][]string, 0, len(g.Nodes))
		for _, n := range g.Nodes {
			level := "-"
			if n.Level != nil {
				level = strconv.Itoa(*n.Level)
			}
			center := ""
			if n.IsCenter {
				center = "*"
			}
			nodes = append(nodes, []string{n.ID, n.Path, n.Label, level, center})
		}
		edges := make([][]string, 0, len(g.Edges))
		for _, e := range g.Edges {
			edges = append(edges, []string{e.Source, e.Target, fmt.Sprintf("%.3f", e.Weight)})
		}
		graphTable(nodes, edges)
		return
	}
	output(g, fmt.Sprintf("%d nodes, %d edges", len(g.Nodes), len(g.Edges)))
}
