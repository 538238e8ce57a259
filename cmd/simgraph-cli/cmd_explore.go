package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simgraphai/simgraph/client"
	"github.com/simgraphai/simgraph/internal/explore"
	"github.com/simgraphai/simgraph/internal/models"
)

func newExploreCmd() *cobra.Command {
	var (
		threshold float64
		limit     int
		maxNodes  int
		pace      time.Duration
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "explore <image>",
		Short: "Run the expansion engine headless from a center image",
		Long: "Bootstraps a session from the center image and keeps expanding\n" +
			"unexpanded nodes breadth-first until the node budget is reached\n" +
			"or nothing new arrives, then prints the merged graph.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(args[0], threshold, limit, maxNodes, pace, verbose)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "Similarity cutoff")
	cmd.Flags().IntVar(&limit, "limit", 10, "Neighbors fetched per expansion")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 100, "Total node budget")
	cmd.Flags().DurationVar(&pace, "pace", 50*time.Millisecond, "Delay between expansions")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log each expansion")
	return cmd
}

// apiFetcher adapts the SDK to the expansion engine's Fetcher interface.
type apiFetcher struct {
	c *client.Client
}

func (f apiFetcher) Neighbors(ctx context.Context, imagePath string, threshold float64, limit int) (*models.GraphResult, error) {
	g, err := f.c.Neighbors(ctx, imagePath, threshold, limit)
	if err != nil {
		return nil, err
	}
	return toGraphResult(g), nil
}

func toGraphResult(g *client.Graph) *models.GraphResult {
	result := &models.GraphResult{
		Nodes: make([]models.Node, 0, len(g.Nodes)),
		Edges: make([]models.Edge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		result.Nodes = append(result.Nodes, models.Node{
			ID:          n.ID,
			Path:        n.Path,
			Label:       n.Label,
			Description: n.Description,
			IsCenter:    n.IsCenter,
			Level:       n.Level,
		})
	}
	for _, e := range g.Edges {
		result.Edges = append(result.Edges, models.Edge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
		})
	}
	return result
}

func runExplore(center string, threshold float64, limit, maxNodes int, pace time.Duration, verbose bool) error {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initial, err := apiClient.ExtendedNeighbors(ctx, center, threshold, 1, limit, maxNodes)
	if err != nil {
		return fmt.Errorf("bootstrapping from %s: %w", center, err)
	}

	session := explore.NewSession(explore.SessionConfig{
		Threshold: threshold,
		MaxNodes:  maxNodes,
		Log:       log,
	})
	session.Bootstrap(toGraphResult(initial))

	results := make(chan explore.Result, 256)
	sched := explore.NewScheduler(session, apiFetcher{c: apiClient}, explore.SchedulerConfig{
		NeighborLimit: limit,
		Pace:          pace,
		OnResult:      func(r explore.Result) { results <- r },
		Log:           log,
	})
	session.AttachScheduler(sched)
	go sched.Run(ctx)

	for !session.AtBudget() {
		nodes, _ := session.Snapshot()

		pending := 0
		for _, n := range nodes {
			if session.Expanded(n.ID) {
				continue
			}
			if sched.Enqueue(n.ID, false) {
				pending++
			}
		}
		if pending == 0 {
			break
		}

		grew := false
		for range pending {
			r := <-results
			if verbose {
				fmt.Printf("  %s: %s (+%d)\n", r.NodeID, r.Status, r.Added)
			}
			if r.Status == explore.StatusMerged && r.Added > 0 {
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	cancel()

	finalNodes, finalEdges := session.Snapshot()
	outputGraph(&client.Graph{
		Nodes: fromModelNodes(finalNodes),
		Edges: fromModelEdges(finalEdges),
	})
	return nil
}

func fromModelNodes(nodes []models.Node) []client.Node {
	out := make([]client.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, client.Node{
			ID:          n.ID,
			Path:        n.Path,
			Label:       n.Label,
			Description: n.Description,
			IsCenter:    n.IsCenter,
			Level:       n.Level,
		})
	}
	return out
}

func fromModelEdges(edges []models.Edge) []client.Edge {
	out := make([]client.Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, client.Edge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Weight: e.Weight,
		})
	}
	return out
}
